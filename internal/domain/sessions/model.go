package sessions

import "time"

// Severity clasifica los avisos flash para que la vista elija estilo.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
	SeverityInfo    Severity = "info"
)

// Flash es un aviso de un solo uso: se encola en un request y se drena
// en el siguiente render.
type Flash struct {
	Severity Severity
	Message  string
}

// Session es el marcador que viaja en la cookie (solo el token). UserID
// vacío significa sesión anónima: existe solo para transportar flashes
// (p.ej. el aviso del guard antes de llegar a /login).
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	Flashes   []Flash
}

// LoggedIn indica si la sesión pertenece a un usuario autenticado.
func (s Session) LoggedIn() bool {
	return s.UserID != ""
}
