package sessions

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const (
	// CookieName es la cookie que lleva el token de sesión.
	CookieName = "session_id"

	// TTL acota la vida de una sesión del lado servidor. La cookie en sí
	// es de sesión de navegador; este TTL solo permite reclamar memoria.
	TTL = 24 * time.Hour
)

var (
	ErrNotFound = errors.New("session not found")
)

// Store es el puerto de persistencia de sesiones. Adapters: memory y redis.
type Store interface {
	// Create registra una sesión nueva con token fresco. userID puede ser
	// vacío (sesión anónima portadora de flashes).
	Create(ctx context.Context, userID string) (Session, error)

	// Get retorna la sesión viva para el token, o ErrNotFound si no existe
	// o ya expiró.
	Get(ctx context.Context, token string) (Session, error)

	// Delete invalida la sesión. Borrar un token inexistente no es error.
	Delete(ctx context.Context, token string) error

	// PushFlash encola un aviso en la sesión.
	PushFlash(ctx context.Context, token string, f Flash) error

	// PopFlashes retorna y vacía la cola de avisos (semántica one-shot).
	PopFlashes(ctx context.Context, token string) ([]Flash, error)
}

// SetCookie escribe la cookie de sesión. HttpOnly siempre; Secure según
// despliegue (detrás de TLS o no).
func SetCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expira la cookie en el cliente.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// TokenFromRequest extrae el token de la cookie, o "" si no viene.
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
