// Package web renderiza las vistas HTML de la aplicación a partir de
// templates embebidos. No hay motor de templates de terceros,
// html/template alcanza.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"vet-patient-records/internal/domain/sessions"
	"vet-patient-records/internal/platform/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page es el contexto común de todas las vistas.
type Page struct {
	Title    string
	LoggedIn bool
	Flashes  []sessions.Flash
	Data     any
}

type Renderer struct {
	tpl *template.Template
	log logger.Logger
}

func NewRenderer(log logger.Logger) (*Renderer, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tpl: tpl, log: log}, nil
}

// HTML ejecuta el template `name` con la página dada. Un error de template a
// esta altura es un bug de la vista: se loguea y se responde 500 si aún no
// se escribió el header.
func (rn *Renderer) HTML(w http.ResponseWriter, status int, name string, p Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := rn.tpl.ExecuteTemplate(w, name, p); err != nil {
		rn.log.Error("render template", map[string]any{"template": name, "err": err.Error()})
	}
}

// DrainFlashes saca los avisos pendientes de la sesión del request, si hay.
// Es tolerante: sin cookie o sin sesión retorna nil.
func DrainFlashes(r *http.Request, store sessions.Store) []sessions.Flash {
	token := sessions.TokenFromRequest(r)
	if token == "" {
		return nil
	}
	fl, err := store.PopFlashes(r.Context(), token)
	if err != nil {
		return nil
	}
	return fl
}
