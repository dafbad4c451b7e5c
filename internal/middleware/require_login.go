package middleware

import (
	"net/http"

	"vet-patient-records/internal/domain/sessions"
)

// RequireLogin protege un grupo de rutas: sin sesión autenticada no se
// invoca el handler envuelto; se encola el aviso "debes iniciar sesión" y se
// redirige a /login. El aviso viaja en una sesión anónima creada al vuelo
// para que el render de /login lo pueda drenar.
//
// No hay niveles de autorización: toda sesión autenticada tiene acceso total.
func RequireLogin(store sessions.Store, secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess, ok := GetSession(r.Context()); ok && sess.LoggedIn() {
				next.ServeHTTP(w, r)
				return
			}

			notice := sessions.Flash{
				Severity: sessions.SeverityWarning,
				Message:  "You must sign in",
			}

			// Reusar la sesión anónima existente si la hay; si no, crear una
			// solo para transportar el flash hasta /login.
			if sess, ok := GetSession(r.Context()); ok {
				_ = store.PushFlash(r.Context(), sess.Token, notice)
			} else if anon, err := store.Create(r.Context(), ""); err == nil {
				_ = store.PushFlash(r.Context(), anon.Token, notice)
				sessions.SetCookie(w, anon.Token, secureCookies)
			}

			http.Redirect(w, r, "/login", http.StatusSeeOther)
		})
	}
}
