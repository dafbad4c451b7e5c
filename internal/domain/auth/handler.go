// Package auth expone las rutas de autenticación: /, /login y /logout.
// Hay una sola credencial (el admin sembrado en bootstrap); el login exitoso
// materializa una sesión nueva y el logout la destruye.
package auth

import (
	"errors"
	"net/http"

	"vet-patient-records/internal/domain/sessions"
	"vet-patient-records/internal/domain/users"
	"vet-patient-records/internal/middleware"
	"vet-patient-records/internal/web"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// loginLimiter frena intentos de fuerza bruta contra POST /login.
var loginLimiter = rate.NewLimiter(2, 20)

type Options struct {
	Users         *users.Service
	Sessions      sessions.Store
	View          *web.Renderer
	SecureCookies bool
}

func RegisterRoutes(r chi.Router, opts Options) {
	r.Get("/", indexHandler())
	r.Get("/login", loginFormHandler(opts))
	r.Post("/login", loginHandler(opts))
	r.Get("/logout", logoutHandler(opts))
}

func indexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := middleware.GetSession(r.Context()); ok && sess.LoggedIn() {
			http.Redirect(w, r, "/patients", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func loginFormHandler(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts.View.HTML(w, http.StatusOK, "login", web.Page{
			Title:   "Sign in",
			Flashes: web.DrainFlashes(r, opts.Sessions),
		})
	}
}

func loginHandler(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !loginLimiter.Allow() {
			http.Error(w, "too many login attempts, try again later", http.StatusTooManyRequests)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		username := r.PostFormValue("username")
		password := r.PostFormValue("password")

		u, err := opts.Users.Authenticate(r.Context(), username, password)
		if err != nil {
			if errors.Is(err, users.ErrInvalidCredentials) {
				// Mensaje genérico: no revelar cuál de los dos campos falló.
				fl := append(web.DrainFlashes(r, opts.Sessions), sessions.Flash{
					Severity: sessions.SeverityDanger,
					Message:  "Incorrect username or password",
				})
				opts.View.HTML(w, http.StatusOK, "login", web.Page{
					Title:   "Sign in",
					Flashes: fl,
				})
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// Sesión fresca en cada login; la anónima previa (si hubo) se descarta.
		if old := sessions.TokenFromRequest(r); old != "" {
			_ = opts.Sessions.Delete(r.Context(), old)
		}

		sess, err := opts.Sessions.Create(r.Context(), u.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		_ = opts.Sessions.PushFlash(r.Context(), sess.Token, sessions.Flash{
			Severity: sessions.SeveritySuccess,
			Message:  "Signed in successfully",
		})

		sessions.SetCookie(w, sess.Token, opts.SecureCookies)
		http.Redirect(w, r, "/patients", http.StatusSeeOther)
	}
}

func logoutHandler(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := sessions.TokenFromRequest(r); token != "" {
			_ = opts.Sessions.Delete(r.Context(), token)
		}
		sessions.ClearCookie(w)

		// Sesión anónima nueva solo para que /login muestre el aviso.
		if anon, err := opts.Sessions.Create(r.Context(), ""); err == nil {
			_ = opts.Sessions.PushFlash(r.Context(), anon.Token, sessions.Flash{
				Severity: sessions.SeverityInfo,
				Message:  "Signed out",
			})
			sessions.SetCookie(w, anon.Token, opts.SecureCookies)
		}

		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
