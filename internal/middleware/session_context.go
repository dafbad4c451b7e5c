package middleware

import (
	"context"
	"errors"
	"net/http"

	"vet-patient-records/internal/domain/sessions"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionContext:
// - Si viene cookie y el token resuelve a una sesión viva => la setea en el
//   contexto. Si no, el request sigue igual; RequireLogin decide después.
// - Una cookie con token muerto (expirado o borrado) se limpia de paso.
func SessionContext(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessions.TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := store.Get(r.Context(), token)
			if err != nil {
				if errors.Is(err, sessions.ErrNotFound) {
					sessions.ClearCookie(w)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession retorna la sesión del contexto, si SessionContext encontró una.
func GetSession(ctx context.Context) (sessions.Session, bool) {
	v := ctx.Value(sessionKey)
	if v == nil {
		return sessions.Session{}, false
	}
	s, ok := v.(sessions.Session)
	return s, ok
}
