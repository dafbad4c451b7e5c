package middleware

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vetapp_requests_total",
		Help: "Total HTTP requests served, by method, path and status.",
	}, []string{"method", "path", "status"})

	errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vetapp_errors_total",
		Help: "Total HTTP responses with status >= 500.",
	}, []string{"method", "path"})
)

func init() {
	prometheus.MustRegister(requestsTotal, errorsTotal)
}

// Metrics cuenta requests y errores por endpoint. Usa el route pattern de
// chi (p.ej. /patients/{patientID}/edit) para mantener acotada la cardinalidad.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := chi.RouteContext(r.Context()).RoutePattern()
		if path == "" {
			path = r.URL.Path
		}

		requestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(ww.Status())).Inc()
		if ww.Status() >= http.StatusInternalServerError {
			errorsTotal.WithLabelValues(r.Method, path).Inc()
		}
	})
}
