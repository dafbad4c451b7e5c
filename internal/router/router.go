package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	sessmem "vet-patient-records/internal/adapters/sessions/memory"
	sessredis "vet-patient-records/internal/adapters/sessions/redis"
	mem "vet-patient-records/internal/adapters/storage/memory"
	pg "vet-patient-records/internal/adapters/storage/postgres"
	"vet-patient-records/internal/bootstrap"
	"vet-patient-records/internal/domain/auth"
	"vet-patient-records/internal/domain/patients"
	"vet-patient-records/internal/domain/sessions"
	"vet-patient-records/internal/domain/users"
	"vet-patient-records/internal/middleware"
	"vet-patient-records/internal/platform/logger"
	"vet-patient-records/internal/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
)

type Options struct {
	Logger logger.Logger // nil => NewFromEnv

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: store de sesiones. Si no viene, REDIS_ADDR o in-memory.
	Sessions sessions.Store

	// SecureCookies marca Secure en la cookie de sesión (detrás de TLS).
	SecureCookies bool

	// Credencial admin a sembrar. Vacío => env o defaults (admin/1234).
	AdminUsername string
	AdminPassword string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to memory", map[string]any{"err": err.Error()})
			}
		}
	}

	var (
		usersRepo    users.Repository
		patientsRepo patients.Repository
	)
	if db != nil {
		usersRepo = pg.NewUsersRepo(db)
		patientsRepo = pg.NewPatientsRepo(db)
	} else {
		usersRepo = mem.NewUsersRepo()
		patientsRepo = mem.NewPatientsRepo()
	}

	sessionStore := opts.Sessions
	if sessionStore == nil {
		if addr := os.Getenv("REDIS_ADDR"); addr != "" {
			sessionStore = sessredis.NewStore(goredis.NewClient(&goredis.Options{Addr: addr}))
		} else {
			sessionStore = sessmem.NewStore()
		}
	}

	usersSvc := users.NewService(usersRepo)
	patientsSvc := patients.NewService(patientsRepo)

	adminUser, adminPass := opts.AdminUsername, opts.AdminPassword
	if adminUser == "" && adminPass == "" {
		adminUser, adminPass = bootstrap.AdminFromEnv()
	}

	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := bootstrap.Run(ctx, usersSvc, usersRepo, bootstrap.Options{
			DB:            db,
			AdminUsername: adminUser,
			AdminPassword: adminPass,
		}); err != nil {
			log.Error("bootstrap failed", map[string]any{"err": err.Error()})
		}
	}

	view, err := web.NewRenderer(log)
	if err != nil {
		// Templates embebidos que no parsean son un error de build, no
		// de runtime: no hay modo degradado razonable.
		panic(err)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.SessionContext(sessionStore))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Rutas públicas: /, /login, /logout
	auth.RegisterRoutes(r, auth.Options{
		Users:         usersSvc,
		Sessions:      sessionStore,
		View:          view,
		SecureCookies: opts.SecureCookies,
	})

	// Rutas protegidas: todo /patients detrás del guard
	r.Group(func(gr chi.Router) {
		gr.Use(middleware.RequireLogin(sessionStore, opts.SecureCookies))
		patients.RegisterRoutes(gr, patients.HandlerOptions{
			Service:  patientsSvc,
			Sessions: sessionStore,
			View:     view,
		})
	})

	return r
}
