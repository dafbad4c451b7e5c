package main

import (
	"net/http"
	"os"
	"time"

	"vet-patient-records/internal/platform/logger"
	"vet-patient-records/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// .env opcional para dev; en producción las vars vienen del entorno
	_ = godotenv.Load()

	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := router.NewRouter(router.Options{
		Logger:        log,
		SecureCookies: os.Getenv("SECURE_COOKIES") == "true",
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
