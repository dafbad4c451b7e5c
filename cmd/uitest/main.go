// uitest maneja un navegador real contra una instancia corriendo de la app,
// ejecuta la suite end-to-end y escribe un reporte HTML con capturas.
//
// Uso típico:
//
//	go run ./cmd/web &
//	go run ./cmd/uitest -base-url http://127.0.0.1:8080 -headless
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"vet-patient-records/internal/platform/logger"
	"vet-patient-records/internal/uitest"
)

func main() {
	var (
		baseURL  = flag.String("base-url", "http://127.0.0.1:8080", "base URL of the running app")
		headless = flag.Bool("headless", true, "run the browser headless")
		outDir   = flag.String("out", "reports", "directory for the HTML report and screenshots")
		username = flag.String("username", "admin", "admin username")
		password = flag.String("password", "1234", "admin password")
		timeout  = flag.Duration("timeout", 5*time.Minute, "overall suite timeout")
	)
	flag.Parse()

	log := logger.NewFromEnv()

	h, err := uitest.New(uitest.Config{
		BaseURL:  *baseURL,
		Headless: *headless,
		OutDir:   *outDir,
		Username: *username,
		Password: *password,
	}, log)
	if err != nil {
		log.Error("harness init failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
	defer h.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	results := h.Run(ctx)

	report, err := uitest.WriteReport(*outDir, *baseURL, results)
	if err != nil {
		log.Error("write report failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
	log.Info("report written", map[string]any{"path": report})

	for _, r := range results {
		if !r.Passed {
			os.Exit(1)
		}
	}
}
