// Package uitest es la suite end-to-end que maneja un navegador real contra
// una instancia corriendo de la app y emite un reporte HTML con capturas.
// Las aserciones puramente HTTP (códigos, redirects) van por httpclient en
// lugar del navegador.
package uitest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vet-patient-records/internal/platform/httpclient"
	"vet-patient-records/internal/platform/logger"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

type Config struct {
	BaseURL  string
	Headless bool
	OutDir   string // reportes y capturas

	Username string
	Password string
}

type Result struct {
	Name       string
	Passed     bool
	Err        string
	Screenshot string
	Duration   time.Duration
}

type Harness struct {
	cfg     Config
	log     logger.Logger
	browser *rod.Browser
	cleanup func()
}

func New(cfg Config, log logger.Logger) (*Harness, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("uitest: base url required")
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.OutDir == "" {
		cfg.OutDir = "reports"
	}
	if cfg.Username == "" {
		cfg.Username = "admin"
	}
	if cfg.Password == "" {
		cfg.Password = "1234"
	}

	if err := os.MkdirAll(filepath.Join(cfg.OutDir, "screenshots"), 0o755); err != nil {
		return nil, err
	}

	l := launcher.New().Headless(cfg.Headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("uitest: launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("uitest: connect browser: %w", err)
	}

	return &Harness{
		cfg:     cfg,
		log:     log,
		browser: browser,
		cleanup: func() {
			_ = browser.Close()
			l.Cleanup()
		},
	}, nil
}

func (h *Harness) Close() {
	if h.cleanup != nil {
		h.cleanup()
	}
}

// Run ejecuta la suite completa. Cada paso corre en un contexto incógnito
// propio y deja una captura, pase o falle.
func (h *Harness) Run(ctx context.Context) []Result {
	results := make([]Result, 0, len(suite))

	for i, st := range suite {
		shot := filepath.Join(h.cfg.OutDir, "screenshots", fmt.Sprintf("%02d_%s.png", i+1, st.slug))
		start := time.Now()

		err := h.runStep(ctx, st, shot)

		res := Result{
			Name:       st.name,
			Passed:     err == nil,
			Screenshot: shot,
			Duration:   time.Since(start),
		}
		if err != nil {
			res.Err = err.Error()
			h.log.Warn("step failed", map[string]any{"step": st.name, "err": err.Error()})
		} else {
			h.log.Info("step passed", map[string]any{"step": st.name})
		}
		results = append(results, res)
	}

	return results
}

func (h *Harness) runStep(ctx context.Context, st step, screenshot string) error {
	if st.http != nil {
		// Paso HTTP directo, sin navegador ni captura.
		client, err := httpclient.NewNoRedirect(h.cfg.BaseURL, httpclient.DefaultTimeout)
		if err != nil {
			return err
		}
		return st.http(ctx, client)
	}

	incog, err := h.browser.Incognito()
	if err != nil {
		return err
	}

	page, err := incog.Page(proto.TargetCreateTarget{})
	if err != nil {
		return err
	}
	defer func() { _ = page.Close() }()

	page = page.Context(ctx)

	stepErr := rod.Try(func() {
		st.browser(h, page)
	})

	// Captura pase o falle.
	_ = rod.Try(func() { page.MustScreenshot(screenshot) })

	return stepErr
}

// login llena y envía el formulario de /login.
func (h *Harness) login(page *rod.Page, username, password string) {
	page.MustNavigate(h.cfg.BaseURL + "/login").MustWaitLoad()
	page.MustElement(`input[name="username"]`).MustInput(username)
	page.MustElement(`input[name="password"]`).MustInput(password)
	submit(page)
}

// submit clickea el botón del formulario y espera la navegación resultante.
func submit(page *rod.Page) {
	wait := page.MustWaitNavigation()
	page.MustElement(`button[type="submit"]`).MustClick()
	wait()
	page.MustWaitLoad()
}

// mustContain falla el paso si el HTML de la página no contiene s.
func mustContain(page *rod.Page, s string) {
	if !strings.Contains(page.MustHTML(), s) {
		panic(fmt.Sprintf("page does not contain %q", s))
	}
}

// mustNotContain es el inverso.
func mustNotContain(page *rod.Page, s string) {
	if strings.Contains(page.MustHTML(), s) {
		panic(fmt.Sprintf("page unexpectedly contains %q", s))
	}
}
