package uitest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"vet-patient-records/internal/platform/httpclient"

	"github.com/go-rod/rod"
)

// step es un caso de la suite. Exactamente uno de browser/http está seteado.
type step struct {
	name    string
	slug    string
	browser func(h *Harness, page *rod.Page)
	http    func(ctx context.Context, c *httpclient.Client) error
}

var suite = []step{
	{
		name: "Login with valid credentials reaches the patient list",
		slug: "login_ok",
		browser: func(h *Harness, page *rod.Page) {
			h.login(page, h.cfg.Username, h.cfg.Password)
			mustContain(page, "Patients</h1>")
			mustContain(page, "Signed in successfully")
		},
	},
	{
		name: "Login with a wrong password is rejected with a generic message",
		slug: "login_fail",
		browser: func(h *Harness, page *rod.Page) {
			h.login(page, h.cfg.Username, "definitely-wrong")
			mustContain(page, "Incorrect username or password")
			mustNotContain(page, "Patients</h1>")
		},
	},
	{
		name: "Creating a patient persists it and shows it in the list",
		slug: "create_patient",
		browser: func(h *Harness, page *rod.Page) {
			h.login(page, h.cfg.Username, h.cfg.Password)
			page.MustNavigate(h.cfg.BaseURL + "/patients/new").MustWaitLoad()
			page.MustElement(`input[name="name"]`).MustInput("Firulais")
			page.MustElement(`input[name="species"]`).MustInput("Perro")
			page.MustElement(`input[name="owner"]`).MustInput("Juan Pérez")
			page.MustElement(`input[name="phone"]`).MustInput("8091234567")
			submit(page)

			mustContain(page, "Patient created successfully")
			mustContain(page, "Firulais")
			mustContain(page, "Juan Pérez")
		},
	},
	{
		name: "Creating a patient without required fields is rejected",
		slug: "create_patient_invalid",
		browser: func(h *Harness, page *rod.Page) {
			h.login(page, h.cfg.Username, h.cfg.Password)
			page.MustNavigate(h.cfg.BaseURL + "/patients/new").MustWaitLoad()
			page.MustElement(`input[name="phone"]`).MustInput("5550000")
			submit(page)

			mustContain(page, "Name, species, and owner are required.")
			// El formulario vuelve vacío: los valores ingresados se descartan.
			if page.MustElement(`input[name="phone"]`).MustProperty("value").Str() != "" {
				panic("expected the form to come back empty")
			}
		},
	},
	{
		name: "Editing a patient's phone keeps the other fields",
		slug: "edit_patient",
		browser: func(h *Harness, page *rod.Page) {
			h.login(page, h.cfg.Username, h.cfg.Password)
			createViaForm(h, page, "Michi", "Gato", "Ana Gómez", "8090000001")

			row := page.MustElementR("tr", "Michi")
			row.MustElement(`a[href$="/edit"]`).MustClick()
			page.MustWaitLoad()
			phone := page.MustElement(`input[name="phone"]`)
			phone.MustSelectAllText().MustInput("8099999999")
			submit(page)

			mustContain(page, "Patient updated successfully")
			mustContain(page, "8099999999")
			mustContain(page, "Michi")
			mustContain(page, "Ana Gómez")
		},
	},
	{
		name: "Deleting a patient removes it from the list",
		slug: "delete_patient",
		browser: func(h *Harness, page *rod.Page) {
			h.login(page, h.cfg.Username, h.cfg.Password)
			createViaForm(h, page, "Rocky", "Perro", "Luis Mena", "")

			// El confirm() del botón Delete se acepta vía CDP.
			wait, handle := page.MustHandleDialog()
			row := page.MustElementR("tr", "Rocky")
			go row.MustElement(`form[action$="/delete"] button`).MustClick()
			wait()
			handle(true, "")
			page.MustWaitLoad()

			mustContain(page, "Patient deleted successfully")
		},
	},
	{
		name: "Visiting /patients without a session redirects to /login",
		slug: "guard_redirect",
		http: func(ctx context.Context, c *httpclient.Client) error {
			resp, err := c.Get(ctx, "/patients")
			if err != nil {
				return err
			}
			if resp.StatusCode != http.StatusSeeOther {
				return fmt.Errorf("expected 303, got %d", resp.StatusCode)
			}
			if resp.RedirectedTo != "/login" {
				return fmt.Errorf("expected redirect to /login, got %q", resp.RedirectedTo)
			}
			return nil
		},
	},
	{
		name: "Logging out ends the session and shows the notice",
		slug: "logout",
		browser: func(h *Harness, page *rod.Page) {
			h.login(page, h.cfg.Username, h.cfg.Password)
			page.MustNavigate(h.cfg.BaseURL + "/logout").MustWaitLoad()

			mustContain(page, "Signed out")

			// La sesión quedó invalidada: /patients vuelve al login.
			page.MustNavigate(h.cfg.BaseURL + "/patients").MustWaitLoad()
			mustContain(page, "Sign in")
		},
	},
	{
		name: "Failed login over direct HTTP does not grant a session",
		slug: "http_login_flow",
		http: func(ctx context.Context, c *httpclient.Client) error {
			form := url.Values{"username": {"admin"}, "password": {"wrong"}}
			resp, err := c.PostForm(ctx, "/login", form)
			if err != nil {
				return err
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("expected 200 re-render, got %d", resp.StatusCode)
			}
			// Credenciales malas no otorgan sesión.
			after, err := c.Get(ctx, "/patients")
			if err != nil {
				return err
			}
			if after.StatusCode != http.StatusSeeOther {
				return fmt.Errorf("expected /patients to stay gated, got %d", after.StatusCode)
			}
			return nil
		},
	},
}

// createViaForm registra un paciente por el formulario y espera la vuelta a
// la lista.
func createViaForm(h *Harness, page *rod.Page, name, species, owner, phone string) {
	page.MustNavigate(h.cfg.BaseURL + "/patients/new").MustWaitLoad()
	page.MustElement(`input[name="name"]`).MustInput(name)
	page.MustElement(`input[name="species"]`).MustInput(species)
	page.MustElement(`input[name="owner"]`).MustInput(owner)
	if phone != "" {
		page.MustElement(`input[name="phone"]`).MustInput(phone)
	}
	submit(page)
}
