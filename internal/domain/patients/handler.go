package patients

import (
	"errors"
	"net/http"

	"vet-patient-records/internal/domain/sessions"
	"vet-patient-records/internal/web"

	"github.com/go-chi/chi/v5"
)

const requiredFieldsMsg = "Name, species, and owner are required."

type HandlerOptions struct {
	Service  *Service
	Sessions sessions.Store
	View     *web.Renderer
}

// RegisterRoutes monta el CRUD bajo /patients. El guard de sesión lo aplica
// el router al grupo completo; acá asumimos request ya autenticado.
func RegisterRoutes(r chi.Router, opts HandlerOptions) {
	r.Route("/patients", func(pr chi.Router) {
		pr.Get("/", listHandler(opts))
		pr.Get("/new", newFormHandler(opts))
		pr.Post("/new", createHandler(opts))
		pr.Get("/{patientID}/edit", editFormHandler(opts))
		pr.Post("/{patientID}/edit", updateHandler(opts))
		pr.Post("/{patientID}/delete", deleteHandler(opts))
	})
}

// formData alimenta patient_form.html tanto para alta como para edición.
type formData struct {
	Action   string
	FormPath string
	Patient  Patient
}

func listHandler(opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := opts.Service.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		opts.View.HTML(w, http.StatusOK, "patients", web.Page{
			Title:    "Patients",
			LoggedIn: true,
			Flashes:  web.DrainFlashes(r, opts.Sessions),
			Data:     items,
		})
	}
}

func newFormHandler(opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts.View.HTML(w, http.StatusOK, "patient_form", web.Page{
			Title:    "New patient",
			LoggedIn: true,
			Flashes:  web.DrainFlashes(r, opts.Sessions),
			Data:     formData{Action: "New", FormPath: "/patients/new"},
		})
	}
}

func createHandler(opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		in := Input{
			Name:    r.PostFormValue("name"),
			Species: r.PostFormValue("species"),
			Owner:   r.PostFormValue("owner"),
			Phone:   r.PostFormValue("phone"),
		}

		_, err := opts.Service.Create(r.Context(), in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				// El formulario vuelve vacío: los valores ingresados no se
				// preservan.
				fl := append(web.DrainFlashes(r, opts.Sessions), sessions.Flash{
					Severity: sessions.SeverityDanger,
					Message:  requiredFieldsMsg,
				})
				opts.View.HTML(w, http.StatusOK, "patient_form", web.Page{
					Title:    "New patient",
					LoggedIn: true,
					Flashes:  fl,
					Data:     formData{Action: "New", FormPath: "/patients/new"},
				})
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		flashAndRedirect(w, r, opts, sessions.SeveritySuccess, "Patient created successfully")
	}
}

func editFormHandler(opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := opts.Service.GetByID(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		opts.View.HTML(w, http.StatusOK, "patient_form", web.Page{
			Title:    "Edit patient",
			LoggedIn: true,
			Flashes:  web.DrainFlashes(r, opts.Sessions),
			Data:     formData{Action: "Edit", FormPath: "/patients/" + p.ID + "/edit", Patient: p},
		})
	}
}

func updateHandler(opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		id := chi.URLParam(r, "patientID")
		in := Input{
			Name:    r.PostFormValue("name"),
			Species: r.PostFormValue("species"),
			Owner:   r.PostFormValue("owner"),
			Phone:   r.PostFormValue("phone"),
		}

		_, err := opts.Service.Update(r.Context(), id, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.NotFound(w, r)
			case errors.Is(err, ErrInvalidInput):
				// Se re-renderiza con los valores almacenados, no con los
				// enviados.
				stored, gerr := opts.Service.GetByID(r.Context(), id)
				if gerr != nil {
					http.NotFound(w, r)
					return
				}
				fl := append(web.DrainFlashes(r, opts.Sessions), sessions.Flash{
					Severity: sessions.SeverityDanger,
					Message:  requiredFieldsMsg,
				})
				opts.View.HTML(w, http.StatusOK, "patient_form", web.Page{
					Title:    "Edit patient",
					LoggedIn: true,
					Flashes:  fl,
					Data:     formData{Action: "Edit", FormPath: "/patients/" + id + "/edit", Patient: stored},
				})
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		flashAndRedirect(w, r, opts, sessions.SeveritySuccess, "Patient updated successfully")
	}
}

func deleteHandler(opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := opts.Service.Delete(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		flashAndRedirect(w, r, opts, sessions.SeverityInfo, "Patient deleted successfully")
	}
}

func flashAndRedirect(w http.ResponseWriter, r *http.Request, opts HandlerOptions, sev sessions.Severity, msg string) {
	if token := sessions.TokenFromRequest(r); token != "" {
		_ = opts.Sessions.PushFlash(r.Context(), token, sessions.Flash{Severity: sev, Message: msg})
	}
	http.Redirect(w, r, "/patients", http.StatusSeeOther)
}
