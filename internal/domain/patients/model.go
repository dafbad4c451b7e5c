package patients

import "time"

// Patient es la ficha mínima de un paciente de la clínica.
type Patient struct {
	ID string

	Name    string
	Species string
	Owner   string
	Phone   string // opcional

	CreatedAt time.Time
	UpdatedAt time.Time
}
