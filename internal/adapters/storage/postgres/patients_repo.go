package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-patient-records/internal/domain/patients"
)

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

func (r *PatientsRepo) Create(ctx context.Context, p patients.Patient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patients (id, name, species, owner, phone, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Owner,
		toNullString(p.Phone),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PatientsRepo) Update(ctx context.Context, p patients.Patient) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE patients
		SET
			name = $2,
			species = $3,
			owner = $4,
			phone = $5,
			updated_at = $6
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Owner,
		toNullString(p.Phone),
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return patients.ErrNotFound
	}
	return nil
}

func (r *PatientsRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return patients.Patient{}, patients.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, species, owner, phone, created_at, updated_at
		FROM patients
		WHERE id = $1
	`, id)

	p, err := scanPatient(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return patients.Patient{}, patients.ErrNotFound
		}
		return patients.Patient{}, err
	}
	return p, nil
}

func (r *PatientsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return patients.ErrNotFound
	}
	return nil
}

func (r *PatientsRepo) List(ctx context.Context) ([]patients.Patient, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, species, owner, phone, created_at, updated_at
		FROM patients
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]patients.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func scanPatient(scan func(dest ...any) error) (patients.Patient, error) {
	var p patients.Patient
	var phone sql.NullString
	if err := scan(
		&p.ID,
		&p.Name,
		&p.Species,
		&p.Owner,
		&phone,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return patients.Patient{}, err
	}
	if phone.Valid {
		p.Phone = phone.String
	}
	return p, nil
}

// phone es nullable; string vacío se persiste como NULL
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
