package patients

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Input son los cuatro campos crudos del formulario. La regla `required`
// rechaza solo el string vacío: un valor de puro whitespace pasa.
// Leniencia deliberada.
type Input struct {
	Name    string `validate:"required"`
	Species string `validate:"required"`
	Owner   string `validate:"required"`
	Phone   string
}

// Service implementa el CRUD de pacientes. Escrituras concurrentes sobre el
// mismo paciente son last-write-wins: no hay detección de conflictos.
type Service struct {
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, in Input) (Patient, error) {
	if err := s.validate.Struct(in); err != nil {
		return Patient{}, ErrInvalidInput
	}

	now := s.now()
	p := Patient{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Species:   in.Species,
		Owner:     in.Owner,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

// Update sobreescribe los cuatro campos en su lugar.
func (s *Service) Update(ctx context.Context, id string, in Input) (Patient, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Patient{}, err
	}

	if err := s.validate.Struct(in); err != nil {
		return Patient{}, ErrInvalidInput
	}

	current.Name = in.Name
	current.Species = in.Species
	current.Owner = in.Owner
	current.Phone = in.Phone
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Patient{}, err
	}
	return current, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Patient, error) {
	return s.repo.List(ctx)
}
