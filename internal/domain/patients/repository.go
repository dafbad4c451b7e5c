package patients

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("patient not found")
)

type Repository interface {
	Create(ctx context.Context, p Patient) error
	Update(ctx context.Context, p Patient) error
	GetByID(ctx context.Context, id string) (Patient, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Patient, error)
}
