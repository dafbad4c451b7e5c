package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("user not found")
)

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByUsername(ctx context.Context, username string) (User, error)
}
