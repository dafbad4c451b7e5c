package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"vet-patient-records/internal/domain/users"
)

type usersRepo struct {
	mu         sync.RWMutex
	byUsername map[string]users.User
}

func NewUsersRepo() users.Repository {
	return &usersRepo{
		byUsername: make(map[string]users.User),
	}
}

func (r *usersRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.Username) == "" {
		return errors.New("username required")
	}
	if _, exists := r.byUsername[u.Username]; exists {
		return errors.New("username already taken")
	}
	r.byUsername[u.Username] = u
	return nil
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byUsername[username]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}
