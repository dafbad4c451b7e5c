package users

import (
	"context"
	"errors"
	"testing"
)

type testRepo struct {
	byUsername map[string]User
}

func newTestRepo() *testRepo {
	return &testRepo{byUsername: map[string]User{}}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	if _, ok := r.byUsername[u.Username]; ok {
		return errors.New("repo: already exists")
	}
	r.byUsername[u.Username] = u
	return nil
}

func (r *testRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), "admin", "1234")
	if err != nil {
		t.Fatal(err)
	}
	if u.PasswordHash == "" || u.PasswordHash == "1234" {
		t.Fatalf("expected bcrypt hash, got %q", u.PasswordHash)
	}
	if u.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "admin", "1234"); err != nil {
		t.Fatal(err)
	}

	// Credenciales correctas
	u, err := svc.Authenticate(ctx, "admin", "1234")
	if err != nil {
		t.Fatalf("expected successful auth, got %v", err)
	}
	if u.Username != "admin" {
		t.Fatalf("unexpected user %+v", u)
	}

	// Contraseña mala y usuario inexistente retornan el MISMO error
	if _, err := svc.Authenticate(ctx, "admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ghost", "1234"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestAuthenticate_IsCaseSensitive(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "admin", "1234"); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Authenticate(ctx, "Admin", "1234"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected case-sensitive username match, got %v", err)
	}
}
