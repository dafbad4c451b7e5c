package bootstrap_test

import (
	"context"
	"testing"

	mem "vet-patient-records/internal/adapters/storage/memory"
	"vet-patient-records/internal/bootstrap"
	"vet-patient-records/internal/domain/users"
)

func TestRun_SeedsAdminOnce(t *testing.T) {
	repo := mem.NewUsersRepo()
	svc := users.NewService(repo)
	ctx := context.Background()

	opts := bootstrap.Options{AdminUsername: "admin", AdminPassword: "1234"}

	if err := bootstrap.Run(ctx, svc, repo, opts); err != nil {
		t.Fatal(err)
	}

	u, err := repo.GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatal(err)
	}
	if u.PasswordHash == "1234" || u.PasswordHash == "" {
		t.Fatalf("expected hashed password, got %q", u.PasswordHash)
	}

	// Segunda corrida: idempotente, no duplica ni rompe
	if err := bootstrap.Run(ctx, svc, repo, opts); err != nil {
		t.Fatalf("expected idempotent rerun, got %v", err)
	}

	again, err := repo.GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != u.ID {
		t.Fatalf("expected same admin after rerun, got %s vs %s", again.ID, u.ID)
	}
}

func TestRun_SeededCredentialAuthenticates(t *testing.T) {
	repo := mem.NewUsersRepo()
	svc := users.NewService(repo)
	ctx := context.Background()

	if err := bootstrap.Run(ctx, svc, repo, bootstrap.Options{}); err != nil {
		t.Fatal(err)
	}

	// Defaults: admin / 1234
	if _, err := svc.Authenticate(ctx, bootstrap.DefaultAdminUsername, bootstrap.DefaultAdminPassword); err != nil {
		t.Fatalf("expected default credential to authenticate, got %v", err)
	}
}
