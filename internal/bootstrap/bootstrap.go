// Package bootstrap hace el trabajo de arranque de una sola vez: asegurar el
// esquema (si hay base de datos) y sembrar la credencial admin por defecto.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"vet-patient-records/internal/adapters/storage/postgres"
	"vet-patient-records/internal/domain/users"
)

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "1234"
)

type Options struct {
	// DB opcional: si viene, se corre EnsureSchema contra ella.
	DB *sql.DB

	// Credencial a sembrar. Vacíos => defaults (overrideables por env en
	// AdminFromEnv).
	AdminUsername string
	AdminPassword string
}

// AdminFromEnv lee ADMIN_USERNAME / ADMIN_PASSWORD con fallback a defaults.
func AdminFromEnv() (string, string) {
	u := os.Getenv("ADMIN_USERNAME")
	if u == "" {
		u = DefaultAdminUsername
	}
	p := os.Getenv("ADMIN_PASSWORD")
	if p == "" {
		p = DefaultAdminPassword
	}
	return u, p
}

// Run es idempotente: crear tablas usa IF NOT EXISTS y el admin solo se
// inserta si el username no existe todavía.
func Run(ctx context.Context, usersSvc *users.Service, repo users.Repository, opts Options) error {
	if opts.DB != nil {
		if err := postgres.EnsureSchema(ctx, opts.DB); err != nil {
			return err
		}
	}

	username := opts.AdminUsername
	if username == "" {
		username = DefaultAdminUsername
	}
	password := opts.AdminPassword
	if password == "" {
		password = DefaultAdminPassword
	}

	_, err := repo.GetByUsername(ctx, username)
	if err == nil {
		return nil // ya sembrado
	}
	if !errors.Is(err, users.ErrNotFound) {
		return err
	}

	_, err = usersSvc.Register(ctx, username, password)
	return err
}
