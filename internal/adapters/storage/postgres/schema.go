package postgres

import (
	"context"
	"database/sql"
)

// EnsureSchema crea las tablas si no existen. Idempotente: se puede correr
// en cada arranque.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS patients (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			species    TEXT NOT NULL,
			owner      TEXT NOT NULL,
			phone      TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
