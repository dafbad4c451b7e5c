package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-patient-records/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES ($1,$2,$3,$4)
	`,
		u.ID,
		u.Username,
		u.PasswordHash,
		u.CreatedAt,
	)
	return err
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return users.User{}, users.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`, username)

	var u users.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}

	return u, nil
}
