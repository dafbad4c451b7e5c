// Package redis implementa sessions.Store sobre Redis, para despliegues con
// más de una réplica del proceso web. El TTL lo aplica Redis directamente.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"vet-patient-records/internal/domain/sessions"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

type store struct {
	rdb *redis.Client
	now func() time.Time
}

func NewStore(rdb *redis.Client) sessions.Store {
	return &store{
		rdb: rdb,
		now: time.Now,
	}
}

// record es la forma serializada de la sesión (sin el token, que es la key).
type record struct {
	UserID    string           `json:"user_id"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
	Flashes   []sessions.Flash `json:"flashes,omitempty"`
}

func (s *store) Create(ctx context.Context, userID string) (sessions.Session, error) {
	now := s.now()
	sess := sessions.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(sessions.TTL),
	}

	if err := s.save(ctx, sess); err != nil {
		return sessions.Session{}, err
	}
	return sess, nil
}

func (s *store) Get(ctx context.Context, token string) (sessions.Session, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+token).Bytes()
	if err == redis.Nil {
		return sessions.Session{}, sessions.ErrNotFound
	}
	if err != nil {
		return sessions.Session{}, err
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return sessions.Session{}, err
	}

	return sessions.Session{
		Token:     token,
		UserID:    rec.UserID,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
		Flashes:   rec.Flashes,
	}, nil
}

func (s *store) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}

func (s *store) PushFlash(ctx context.Context, token string, f sessions.Flash) error {
	sess, err := s.Get(ctx, token)
	if err != nil {
		return err
	}
	sess.Flashes = append(sess.Flashes, f)
	return s.save(ctx, sess)
}

func (s *store) PopFlashes(ctx context.Context, token string) ([]sessions.Flash, error) {
	sess, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(sess.Flashes) == 0 {
		return nil, nil
	}

	out := sess.Flashes
	sess.Flashes = nil
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *store) save(ctx context.Context, sess sessions.Session) error {
	rec := record{
		UserID:    sess.UserID,
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt,
		Flashes:   sess.Flashes,
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return sessions.ErrNotFound
	}
	return s.rdb.Set(ctx, keyPrefix+sess.Token, raw, ttl).Err()
}
