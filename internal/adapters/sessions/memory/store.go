// Package memory implementa sessions.Store en memoria de proceso. Es el
// default para dev y tests; en producción con más de una réplica conviene
// el adapter redis.
package memory

import (
	"context"
	"sync"
	"time"

	"vet-patient-records/internal/domain/sessions"

	"github.com/google/uuid"
)

type store struct {
	mu      sync.Mutex
	byToken map[string]sessions.Session
	now     func() time.Time
}

func NewStore() sessions.Store {
	return &store{
		byToken: make(map[string]sessions.Session),
		now:     time.Now,
	}
}

func (s *store) Create(ctx context.Context, userID string) (sessions.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	sess := sessions.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(sessions.TTL),
	}
	s.byToken[sess.Token] = sess
	return sess, nil
}

func (s *store) Get(ctx context.Context, token string) (sessions.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byToken[token]
	if !ok {
		return sessions.Session{}, sessions.ErrNotFound
	}
	if s.now().After(sess.ExpiresAt) {
		delete(s.byToken, token)
		return sessions.Session{}, sessions.ErrNotFound
	}
	return sess, nil
}

// sweepLocked reclama las sesiones vencidas cuyo token nunca volvió a
// presentarse (p.ej. las anónimas que crea el guard para visitantes sin
// cookie). Corre en cada Create para que el mapa no crezca sin límite.
// Requiere s.mu tomado.
func (s *store) sweepLocked(now time.Time) {
	for token, sess := range s.byToken {
		if now.After(sess.ExpiresAt) {
			delete(s.byToken, token)
		}
	}
}

func (s *store) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byToken, token)
	return nil
}

func (s *store) PushFlash(ctx context.Context, token string, f sessions.Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byToken[token]
	if !ok {
		return sessions.ErrNotFound
	}
	sess.Flashes = append(sess.Flashes, f)
	s.byToken[token] = sess
	return nil
}

func (s *store) PopFlashes(ctx context.Context, token string) ([]sessions.Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byToken[token]
	if !ok {
		return nil, sessions.ErrNotFound
	}

	out := sess.Flashes
	sess.Flashes = nil
	s.byToken[token] = sess
	return out, nil
}
