package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-patient-records/internal/domain/sessions"
)

func TestCreateAndGet(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	sess, err := s.Create(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if sess.Token == "" {
		t.Fatal("expected generated token")
	}
	if !sess.LoggedIn() {
		t.Fatal("expected logged-in session")
	}

	got, err := s.Get(ctx, sess.Token)
	if err != nil {
		t.Fatal(err)
	}
	if got.UserID != "user-1" {
		t.Fatalf("unexpected session %+v", got)
	}

	// Sesión anónima: UserID vacío
	anon, err := s.Create(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if anon.LoggedIn() {
		t.Fatal("expected anonymous session")
	}
}

func TestGet_UnknownToken(t *testing.T) {
	s := NewStore()

	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, sessions.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_ExpiredSession(t *testing.T) {
	st := &store{
		byToken: make(map[string]sessions.Session),
		now:     time.Now,
	}
	ctx := context.Background()

	sess, err := st.Create(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}

	st.now = func() time.Time { return time.Now().Add(sessions.TTL + time.Minute) }
	if _, err := st.Get(ctx, sess.Token); !errors.Is(err, sessions.ErrNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}

func TestCreate_SweepsAbandonedExpiredSessions(t *testing.T) {
	st := &store{
		byToken: make(map[string]sessions.Session),
		now:     time.Now,
	}
	ctx := context.Background()

	// Sesiones anónimas abandonadas: el token nunca vuelve a presentarse.
	for i := 0; i < 100; i++ {
		if _, err := st.Create(ctx, ""); err != nil {
			t.Fatal(err)
		}
	}
	if len(st.byToken) != 100 {
		t.Fatalf("expected 100 live sessions, got %d", len(st.byToken))
	}

	st.now = func() time.Time { return time.Now().Add(sessions.TTL + time.Hour) }

	// El próximo Create reclama todo lo vencido
	fresh, err := st.Create(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(st.byToken) != 1 {
		t.Fatalf("expected expired sessions reclaimed, got %d held", len(st.byToken))
	}
	if _, ok := st.byToken[fresh.Token]; !ok {
		t.Fatal("expected the fresh session to survive the sweep")
	}
}

func TestDelete_IsIdempotent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	sess, _ := s.Create(ctx, "user-1")
	if err := s.Delete(ctx, sess.Token); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, sess.Token); err != nil {
		t.Fatalf("expected deleting twice to be fine, got %v", err)
	}
	if _, err := s.Get(ctx, sess.Token); !errors.Is(err, sessions.ErrNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
}

func TestFlashes_AreOneShot(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	sess, _ := s.Create(ctx, "user-1")

	_ = s.PushFlash(ctx, sess.Token, sessions.Flash{Severity: sessions.SeveritySuccess, Message: "uno"})
	_ = s.PushFlash(ctx, sess.Token, sessions.Flash{Severity: sessions.SeverityDanger, Message: "dos"})

	fl, err := s.PopFlashes(ctx, sess.Token)
	if err != nil {
		t.Fatal(err)
	}
	if len(fl) != 2 || fl[0].Message != "uno" || fl[1].Message != "dos" {
		t.Fatalf("unexpected flashes %+v", fl)
	}

	again, err := s.PopFlashes(ctx, sess.Token)
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 {
		t.Fatalf("expected queue drained, got %+v", again)
	}
}
