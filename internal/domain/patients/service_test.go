package patients

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Patient
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Patient{}}
}

func (r *testRepo) Create(ctx context.Context, p Patient) error {
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Patient) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Patient, error) {
	p, ok := r.byID[id]
	if !ok {
		return Patient{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) List(ctx context.Context) ([]Patient, error) {
	out := make([]Patient, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestCreate_RequiredFields(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	cases := []Input{
		{Name: "", Species: "Perro", Owner: "Juan"},
		{Name: "Firulais", Species: "", Owner: "Juan"},
		{Name: "Firulais", Species: "Perro", Owner: ""},
	}
	for _, in := range cases {
		if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected nothing persisted after failed creates, got %d", len(repo.byID))
	}
}

// El chequeo required rechaza solo el string vacío: whitespace puro pasa.
func TestCreate_WhitespaceOnlyPassesValidation(t *testing.T) {
	svc := NewService(newTestRepo())

	p, err := svc.Create(context.Background(), Input{
		Name:    "   ",
		Species: "Perro",
		Owner:   "Juan",
	})
	if err != nil {
		t.Fatalf("expected whitespace-only name to pass, got %v", err)
	}
	if p.Name != "   " {
		t.Fatalf("expected raw value preserved, got %q", p.Name)
	}
}

func TestCreate_PersistsExactValues(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), Input{
		Name:    "Firulais",
		Species: "Perro",
		Owner:   "Juan Pérez",
		Phone:   "8091234567",
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.ID == "" {
		t.Fatal("expected generated id")
	}

	got, err := svc.GetByID(context.Background(), p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Firulais" || got.Species != "Perro" || got.Owner != "Juan Pérez" || got.Phone != "8091234567" {
		t.Fatalf("unexpected stored patient: %+v", got)
	}
}

func TestUpdate_OverwritesAllFields(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	svc.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	p, err := svc.Create(ctx, Input{Name: "Michi", Species: "Gato", Owner: "Ana", Phone: "111"})
	if err != nil {
		t.Fatal(err)
	}

	svc.now = func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }
	upd, err := svc.Update(ctx, p.ID, Input{Name: "Michi", Species: "Gato", Owner: "Ana", Phone: "222"})
	if err != nil {
		t.Fatal(err)
	}

	if upd.Phone != "222" {
		t.Fatalf("expected new phone, got %q", upd.Phone)
	}
	if upd.Name != "Michi" || upd.Species != "Gato" || upd.Owner != "Ana" {
		t.Fatalf("expected other fields unchanged, got %+v", upd)
	}
	if !upd.CreatedAt.Before(upd.UpdatedAt) {
		t.Fatalf("expected updated_at to move, created=%v updated=%v", upd.CreatedAt, upd.UpdatedAt)
	}
}

func TestUpdate_UnknownID(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Update(context.Background(), "nope", Input{Name: "X", Species: "Y", Owner: "Z"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_InvalidInputLeavesRecordUntouched(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, Input{Name: "Michi", Species: "Gato", Owner: "Ana"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Update(ctx, p.ID, Input{Name: "", Species: "Gato", Owner: "Ana"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	got, _ := svc.GetByID(ctx, p.ID)
	if got.Name != "Michi" {
		t.Fatalf("expected record untouched, got %+v", got)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, Input{Name: "Rocky", Species: "Perro", Owner: "Luis"})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := svc.GetByID(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestList_StableOrder(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"a", "b", "c"} {
		tick := base.Add(time.Duration(i) * time.Second)
		svc.now = func() time.Time { return tick }
		if _, err := svc.Create(ctx, Input{Name: name, Species: "s", Owner: "o"}); err != nil {
			t.Fatal(err)
		}
	}

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 patients, got %d", len(items))
	}
	for i, want := range []string{"a", "b", "c"} {
		if items[i].Name != want {
			t.Fatalf("expected order a,b,c got %v", items)
		}
	}
}
