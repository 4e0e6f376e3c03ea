package satellite

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type mockRepository struct {
	mu   sync.Mutex
	rows map[string]*Satellite
}

func newMockRepository() *mockRepository {
	return &mockRepository{rows: make(map[string]*Satellite)}
}

func (m *mockRepository) Create(_ context.Context, s *Satellite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.rows {
		if other.EntityID == s.EntityID {
			return ErrAlreadyExists
		}
	}
	m.rows[s.ID] = s.DeepCopy()
	return nil
}

func (m *mockRepository) Update(_ context.Context, s *Satellite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[s.ID]; !ok {
		return ErrNotFound
	}
	m.rows[s.ID] = s.DeepCopy()
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *mockRepository) GetByID(_ context.Context, id string) (*Satellite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.rows[id]; ok {
		return s.DeepCopy(), nil
	}
	return nil, ErrNotFound
}

func (m *mockRepository) List(_ context.Context) ([]*Satellite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Satellite, 0, len(m.rows))
	for _, s := range m.rows {
		out = append(out, s.DeepCopy())
	}
	return out, nil
}

func TestRegistryCreateAndLookup(t *testing.T) {
	r := NewRegistry(newMockRepository())
	ctx := context.Background()

	created, err := r.Create(ctx, &Satellite{
		EntityID: "satellite.kitchen",
		Name:     "Kitchen Display",
		Area:     "kitchen",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Error("no id generated")
	}
	if created.Language != "en" {
		t.Errorf("language default = %q, want en", created.Language)
	}

	got, err := r.GetByEntityID("satellite.kitchen")
	if err != nil {
		t.Fatalf("GetByEntityID: %v", err)
	}
	if got.Name != "Kitchen Display" {
		t.Errorf("name = %q", got.Name)
	}

	// Cached copies must be independent.
	got.Name = "mutated"
	again, _ := r.GetByEntityID("satellite.kitchen")
	if again.Name != "Kitchen Display" {
		t.Error("cache returned a shared pointer")
	}

	if _, err := r.Create(ctx, &Satellite{EntityID: "satellite.kitchen"}); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("duplicate Create = %v, want ErrAlreadyExists", err)
	}
}

func TestRegistryValidation(t *testing.T) {
	r := NewRegistry(newMockRepository())
	tests := []struct {
		name string
		sat  *Satellite
	}{
		{"missing entity id", &Satellite{}},
		{"whitespace entity id", &Satellite{EntityID: "satellite kitchen"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Create(context.Background(), tt.sat); !errors.Is(err, ErrValidation) {
				t.Errorf("Create = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRegistryUpdateAndDelete(t *testing.T) {
	r := NewRegistry(newMockRepository())
	ctx := context.Background()

	created, err := r.Create(ctx, &Satellite{EntityID: "satellite.hall"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created.EntityID = "satellite.hallway"
	created.Use24Hour = true
	if _, err := r.Update(ctx, created); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := r.GetByEntityID("satellite.hall"); !errors.Is(err, ErrNotFound) {
		t.Error("old entity id still resolves")
	}
	got, err := r.GetByEntityID("satellite.hallway")
	if err != nil {
		t.Fatalf("GetByEntityID after update: %v", err)
	}
	if !got.Use24Hour {
		t.Error("Use24Hour not updated")
	}

	if err := r.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := r.Get(created.ID); !errors.Is(err, ErrNotFound) {
		t.Error("deleted satellite still cached")
	}
	if err := r.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestRegistryRefreshCache(t *testing.T) {
	repo := newMockRepository()
	repo.rows["abc"] = &Satellite{ID: "abc", EntityID: "satellite.attic", Language: "de"}

	r := NewRegistry(repo)
	if err := r.RefreshCache(context.Background()); err != nil {
		t.Fatalf("RefreshCache: %v", err)
	}
	got, err := r.GetByEntityID("satellite.attic")
	if err != nil {
		t.Fatalf("GetByEntityID: %v", err)
	}
	if got.Language != "de" {
		t.Errorf("language = %q, want de", got.Language)
	}
	if len(r.List()) != 1 {
		t.Errorf("List = %d, want 1", len(r.List()))
	}
}
