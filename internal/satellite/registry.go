package satellite

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger defines the logging interface used by the Registry.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry wraps the Repository with an in-memory cache for the hot
// lookup path: every timer request resolves its satellite by entity id.
type Registry struct {
	repo    Repository
	cache   map[string]*Satellite // by ID
	byEnt   map[string]*Satellite // by EntityID
	cacheMu sync.RWMutex
	logger  Logger
}

// NewRegistry creates a satellite registry.
func NewRegistry(repo Repository) *Registry {
	return &Registry{
		repo:   repo,
		cache:  make(map[string]*Satellite),
		byEnt:  make(map[string]*Satellite),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// GenerateID returns a new satellite id.
func GenerateID() string {
	return uuid.New().String()
}

// RefreshCache reloads all satellites from the repository. Call on
// startup.
func (r *Registry) RefreshCache(ctx context.Context) error {
	sats, err := r.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading satellites: %w", err)
	}

	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	r.cache = make(map[string]*Satellite, len(sats))
	r.byEnt = make(map[string]*Satellite, len(sats))
	for _, s := range sats {
		cp := s.DeepCopy()
		r.cache[cp.ID] = cp
		r.byEnt[cp.EntityID] = cp
	}

	r.logger.Info("satellite cache refreshed", "count", len(sats))
	return nil
}

// Get retrieves a satellite by registry id.
func (r *Registry) Get(id string) (*Satellite, error) {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()
	if s, ok := r.cache[id]; ok {
		return s.DeepCopy(), nil
	}
	return nil, ErrNotFound
}

// GetByEntityID retrieves a satellite by its entity reference.
func (r *Registry) GetByEntityID(entityID string) (*Satellite, error) {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()
	if s, ok := r.byEnt[entityID]; ok {
		return s.DeepCopy(), nil
	}
	return nil, ErrNotFound
}

// List returns all registered satellites.
func (r *Registry) List() []*Satellite {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()
	out := make([]*Satellite, 0, len(r.cache))
	for _, s := range r.cache {
		out = append(out, s.DeepCopy())
	}
	return out
}

// Create validates and persists a new satellite. A missing id is
// generated; timestamps are set here.
func (r *Registry) Create(ctx context.Context, s *Satellite) (*Satellite, error) {
	if s.ID == "" {
		s.ID = GenerateID()
	}
	now := time.Now().UTC().Truncate(time.Second)
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.Language == "" {
		s.Language = "en"
	}
	if err := validate(s); err != nil {
		return nil, err
	}

	r.cacheMu.RLock()
	_, taken := r.byEnt[s.EntityID]
	r.cacheMu.RUnlock()
	if taken {
		return nil, ErrAlreadyExists
	}

	if err := r.repo.Create(ctx, s); err != nil {
		return nil, err
	}

	r.cacheMu.Lock()
	cp := s.DeepCopy()
	r.cache[cp.ID] = cp
	r.byEnt[cp.EntityID] = cp
	r.cacheMu.Unlock()

	r.logger.Info("satellite registered", "id", s.ID, "entity_id", s.EntityID)
	return s.DeepCopy(), nil
}

// Update validates and persists changes to a satellite.
func (r *Registry) Update(ctx context.Context, s *Satellite) (*Satellite, error) {
	existing, err := r.Get(s.ID)
	if err != nil {
		return nil, err
	}
	s.CreatedAt = existing.CreatedAt
	s.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	if err := validate(s); err != nil {
		return nil, err
	}

	if err := r.repo.Update(ctx, s); err != nil {
		return nil, err
	}

	r.cacheMu.Lock()
	delete(r.byEnt, existing.EntityID)
	cp := s.DeepCopy()
	r.cache[cp.ID] = cp
	r.byEnt[cp.EntityID] = cp
	r.cacheMu.Unlock()

	return s.DeepCopy(), nil
}

// Delete removes a satellite.
func (r *Registry) Delete(ctx context.Context, id string) error {
	existing, err := r.Get(id)
	if err != nil {
		return err
	}
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	r.cacheMu.Lock()
	delete(r.cache, id)
	delete(r.byEnt, existing.EntityID)
	r.cacheMu.Unlock()

	r.logger.Info("satellite removed", "id", id, "entity_id", existing.EntityID)
	return nil
}

// validate checks satellite fields.
func validate(s *Satellite) error {
	var errs []string
	if s.EntityID == "" {
		errs = append(errs, "entity_id is required")
	}
	if strings.ContainsAny(s.EntityID, " \t\n") {
		errs = append(errs, "entity_id must not contain whitespace")
	}
	if s.Language == "" {
		errs = append(errs, "language is required")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, "; "))
	}
	return nil
}
