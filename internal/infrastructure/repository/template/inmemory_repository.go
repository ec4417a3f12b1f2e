package template

import (
	"context"
	"fmt"
	"strings"
	"sync"

	domain "github.com/janhq/playground-api/internal/domain/template"
)

// InMemoryRepository keeps the live template set for the lifetime of the
// process. Each call holds the lock only for its own duration.
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries []domain.Template
}

// NewInMemoryRepository returns an empty repository. The playground
// service seeds it on construction.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// List returns a copy of every template in insertion order.
func (r *InMemoryRepository) List(ctx context.Context) ([]domain.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Template, 0, len(r.entries))
	for _, t := range r.entries {
		out = append(out, t.Clone())
	}
	return out, nil
}

// FindByID returns the template with the given id.
func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (domain.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.entries[i].Clone(), nil
	}
	return domain.Template{}, fmt.Errorf("find template %q: %w", id, domain.ErrNotFound)
}

// FindByName returns the first template whose name equals name, ignoring case.
func (r *InMemoryRepository) FindByName(ctx context.Context, name string) (domain.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.entries {
		if strings.EqualFold(t.Name, name) {
			return t.Clone(), nil
		}
	}
	return domain.Template{}, fmt.Errorf("find template named %q: %w", name, domain.ErrNotFound)
}

// FindByFilter returns matching templates in insertion order.
func (r *InMemoryRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]domain.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Template, 0)
	for _, t := range r.entries {
		if filter.Search != nil && !t.Matches(*filter.Search) {
			continue
		}
		out = append(out, t.Clone())
	}
	return out, nil
}

// Create appends t. The id must not already exist.
func (r *InMemoryRepository) Create(ctx context.Context, t domain.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(t.ID) >= 0 {
		return fmt.Errorf("create template %q: id already exists", t.ID)
	}
	r.entries = append(r.entries, t.Clone())
	return nil
}

// Update replaces the stored template with the same id, keeping its position.
func (r *InMemoryRepository) Update(ctx context.Context, t domain.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(t.ID)
	if i < 0 {
		return fmt.Errorf("update template %q: %w", t.ID, domain.ErrNotFound)
	}
	r.entries[i] = t.Clone()
	return nil
}

// Delete removes the template with the given id.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete template %q: %w", id, domain.ErrNotFound)
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	return nil
}

// Replace discards every template and stores templates in their place.
func (r *InMemoryRepository) Replace(ctx context.Context, templates []domain.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]domain.Template, 0, len(templates))
	for _, t := range templates {
		entries = append(entries, t.Clone())
	}
	r.entries = entries
	return nil
}

// Count returns the size of the live set.
func (r *InMemoryRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries), nil
}

func (r *InMemoryRepository) indexOf(id string) int {
	for i, t := range r.entries {
		if t.ID == id {
			return i
		}
	}
	return -1
}
