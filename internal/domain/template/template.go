package template

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned by repositories when no template has the given id.
var ErrNotFound = errors.New("template not found")

// Template is a user-saved prompt.
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Prompt      string    `json:"prompt"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Matches reports whether query occurs, case-insensitively, in the name,
// prompt or description. A template without a description never matches
// on description.
func (t Template) Matches(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(t.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Prompt), q) {
		return true
	}
	return t.Description != nil && strings.Contains(strings.ToLower(*t.Description), q)
}

// Clone returns a copy that shares no memory with t.
func (t Template) Clone() Template {
	t.Description = cloneString(t.Description)
	return t
}

// Seed is a default template shipped with the service.
type Seed struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Prompt      string  `yaml:"prompt"`
	Description *string `yaml:"description,omitempty"`
}

// Materialize turns the seed into a live template stamped with now.
func (s Seed) Materialize(now time.Time) Template {
	return Template{
		ID:          s.ID,
		Name:        s.Name,
		Prompt:      s.Prompt,
		Description: cloneString(s.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CreateTemplateRequest contains the fields accepted when saving a template.
type CreateTemplateRequest struct {
	Name        string  `json:"name"`
	Prompt      string  `json:"prompt"`
	Description *string `json:"description,omitempty"`
}

// UpdateTemplateRequest carries the mutable fields of a template. Nil
// fields are left untouched.
type UpdateTemplateRequest struct {
	Name        *string `json:"name,omitempty"`
	Prompt      *string `json:"prompt,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply merges the provided fields onto t.
func (r UpdateTemplateRequest) Apply(t *Template) {
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.Prompt != nil {
		t.Prompt = *r.Prompt
	}
	if r.Description != nil {
		t.Description = cloneString(r.Description)
	}
}

// Filter narrows FindByFilter results.
type Filter struct {
	Search *string
}

// Repository is the storage contract for the live template set. Every
// method is individually safe for concurrent use; sequences of calls are
// not atomic.
type Repository interface {
	List(ctx context.Context) ([]Template, error)
	FindByID(ctx context.Context, id string) (Template, error)
	FindByName(ctx context.Context, name string) (Template, error)
	FindByFilter(ctx context.Context, filter Filter) ([]Template, error)
	Create(ctx context.Context, t Template) error
	Update(ctx context.Context, t Template) error
	Delete(ctx context.Context, id string) error
	Replace(ctx context.Context, templates []Template) error
	Count(ctx context.Context) (int, error)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
