package model

// Provider identifies who serves a model.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderCustom    Provider = "custom"
)

// Valid reports whether p is one of the known providers.
func (p Provider) Valid() bool {
	switch p {
	case ProviderOpenAI, ProviderAnthropic, ProviderCustom:
		return true
	}
	return false
}

// Model is a read-only catalog entry.
type Model struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description" yaml:"description"`
	MaxTokens     int      `json:"maxTokens" yaml:"max_tokens"`
	ContextWindow int      `json:"contextWindow" yaml:"context_window"`
	Provider      Provider `json:"provider,omitempty" yaml:"provider,omitempty"`
}

// Catalog is the immutable set of models loaded at startup.
type Catalog struct {
	models []Model
}

// NewCatalog copies models into a new catalog.
func NewCatalog(models []Model) *Catalog {
	return &Catalog{models: append([]Model(nil), models...)}
}

// All returns a copy of the catalog in seed order.
func (c *Catalog) All() []Model {
	return append([]Model(nil), c.models...)
}

// Find looks a model up by id.
func (c *Catalog) Find(id string) (Model, bool) {
	for _, m := range c.models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// Len returns the number of models in the catalog.
func (c *Catalog) Len() int {
	return len(c.models)
}
