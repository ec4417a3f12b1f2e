package seed

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/janhq/playground-api/internal/domain/model"
	"github.com/janhq/playground-api/internal/domain/template"
)

//go:embed models.yaml templates.yaml
var defaults embed.FS

// Data is the static content the playground starts from.
type Data struct {
	Models    []model.Model   `yaml:"models"`
	Templates []template.Seed `yaml:"templates"`
}

// Catalog builds the immutable model catalog.
func (d Data) Catalog() *model.Catalog {
	return model.NewCatalog(d.Models)
}

// Default loads the embedded seed files.
func Default() (Data, error) {
	var data Data
	for _, name := range []string{"models.yaml", "templates.yaml"} {
		raw, err := defaults.ReadFile(name)
		if err != nil {
			return Data{}, fmt.Errorf("read embedded %s: %w", name, err)
		}
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return Data{}, fmt.Errorf("decode embedded %s: %w", name, err)
		}
	}
	if err := data.Validate(); err != nil {
		return Data{}, err
	}
	return data, nil
}

// Load reads seed data from path, falling back to the embedded defaults
// when path is empty. Sections missing from the file keep their defaults.
func Load(path string) (Data, error) {
	data, err := Default()
	if err != nil || strings.TrimSpace(path) == "" {
		return data, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw, data)
}

// Parse decodes raw YAML over base and validates the result.
func Parse(raw []byte, base Data) (Data, error) {
	var override Data
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return Data{}, fmt.Errorf("decode seed file: %w", err)
	}
	if override.Models != nil {
		base.Models = override.Models
	}
	if override.Templates != nil {
		base.Templates = override.Templates
	}
	if err := base.Validate(); err != nil {
		return Data{}, err
	}
	return base, nil
}

// Validate checks catalog and template invariants.
func (d Data) Validate() error {
	var errs []error

	modelIDs := make(map[string]struct{}, len(d.Models))
	for i, m := range d.Models {
		if strings.TrimSpace(m.ID) == "" {
			errs = append(errs, fmt.Errorf("model %d: id is required", i))
			continue
		}
		if _, dup := modelIDs[m.ID]; dup {
			errs = append(errs, fmt.Errorf("model %q: duplicate id", m.ID))
		}
		modelIDs[m.ID] = struct{}{}
		if m.MaxTokens <= 0 {
			errs = append(errs, fmt.Errorf("model %q: max_tokens must be positive", m.ID))
		}
		if m.ContextWindow <= 0 {
			errs = append(errs, fmt.Errorf("model %q: context_window must be positive", m.ID))
		}
		if m.Provider != "" && !m.Provider.Valid() {
			errs = append(errs, fmt.Errorf("model %q: unknown provider %q", m.ID, m.Provider))
		}
	}

	templateIDs := make(map[string]struct{}, len(d.Templates))
	names := make(map[string]struct{}, len(d.Templates))
	for i, t := range d.Templates {
		if strings.TrimSpace(t.ID) == "" {
			errs = append(errs, fmt.Errorf("template %d: id is required", i))
		} else if _, dup := templateIDs[t.ID]; dup {
			errs = append(errs, fmt.Errorf("template %q: duplicate id", t.ID))
		}
		templateIDs[t.ID] = struct{}{}

		name := strings.ToLower(strings.TrimSpace(t.Name))
		if name == "" {
			errs = append(errs, fmt.Errorf("template %q: name is required", t.ID))
		} else if _, dup := names[name]; dup {
			errs = append(errs, fmt.Errorf("template %q: duplicate name %q", t.ID, t.Name))
		}
		names[name] = struct{}{}

		if strings.TrimSpace(t.Prompt) == "" {
			errs = append(errs, fmt.Errorf("template %q: prompt is required", t.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid seed data: %w", errors.Join(errs...))
	}
	return nil
}
