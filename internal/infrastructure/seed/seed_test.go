package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/playground-api/internal/domain/model"
)

func TestDefault(t *testing.T) {
	data, err := Default()
	require.NoError(t, err)

	catalog := data.Catalog()
	gpt, ok := catalog.Find("gpt-3.5")
	require.True(t, ok, "default catalog must contain gpt-3.5")
	assert.Equal(t, "GPT-3.5", gpt.Name)
	assert.Equal(t, model.ProviderOpenAI, gpt.Provider)
	assert.Positive(t, gpt.MaxTokens)
	assert.Positive(t, gpt.ContextWindow)

	require.NotEmpty(t, data.Templates)
	for _, tpl := range data.Templates {
		assert.NotEmpty(t, tpl.ID)
		assert.NotEmpty(t, tpl.Name)
		assert.NotEmpty(t, tpl.Prompt)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	data, err := Load("")
	require.NoError(t, err)

	defaults, err := Default()
	require.NoError(t, err)
	assert.Equal(t, defaults, data)
}

func TestLoadOverridesTemplatesOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
templates:
  - id: tpl-only
    name: Only
    prompt: the only template
`), 0o600))

	data, err := Load(path)
	require.NoError(t, err)
	require.Len(t, data.Templates, 1)
	assert.Equal(t, "tpl-only", data.Templates[0].ID)
	assert.Nil(t, data.Templates[0].Description)

	_, ok := data.Catalog().Find("gpt-3.5")
	assert.True(t, ok, "models keep their defaults when the file omits them")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseRejectsInvalidData(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "duplicate model id",
			yaml: `
models:
  - {id: a, name: A, max_tokens: 1, context_window: 1}
  - {id: a, name: B, max_tokens: 1, context_window: 1}
`,
			wantErr: "duplicate id",
		},
		{
			name: "non positive limits",
			yaml: `
models:
  - {id: a, name: A, max_tokens: 0, context_window: 1}
`,
			wantErr: "max_tokens must be positive",
		},
		{
			name: "unknown provider",
			yaml: `
models:
  - {id: a, name: A, max_tokens: 1, context_window: 1, provider: acme}
`,
			wantErr: "unknown provider",
		},
		{
			name: "case insensitive duplicate template name",
			yaml: `
templates:
  - {id: t1, name: Notes, prompt: x}
  - {id: t2, name: NOTES, prompt: y}
`,
			wantErr: "duplicate name",
		},
		{
			name: "blank prompt",
			yaml: `
templates:
  - {id: t1, name: Notes, prompt: "  "}
`,
			wantErr: "prompt is required",
		},
		{
			name:    "malformed yaml",
			yaml:    "models: [",
			wantErr: "decode seed file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), Data{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
