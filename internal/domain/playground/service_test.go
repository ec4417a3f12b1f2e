package playground

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/janhq/playground-api/internal/domain/model"
	"github.com/janhq/playground-api/internal/domain/template"
	repo "github.com/janhq/playground-api/internal/infrastructure/repository/template"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func strPtr(s string) *string { return &s }

func testCatalog() *model.Catalog {
	return model.NewCatalog([]model.Model{
		{ID: "gpt-3.5", Name: "GPT-3.5", Description: "fast", MaxTokens: 4096, ContextWindow: 16385, Provider: model.ProviderOpenAI},
		{ID: "claude-3-sonnet", Name: "Claude 3 Sonnet", Description: "balanced", MaxTokens: 4096, ContextWindow: 200000, Provider: model.ProviderAnthropic},
	})
}

func testSeeds() []template.Seed {
	return []template.Seed{
		{ID: "tpl-code-review", Name: "Code Review", Prompt: "Review this code for bugs", Description: strPtr("Structured feedback")},
		{ID: "tpl-summarize", Name: "Summarize Text", Prompt: "Summarize the following text"},
		{ID: "tpl-translate", Name: "Translate", Prompt: "Translate into French", Description: strPtr("Tone preserving translation")},
	}
}

func newTestService(t *testing.T) (*service, *fakeClock) {
	t.Helper()
	s := newService(repo.NewInMemoryRepository(), testCatalog(), testSeeds(), NoLatency(), zerolog.Nop())
	clock := &fakeClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	s.now = clock.Now
	_, err := s.seed(context.Background())
	require.NoError(t, err)
	return s, clock
}

func templateIDs(ts []template.Template) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

func TestNewServiceSeedsTemplates(t *testing.T) {
	svc, err := NewService(repo.NewInMemoryRepository(), testCatalog(), testSeeds(), NoLatency(), zerolog.Nop())
	require.NoError(t, err)

	res := svc.ListTemplates(context.Background())
	require.True(t, res.Success)
	assert.Equal(t, []string{"tpl-code-review", "tpl-summarize", "tpl-translate"}, templateIDs(res.Data))
	for _, tpl := range res.Data {
		assert.Equal(t, tpl.CreatedAt, tpl.UpdatedAt)
	}
}

func TestListModels(t *testing.T) {
	s, _ := newTestService(t)

	res := s.ListModels(context.Background())
	require.True(t, res.Success)
	assert.Len(t, res.Data, 2)
	assert.Equal(t, "Models fetched successfully", res.Message)
	assert.Nil(t, res.Err())
}

func TestListModelsWithoutCatalog(t *testing.T) {
	s := newService(repo.NewInMemoryRepository(), nil, nil, NoLatency(), zerolog.Nop())

	res := s.ListModels(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, KindInternal, res.Error)
	assert.Equal(t, "An error occurred while fetching models", res.Message)
}

func TestGetModel(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	res := s.GetModel(ctx, "claude-3-sonnet")
	require.True(t, res.Success)
	assert.Equal(t, "Claude 3 Sonnet", res.Data.Name)

	miss := s.GetModel(ctx, "gpt-5")
	assert.False(t, miss.Success)
	assert.Equal(t, KindModelNotFound, miss.Error)
	assert.Equal(t, "No model found with id: gpt-5", miss.Message)
	var pe *Error
	require.ErrorAs(t, miss.Err(), &pe)
	assert.Equal(t, KindModelNotFound, pe.Kind)
}

func TestCompletePrompt(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	cfg := model.Config{Temperature: 0.7, MaxTokens: 2048, TopP: 1, FrequencyPenalty: 0}

	res := s.CompletePrompt(ctx, "Hello", "gpt-3.5", cfg)
	require.True(t, res.Success, res.Message)
	assert.Contains(t, res.Data, "GPT-3.5")
	assert.Contains(t, res.Data, "Hello")
	assert.Contains(t, res.Data, "Focused Mode")
	assert.Contains(t, res.Data, "Temperature: 0.7 (Focused)")
	assert.Contains(t, res.Data, "Max Tokens: 2048")
	assert.Contains(t, res.Data, "Top P: 1")
	assert.Contains(t, res.Data, "Frequency Penalty: 0")
	assert.NotContains(t, res.Data, "Hello...")

	again := s.CompletePrompt(ctx, "Hello", "gpt-3.5", cfg)
	assert.Equal(t, res.Data, again.Data, "completion must be deterministic")
}

func TestCompletePromptModes(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		temperature float64
		line        string
		mode        string
	}{
		{temperature: 1.0, line: "Temperature: 1 (Focused)", mode: "Focused Mode"},
		{temperature: 1.1, line: "Temperature: 1.1 (Creative)", mode: "Focused Mode"},
		{temperature: 1.2, line: "Temperature: 1.2 (Creative)", mode: "Focused Mode"},
		{temperature: 1.5, line: "Temperature: 1.5 (Creative)", mode: "Creative Mode"},
	}
	for _, tt := range tests {
		cfg := model.DefaultConfig()
		cfg.Temperature = tt.temperature
		res := s.CompletePrompt(ctx, "Write a poem", "claude-3-sonnet", cfg)
		require.True(t, res.Success)
		assert.Contains(t, res.Data, tt.line)
		assert.Contains(t, res.Data, tt.mode)
	}
}

func TestCompletePromptTruncatesLongPrompts(t *testing.T) {
	s, _ := newTestService(t)

	prompt := strings.Repeat("a", 200) + strings.Repeat("b", 50)
	res := s.CompletePrompt(context.Background(), prompt, "gpt-3.5", model.DefaultConfig())
	require.True(t, res.Success)
	assert.Contains(t, res.Data, strings.Repeat("a", 200)+"...")
	assert.NotContains(t, res.Data, "ab")
}

func TestCompletePromptIncludesSystemMessage(t *testing.T) {
	s, _ := newTestService(t)

	cfg := model.DefaultConfig()
	cfg.SystemMessage = strPtr("Be terse")
	res := s.CompletePrompt(context.Background(), "Hi", "gpt-3.5", cfg)
	require.True(t, res.Success)
	assert.Contains(t, res.Data, "System Message: Be terse")
}

func TestCompletePromptFailures(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	cfg := model.DefaultConfig()

	res := s.CompletePrompt(ctx, "Hi", "nonexistent-model", cfg)
	assert.False(t, res.Success)
	assert.Equal(t, KindInvalidModel, res.Error)
	assert.Equal(t, "Model nonexistent-model not found", res.Message)

	res = s.CompletePrompt(ctx, "   ", "gpt-3.5", cfg)
	assert.Equal(t, KindEmptyPrompt, res.Error)
	assert.Equal(t, "Prompt cannot be empty", res.Message)

	// The prompt is checked before the model.
	res = s.CompletePrompt(ctx, "", "nonexistent-model", cfg)
	assert.Equal(t, KindEmptyPrompt, res.Error)
}

func TestSaveTemplateRoundTrip(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	saved := s.SaveTemplate(ctx, template.CreateTemplateRequest{
		Name:        "  Bug Report  ",
		Prompt:      "  Describe the bug  ",
		Description: strPtr(" steps to reproduce "),
	})
	require.True(t, saved.Success, saved.Message)
	assert.Equal(t, "Template saved successfully", saved.Message)
	assert.True(t, strings.HasPrefix(saved.Data.ID, "tpl_"))

	got := s.GetTemplate(ctx, saved.Data.ID)
	require.True(t, got.Success)
	assert.Equal(t, "Bug Report", got.Data.Name)
	assert.Equal(t, "Describe the bug", got.Data.Prompt)
	require.NotNil(t, got.Data.Description)
	assert.Equal(t, "steps to reproduce", *got.Data.Description)
	assert.True(t, got.Data.CreatedAt.Equal(got.Data.UpdatedAt))

	list := s.ListTemplates(ctx)
	require.True(t, list.Success)
	ids := templateIDs(list.Data)
	assert.Equal(t, saved.Data.ID, ids[len(ids)-1], "new templates are appended")
}

func TestSaveTemplateBlankDescriptionIsDropped(t *testing.T) {
	s, _ := newTestService(t)

	saved := s.SaveTemplate(context.Background(), template.CreateTemplateRequest{Name: "x", Prompt: "y", Description: strPtr("   ")})
	require.True(t, saved.Success)
	assert.Nil(t, saved.Data.Description)
}

func TestSaveTemplateValidation(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     template.CreateTemplateRequest
		kind    ErrorKind
		message string
	}{
		{"empty name", template.CreateTemplateRequest{Name: "", Prompt: "x"}, KindEmptyName, "Template name cannot be empty"},
		{"blank name", template.CreateTemplateRequest{Name: "   ", Prompt: "x"}, KindEmptyName, "Template name cannot be empty"},
		{"empty prompt", template.CreateTemplateRequest{Name: "x", Prompt: ""}, KindEmptyPrompt, "Template prompt cannot be empty"},
		{"both empty reports name first", template.CreateTemplateRequest{}, KindEmptyName, "Template name cannot be empty"},
		{"duplicate name any case", template.CreateTemplateRequest{Name: "code REVIEW", Prompt: "x"}, KindDuplicateName, `A template with the name "code REVIEW" already exists`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.SaveTemplate(ctx, tt.req)
			assert.False(t, res.Success)
			assert.Equal(t, tt.kind, res.Error)
			assert.Equal(t, tt.message, res.Message)
			assert.True(t, tt.kind.IsValidation())
		})
	}
}

func TestSaveTemplateNameReusableAfterDelete(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	first := s.SaveTemplate(ctx, template.CreateTemplateRequest{Name: "Notes", Prompt: "one"})
	require.True(t, first.Success)

	dup := s.SaveTemplate(ctx, template.CreateTemplateRequest{Name: "NOTES", Prompt: "two"})
	assert.Equal(t, KindDuplicateName, dup.Error)

	del := s.DeleteTemplate(ctx, first.Data.ID)
	require.True(t, del.Success)
	assert.True(t, del.Data)

	again := s.SaveTemplate(ctx, template.CreateTemplateRequest{Name: "NOTES", Prompt: "two"})
	require.True(t, again.Success)
	assert.NotEqual(t, first.Data.ID, again.Data.ID)
}

// barrierRepository holds every FindByName caller until parties callers
// have arrived, forcing concurrent saves to interleave between the
// duplicate check and the insert.
type barrierRepository struct {
	*repo.InMemoryRepository
	arrived sync.WaitGroup
}

func newBarrierRepository(parties int) *barrierRepository {
	r := &barrierRepository{InMemoryRepository: repo.NewInMemoryRepository()}
	r.arrived.Add(parties)
	return r
}

func (r *barrierRepository) FindByName(ctx context.Context, name string) (template.Template, error) {
	r.arrived.Done()
	r.arrived.Wait()
	return r.InMemoryRepository.FindByName(ctx, name)
}

func TestSaveTemplateConcurrentSameNameBothSucceed(t *testing.T) {
	const parties = 2
	s := newService(newBarrierRepository(parties), testCatalog(), nil, NoLatency(), zerolog.Nop())
	ctx := context.Background()

	results := make([]Result[template.Template], parties)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.SaveTemplate(ctx, template.CreateTemplateRequest{Name: "Same", Prompt: "p"})
		}(i)
	}
	wg.Wait()

	for _, res := range results {
		require.True(t, res.Success, res.Message)
	}
	assert.NotEqual(t, results[0].Data.ID, results[1].Data.ID)

	list := s.ListTemplates(ctx)
	require.True(t, list.Success)
	same := 0
	for _, tpl := range list.Data {
		if tpl.Name == "Same" {
			same++
		}
	}
	assert.Equal(t, parties, same)

	count, err := s.CountTemplates(ctx)
	require.NoError(t, err)
	assert.Equal(t, parties, count)
}

func TestUpdateTemplate(t *testing.T) {
	s, clock := newTestService(t)
	ctx := context.Background()

	before := s.GetTemplate(ctx, "tpl-summarize")
	require.True(t, before.Success)

	clock.Advance(time.Minute)
	res := s.UpdateTemplate(ctx, "tpl-summarize", template.UpdateTemplateRequest{Name: strPtr("new")})
	require.True(t, res.Success)
	assert.Equal(t, "Template updated successfully", res.Message)
	assert.Equal(t, "new", res.Data.Name)
	assert.Equal(t, before.Data.Prompt, res.Data.Prompt)
	assert.Equal(t, before.Data.ID, res.Data.ID)
	assert.True(t, res.Data.CreatedAt.Equal(before.Data.CreatedAt))
	assert.True(t, res.Data.UpdatedAt.After(before.Data.UpdatedAt))

	stored := s.GetTemplate(ctx, "tpl-summarize")
	assert.Equal(t, res.Data, stored.Data)
}

func TestUpdateTemplateUpdatedAtStrictlyIncreasesWithStalledClock(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	first := s.UpdateTemplate(ctx, "tpl-translate", template.UpdateTemplateRequest{Prompt: strPtr("v2")})
	require.True(t, first.Success)
	second := s.UpdateTemplate(ctx, "tpl-translate", template.UpdateTemplateRequest{Prompt: strPtr("v3")})
	require.True(t, second.Success)

	assert.True(t, first.Data.UpdatedAt.After(first.Data.CreatedAt))
	assert.True(t, second.Data.UpdatedAt.After(first.Data.UpdatedAt))
}

func TestUpdateTemplateDoesNotCheckNameCollisions(t *testing.T) {
	s, _ := newTestService(t)

	res := s.UpdateTemplate(context.Background(), "tpl-translate", template.UpdateTemplateRequest{Name: strPtr("code review")})
	assert.True(t, res.Success)
}

func TestUpdateAndDeleteUnknownTemplate(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	upd := s.UpdateTemplate(ctx, "missing", template.UpdateTemplateRequest{Name: strPtr("x")})
	assert.Equal(t, KindTemplateNotFound, upd.Error)
	assert.Equal(t, "No template found with id: missing", upd.Message)
	assert.True(t, upd.Error.IsNotFound())

	del := s.DeleteTemplate(ctx, "missing")
	assert.False(t, del.Success)
	assert.False(t, del.Data)
	assert.Equal(t, KindTemplateNotFound, del.Error)

	get := s.GetTemplate(ctx, "missing")
	assert.Equal(t, KindTemplateNotFound, get.Error)
}

func TestSearchTemplates(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query matches nothing", "", []string{}},
		{"blank query matches nothing", "   ", []string{}},
		{"name match ignores case", "CODE", []string{"tpl-code-review"}},
		{"prompt match", "following text", []string{"tpl-summarize"}},
		{"description match", "tone", []string{"tpl-translate"}},
		{"order preserved across fields", "t", []string{"tpl-code-review", "tpl-summarize", "tpl-translate"}},
		{"no match", "zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.SearchTemplates(ctx, tt.query)
			require.True(t, res.Success)
			assert.Equal(t, tt.want, templateIDs(res.Data))
			assert.NotNil(t, res.Data)
		})
	}

	res := s.SearchTemplates(ctx, "review")
	assert.Equal(t, "Found 1 template(s)", res.Message)
}

func TestListTemplatesReturnsCopy(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	res := s.ListTemplates(ctx)
	require.True(t, res.Success)
	res.Data[0].Name = "tampered"
	*res.Data[0].Description = "tampered"

	again := s.GetTemplate(ctx, res.Data[0].ID)
	assert.Equal(t, "Code Review", again.Data.Name)
	assert.Equal(t, "Structured feedback", *again.Data.Description)
}

func TestResetTemplates(t *testing.T) {
	s, clock := newTestService(t)
	ctx := context.Background()

	require.True(t, s.SaveTemplate(ctx, template.CreateTemplateRequest{Name: "extra", Prompt: "p"}).Success)
	require.True(t, s.DeleteTemplate(ctx, "tpl-code-review").Success)

	clock.Advance(time.Hour)
	res := s.ResetTemplates(ctx)
	require.True(t, res.Success)
	assert.Equal(t, "Templates reset to default", res.Message)
	assert.Equal(t, []string{"tpl-code-review", "tpl-summarize", "tpl-translate"}, templateIDs(res.Data))
	for _, tpl := range res.Data {
		assert.True(t, tpl.CreatedAt.Equal(clock.Now()), "reset uses fresh timestamps")
	}

	list := s.ListTemplates(ctx)
	assert.Equal(t, templateIDs(res.Data), templateIDs(list.Data))
}

func TestValidateConfig(t *testing.T) {
	s, _ := newTestService(t)

	ok := s.ValidateConfig(model.DefaultConfig())
	assert.True(t, ok.Success)
	assert.True(t, ok.Data)
	assert.Equal(t, "Configuration is valid", ok.Message)

	bad := s.ValidateConfig(model.Config{Temperature: 3, MaxTokens: 0, TopP: 0.5, FrequencyPenalty: -1})
	assert.False(t, bad.Success)
	assert.Equal(t, KindInvalidConfiguration, bad.Error)
	assert.Equal(t, "Temperature must be between 0 and 2, Max tokens must be between 1 and 32000, Frequency penalty must be between 0 and 2", bad.Message)
}

// brokenRepository panics on every call.
type brokenRepository struct {
	template.Repository
}

func TestOperationsRecoverFromPanics(t *testing.T) {
	s := newService(brokenRepository{}, testCatalog(), nil, NoLatency(), zerolog.Nop())
	ctx := context.Background()

	list := s.ListTemplates(ctx)
	assert.Equal(t, KindInternal, list.Error)
	assert.Equal(t, "An error occurred while fetching templates", list.Message)

	save := s.SaveTemplate(ctx, template.CreateTemplateRequest{Name: "n", Prompt: "p"})
	assert.Equal(t, KindInternal, save.Error)
	assert.Equal(t, "An error occurred while saving the template", save.Message)

	del := s.DeleteTemplate(ctx, "x")
	assert.Equal(t, KindInternal, del.Error)

	reset := s.ResetTemplates(ctx)
	assert.Equal(t, KindInternal, reset.Error)
	assert.False(t, KindInternal.IsValidation())
}

func TestOperationsWaitForConfiguredLatency(t *testing.T) {
	latency := DefaultLatency()
	s := newService(repo.NewInMemoryRepository(), testCatalog(), testSeeds(), latency, zerolog.Nop())

	var slept []time.Duration
	s.sleep = func(d time.Duration) { slept = append(slept, d) }
	ctx := context.Background()

	s.ListModels(ctx)
	s.GetModel(ctx, "gpt-3.5")
	s.CompletePrompt(ctx, "hi", "gpt-3.5", model.DefaultConfig())
	s.ListTemplates(ctx)
	s.SearchTemplates(ctx, "x")
	s.SaveTemplate(ctx, template.CreateTemplateRequest{Name: "a", Prompt: "b"})
	s.DeleteTemplate(ctx, "missing")
	s.ResetTemplates(ctx)
	s.ValidateConfig(model.DefaultConfig())

	assert.Equal(t, []time.Duration{
		latency.Models,
		latency.Model,
		latency.Completion,
		latency.Templates,
		latency.Search,
		latency.Save,
		latency.Delete,
		latency.Reset,
	}, slept)
}

func TestRealLatencyDelaysCompletion(t *testing.T) {
	l := NoLatency()
	l.Models = 20 * time.Millisecond
	s := newService(repo.NewInMemoryRepository(), testCatalog(), nil, l, zerolog.Nop())

	start := time.Now()
	res := s.ListModels(context.Background())
	assert.True(t, res.Success)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestLatencyScaled(t *testing.T) {
	half := DefaultLatency().Scaled(0.5)
	assert.Equal(t, 750*time.Millisecond, half.Completion)
	assert.Equal(t, NoLatency(), DefaultLatency().Scaled(0))
}

func TestResultErr(t *testing.T) {
	ok := Success(1, "fine")
	assert.NoError(t, ok.Err())

	failed := Failure[int](KindDuplicateName, "taken")
	err := failed.Err()
	require.Error(t, err)
	assert.Equal(t, "DuplicateName: taken", err.Error())
	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, KindDuplicateName, pe.Kind)
	assert.Equal(t, "taken", pe.Message)
}
