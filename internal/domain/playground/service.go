package playground

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/janhq/playground-api/internal/domain/model"
	"github.com/janhq/playground-api/internal/domain/template"
	"github.com/janhq/playground-api/internal/utils/idgen"
)

const tracerName = "playground"

// Service answers model, completion and template requests. Every method
// returns an envelope; expected failures never surface as panics or errors.
type Service interface {
	ListModels(ctx context.Context) Result[[]model.Model]
	GetModel(ctx context.Context, id string) Result[model.Model]
	CompletePrompt(ctx context.Context, prompt, modelID string, cfg model.Config) Result[string]

	ListTemplates(ctx context.Context) Result[[]template.Template]
	GetTemplate(ctx context.Context, id string) Result[template.Template]
	SearchTemplates(ctx context.Context, query string) Result[[]template.Template]
	SaveTemplate(ctx context.Context, req template.CreateTemplateRequest) Result[template.Template]
	UpdateTemplate(ctx context.Context, id string, req template.UpdateTemplateRequest) Result[template.Template]
	DeleteTemplate(ctx context.Context, id string) Result[bool]
	ResetTemplates(ctx context.Context) Result[[]template.Template]
	// CountTemplates reports the size of the live set without simulated
	// latency. It backs metrics, not the playground UI.
	CountTemplates(ctx context.Context) (int, error)

	ValidateConfig(cfg model.Config) Result[bool]
}

type service struct {
	repo    template.Repository
	catalog *model.Catalog
	seeds   []template.Seed
	latency Latency
	log     zerolog.Logger
	tracer  trace.Tracer

	now   func() time.Time
	sleep func(time.Duration)
	newID func() string
}

// NewService builds the playground service and seeds repo with the
// default templates. repo must not be shared with any other component.
func NewService(repo template.Repository, catalog *model.Catalog, seeds []template.Seed, latency Latency, log zerolog.Logger) (Service, error) {
	s := newService(repo, catalog, seeds, latency, log)
	if _, err := s.seed(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func newService(repo template.Repository, catalog *model.Catalog, seeds []template.Seed, latency Latency, log zerolog.Logger) *service {
	return &service{
		repo:    repo,
		catalog: catalog,
		seeds:   append([]template.Seed(nil), seeds...),
		latency: latency,
		log:     log.With().Str("component", "playground-service").Logger(),
		tracer:  otel.Tracer(tracerName),
		now:     func() time.Time { return time.Now().UTC() },
		sleep:   time.Sleep,
		newID:   func() string { return idgen.New(idgen.TemplatePrefix) },
	}
}

func (s *service) seed(ctx context.Context) ([]template.Template, error) {
	now := s.now()
	templates := make([]template.Template, 0, len(s.seeds))
	for _, seed := range s.seeds {
		templates = append(templates, seed.Materialize(now))
	}
	if err := s.repo.Replace(ctx, templates); err != nil {
		return nil, fmt.Errorf("seed templates: %w", err)
	}
	s.log.Debug().Int("templates", len(templates)).Msg("seeded default templates")
	return templates, nil
}

// finish normalizes a panic into an Internal failure and closes the span.
// It must be deferred directly by the operation.
func finish[T any](span trace.Span, log zerolog.Logger, op, internalMessage string, res *Result[T]) {
	if r := recover(); r != nil {
		log.Error().
			Str("operation", op).
			Interface("panic", r).
			Bytes("stack", debug.Stack()).
			Msg("operation panicked")
		*res = Failure[T](KindInternal, internalMessage)
	}

	span.SetAttributes(attribute.Bool("playground.success", res.Success))
	if !res.Success {
		span.SetAttributes(attribute.String("playground.error", string(res.Error)))
		if res.Error == KindInternal {
			span.SetStatus(codes.Error, res.Message)
		}
	}
	span.End()
}

func (s *service) internal(op string, err error) {
	s.log.Error().Err(err).Str("operation", op).Msg("operation failed")
}

func (s *service) ListModels(ctx context.Context) (res Result[[]model.Model]) {
	const msg = "An error occurred while fetching models"
	_, span := s.tracer.Start(ctx, "playground.ListModels")
	defer finish(span, s.log, "list_models", msg, &res)

	s.sleep(s.latency.Models)

	if s.catalog == nil {
		s.internal("list_models", errors.New("model catalog unavailable"))
		return Failure[[]model.Model](KindInternal, msg)
	}
	return Success(s.catalog.All(), "Models fetched successfully")
}

func (s *service) GetModel(ctx context.Context, id string) (res Result[model.Model]) {
	const msg = "An error occurred while fetching the model"
	_, span := s.tracer.Start(ctx, "playground.GetModel", trace.WithAttributes(attribute.String("model.id", id)))
	defer finish(span, s.log, "get_model", msg, &res)

	s.sleep(s.latency.Model)

	if s.catalog == nil {
		s.internal("get_model", errors.New("model catalog unavailable"))
		return Failure[model.Model](KindInternal, msg)
	}
	m, ok := s.catalog.Find(id)
	if !ok {
		return Failure[model.Model](KindModelNotFound, fmt.Sprintf("No model found with id: %s", id))
	}
	return Success(m, "Model fetched successfully")
}

func (s *service) CompletePrompt(ctx context.Context, prompt, modelID string, cfg model.Config) (res Result[string]) {
	const msg = "An error occurred while processing your request"
	_, span := s.tracer.Start(ctx, "playground.CompletePrompt", trace.WithAttributes(
		attribute.String("model.id", modelID),
		attribute.Int("prompt.length", len(prompt)),
		attribute.Float64("config.temperature", cfg.Temperature),
	))
	defer finish(span, s.log, "complete_prompt", msg, &res)

	s.sleep(s.latency.Completion)

	if strings.TrimSpace(prompt) == "" {
		return Failure[string](KindEmptyPrompt, "Prompt cannot be empty")
	}
	if s.catalog == nil {
		s.internal("complete_prompt", errors.New("model catalog unavailable"))
		return Failure[string](KindInternal, msg)
	}
	m, ok := s.catalog.Find(modelID)
	if !ok {
		return Failure[string](KindInvalidModel, fmt.Sprintf("Model %s not found", modelID))
	}

	text, err := renderCompletion(m, prompt, cfg)
	if err != nil {
		s.internal("complete_prompt", err)
		return Failure[string](KindInternal, msg)
	}
	return Success(text, "Message sent successfully")
}

func (s *service) ListTemplates(ctx context.Context) (res Result[[]template.Template]) {
	const msg = "An error occurred while fetching templates"
	ctx, span := s.tracer.Start(ctx, "playground.ListTemplates")
	defer finish(span, s.log, "list_templates", msg, &res)

	s.sleep(s.latency.Templates)

	templates, err := s.repo.List(ctx)
	if err != nil {
		s.internal("list_templates", err)
		return Failure[[]template.Template](KindInternal, msg)
	}
	return Success(templates, "Templates fetched successfully")
}

func (s *service) GetTemplate(ctx context.Context, id string) (res Result[template.Template]) {
	const msg = "An error occurred while fetching the template"
	ctx, span := s.tracer.Start(ctx, "playground.GetTemplate", trace.WithAttributes(attribute.String("template.id", id)))
	defer finish(span, s.log, "get_template", msg, &res)

	s.sleep(s.latency.Template)

	tpl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, template.ErrNotFound) {
			return templateNotFound[template.Template](id)
		}
		s.internal("get_template", err)
		return Failure[template.Template](KindInternal, msg)
	}
	return Success(tpl, "Template fetched successfully")
}

// SearchTemplates matches query against name, prompt and description. A
// blank query matches nothing.
func (s *service) SearchTemplates(ctx context.Context, query string) (res Result[[]template.Template]) {
	const msg = "An error occurred while searching templates"
	ctx, span := s.tracer.Start(ctx, "playground.SearchTemplates")
	defer finish(span, s.log, "search_templates", msg, &res)

	s.sleep(s.latency.Search)

	results := []template.Template{}
	if strings.TrimSpace(query) != "" {
		var err error
		results, err = s.repo.FindByFilter(ctx, template.Filter{Search: &query})
		if err != nil {
			s.internal("search_templates", err)
			return Failure[[]template.Template](KindInternal, msg)
		}
	}
	span.SetAttributes(attribute.Int("search.results", len(results)))
	return Success(results, fmt.Sprintf("Found %d template(s)", len(results)))
}

// SaveTemplate validates and appends a new template. The duplicate check
// and the insert are separate repository calls, so concurrent saves of the
// same name can both succeed.
func (s *service) SaveTemplate(ctx context.Context, req template.CreateTemplateRequest) (res Result[template.Template]) {
	const msg = "An error occurred while saving the template"
	ctx, span := s.tracer.Start(ctx, "playground.SaveTemplate")
	defer finish(span, s.log, "save_template", msg, &res)

	s.sleep(s.latency.Save)

	name := strings.TrimSpace(req.Name)
	prompt := strings.TrimSpace(req.Prompt)
	if name == "" {
		return Failure[template.Template](KindEmptyName, "Template name cannot be empty")
	}
	if prompt == "" {
		return Failure[template.Template](KindEmptyPrompt, "Template prompt cannot be empty")
	}

	_, err := s.repo.FindByName(ctx, name)
	switch {
	case err == nil:
		return Failure[template.Template](KindDuplicateName, fmt.Sprintf(`A template with the name "%s" already exists`, name))
	case !errors.Is(err, template.ErrNotFound):
		s.internal("save_template", err)
		return Failure[template.Template](KindInternal, msg)
	}

	var description *string
	if req.Description != nil {
		if d := strings.TrimSpace(*req.Description); d != "" {
			description = &d
		}
	}

	now := s.now()
	tpl := template.Template{
		ID:          s.newID(),
		Name:        name,
		Prompt:      prompt,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, tpl); err != nil {
		s.internal("save_template", err)
		return Failure[template.Template](KindInternal, msg)
	}

	span.SetAttributes(attribute.String("template.id", tpl.ID))
	s.log.Info().Str("template_id", tpl.ID).Str("name", tpl.Name).Msg("template saved")
	return Success(tpl, "Template saved successfully")
}

// UpdateTemplate merges the provided fields. Renames are not checked for
// collisions with other templates.
func (s *service) UpdateTemplate(ctx context.Context, id string, req template.UpdateTemplateRequest) (res Result[template.Template]) {
	const msg = "An error occurred while updating the template"
	ctx, span := s.tracer.Start(ctx, "playground.UpdateTemplate", trace.WithAttributes(attribute.String("template.id", id)))
	defer finish(span, s.log, "update_template", msg, &res)

	s.sleep(s.latency.Update)

	tpl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, template.ErrNotFound) {
			return templateNotFound[template.Template](id)
		}
		s.internal("update_template", err)
		return Failure[template.Template](KindInternal, msg)
	}

	req.Apply(&tpl)
	tpl.UpdatedAt = s.touch(tpl.UpdatedAt)

	if err := s.repo.Update(ctx, tpl); err != nil {
		if errors.Is(err, template.ErrNotFound) {
			return templateNotFound[template.Template](id)
		}
		s.internal("update_template", err)
		return Failure[template.Template](KindInternal, msg)
	}

	s.log.Info().Str("template_id", id).Msg("template updated")
	return Success(tpl, "Template updated successfully")
}

func (s *service) DeleteTemplate(ctx context.Context, id string) (res Result[bool]) {
	const msg = "An error occurred while deleting the template"
	ctx, span := s.tracer.Start(ctx, "playground.DeleteTemplate", trace.WithAttributes(attribute.String("template.id", id)))
	defer finish(span, s.log, "delete_template", msg, &res)

	s.sleep(s.latency.Delete)

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, template.ErrNotFound) {
			return templateNotFound[bool](id)
		}
		s.internal("delete_template", err)
		return Failure[bool](KindInternal, msg)
	}

	s.log.Info().Str("template_id", id).Msg("template deleted")
	return Success(true, "Template deleted successfully")
}

func (s *service) ResetTemplates(ctx context.Context) (res Result[[]template.Template]) {
	const msg = "An error occurred while resetting templates"
	ctx, span := s.tracer.Start(ctx, "playground.ResetTemplates")
	defer finish(span, s.log, "reset_templates", msg, &res)

	s.sleep(s.latency.Reset)

	templates, err := s.seed(ctx)
	if err != nil {
		s.internal("reset_templates", err)
		return Failure[[]template.Template](KindInternal, msg)
	}

	s.log.Info().Int("templates", len(templates)).Msg("templates reset to default")
	return Success(templates, "Templates reset to default")
}

func (s *service) CountTemplates(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count templates: %w", err)
	}
	return n, nil
}

// ValidateConfig reports every out of range parameter at once.
func (s *service) ValidateConfig(cfg model.Config) Result[bool] {
	if violations := cfg.Validate(); len(violations) > 0 {
		return Failure[bool](KindInvalidConfiguration, strings.Join(violations, ", "))
	}
	return Success(true, "Configuration is valid")
}

// touch returns the current time, nudged forward when the clock has not
// moved past prev, so updatedAt strictly increases on every mutation.
func (s *service) touch(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

func templateNotFound[T any](id string) Result[T] {
	return Failure[T](KindTemplateNotFound, fmt.Sprintf("No template found with id: %s", id))
}
