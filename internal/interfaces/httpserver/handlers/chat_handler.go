package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"

	"github.com/janhq/playground-api/internal/domain/model"
	"github.com/janhq/playground-api/internal/domain/playground"
	"github.com/janhq/playground-api/internal/infrastructure/metrics"
	"github.com/janhq/playground-api/internal/infrastructure/observability"
	"github.com/janhq/playground-api/internal/utils/idgen"
)

const chatCompletionPrefix = "chatcmpl"

// ChatHandler exposes the mocked completion through the OpenAI chat
// completion shape so OpenAI clients can point at the playground.
type ChatHandler struct {
	service   playground.Service
	sanitizer *observability.Sanitizer
	now       func() time.Time
}

func NewChatHandler(service playground.Service, sanitizer *observability.Sanitizer) *ChatHandler {
	return &ChatHandler{service: service, sanitizer: sanitizer, now: time.Now}
}

// CreateChatCompletion answers the last user message. The first system
// message becomes the configured system message. Zero valued sampling
// fields fall back to the playground defaults.
func (h *ChatHandler) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	if req.Stream {
		return nil, h.fail(playground.Failure[string](KindValidation, "Streaming is not supported"))
	}

	prompt, system := splitMessages(req.Messages)
	cfg := chatConfig(req, system)
	observability.AddSpanAttributes(ctx,
		attribute.String("model.id", req.Model),
		attribute.Int("chat.messages", len(req.Messages)),
		attribute.String("prompt.preview", h.sanitizer.Preview(prompt)),
	)

	if check := h.service.ValidateConfig(cfg); !check.Success {
		return nil, h.fail(playground.Failure[string](check.Error, check.Message))
	}

	res := record("chat_completion", h.service.CompletePrompt(ctx, prompt, req.Model, cfg))
	if !res.Success {
		return nil, res.Err()
	}
	metrics.RecordCompletion(req.Model)

	promptTokens := countTokens(prompt)
	if system != nil {
		promptTokens += countTokens(*system)
	}
	completionTokens := countTokens(res.Data)

	return &openai.ChatCompletionResponse{
		ID:      idgen.New(chatCompletionPrefix),
		Object:  "chat.completion",
		Created: h.now().Unix(),
		Model:   req.Model,
		Choices: []openai.ChatCompletionChoice{
			{
				Index: 0,
				Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: res.Data,
				},
				FinishReason: openai.FinishReasonStop,
			},
		},
		Usage: openai.Usage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		},
	}, nil
}

func (h *ChatHandler) fail(res playground.Result[string]) error {
	return record("chat_completion", res).Err()
}

func splitMessages(messages []openai.ChatCompletionMessage) (prompt string, system *string) {
	for _, msg := range messages {
		if msg.Role == openai.ChatMessageRoleSystem && system == nil {
			content := msg.Content
			system = &content
		}
	}
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == openai.ChatMessageRoleUser {
			return messageText(messages[i]), system
		}
	}
	return "", system
}

func messageText(msg openai.ChatCompletionMessage) string {
	if msg.Content != "" || len(msg.MultiContent) == 0 {
		return msg.Content
	}
	parts := make([]string, 0, len(msg.MultiContent))
	for _, part := range msg.MultiContent {
		if part.Type == openai.ChatMessagePartTypeText {
			parts = append(parts, part.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func chatConfig(req openai.ChatCompletionRequest, system *string) model.Config {
	cfg := model.DefaultConfig()
	if req.Temperature != 0 {
		cfg.Temperature = widen(req.Temperature)
	}
	switch {
	case req.MaxCompletionTokens != 0:
		cfg.MaxTokens = req.MaxCompletionTokens
	case req.MaxTokens != 0:
		cfg.MaxTokens = req.MaxTokens
	}
	if req.TopP != 0 {
		cfg.TopP = widen(req.TopP)
	}
	if req.FrequencyPenalty != 0 {
		cfg.FrequencyPenalty = widen(req.FrequencyPenalty)
	}
	if req.PresencePenalty != 0 {
		p := widen(req.PresencePenalty)
		cfg.PresencePenalty = &p
	}
	cfg.SystemMessage = system
	return cfg
}

// countTokens approximates a token count by whitespace separated words.
func countTokens(s string) int {
	return len(strings.Fields(s))
}

// widen converts f without exposing float32 rounding noise, so 0.9 stays 0.9.
func widen(f float32) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'f', -1, 32), 64)
	if err != nil {
		return float64(f)
	}
	return v
}
