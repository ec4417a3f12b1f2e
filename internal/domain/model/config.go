package model

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
)

// Config holds generation parameters sent alongside a prompt.
type Config struct {
	Temperature      float64  `json:"temperature" validate:"gte=0,lte=2" jsonschema:"minimum=0,maximum=2,default=0.7,description=Sampling temperature"`
	MaxTokens        int      `json:"maxTokens" validate:"gte=1,lte=32000" jsonschema:"minimum=1,maximum=32000,default=2048,description=Upper bound on generated tokens"`
	TopP             float64  `json:"topP" validate:"gte=0,lte=1" jsonschema:"minimum=0,maximum=1,default=1,description=Nucleus sampling mass"`
	FrequencyPenalty float64  `json:"frequencyPenalty" validate:"gte=0,lte=2" jsonschema:"minimum=0,maximum=2,default=0,description=Penalty for repeated tokens"`
	PresencePenalty  *float64 `json:"presencePenalty,omitempty" jsonschema:"description=Accepted but not range checked"`
	SystemMessage    *string  `json:"systemMessage,omitempty" jsonschema:"description=Instruction prepended to the conversation"`
}

// ConfigSchema describes Config as JSON Schema so clients can build a
// parameter form with the same bounds the server enforces.
func ConfigSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
	schema := reflector.Reflect(&Config{})
	schema.Title = "Model configuration"
	return schema
}

// DefaultConfig mirrors the playground's initial parameter panel.
func DefaultConfig() Config {
	return Config{
		Temperature:      0.7,
		MaxTokens:        2048,
		TopP:             1,
		FrequencyPenalty: 0,
	}
}

// rangeMessages maps struct field names to the message reported when the
// field falls outside its range.
var rangeMessages = map[string]string{
	"Temperature":      "Temperature must be between 0 and 2",
	"MaxTokens":        "Max tokens must be between 1 and 32000",
	"TopP":             "Top P must be between 0 and 1",
	"FrequencyPenalty": "Frequency penalty must be between 0 and 2",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate returns one message per violated range, in field order.
// An empty result means the configuration is valid.
func (c Config) Validate() []string {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := rangeMessages[fe.StructField()]
		if !ok {
			msg = fe.Error()
		}
		messages = append(messages, msg)
	}
	return messages
}
