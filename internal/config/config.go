package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the playground service.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"playground-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8190"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	EnableMetrics   bool          `env:"ENABLE_METRICS" envDefault:"true"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`

	// PromptTelemetry is how prompt previews appear on spans: redact, hash or full.
	PromptTelemetry string `env:"PROMPT_TELEMETRY" envDefault:"hash"`

	// SeedFile optionally replaces the embedded model catalog and default templates.
	SeedFile string `env:"SEED_FILE" envDefault:""`

	LatencyModels     time.Duration `env:"LATENCY_MODELS" envDefault:"300ms"`
	LatencyModel      time.Duration `env:"LATENCY_MODEL" envDefault:"200ms"`
	LatencyCompletion time.Duration `env:"LATENCY_COMPLETION" envDefault:"1500ms"`
	LatencyTemplates  time.Duration `env:"LATENCY_TEMPLATES" envDefault:"400ms"`
	LatencyTemplate   time.Duration `env:"LATENCY_TEMPLATE" envDefault:"200ms"`
	LatencySearch     time.Duration `env:"LATENCY_SEARCH" envDefault:"300ms"`
	LatencySave       time.Duration `env:"LATENCY_SAVE" envDefault:"500ms"`
	LatencyUpdate     time.Duration `env:"LATENCY_UPDATE" envDefault:"500ms"`
	LatencyDelete     time.Duration `env:"LATENCY_DELETE" envDefault:"400ms"`
	LatencyReset      time.Duration `env:"LATENCY_RESET" envDefault:"500ms"`
	// LatencyScale multiplies every latency; 0 disables simulated latency.
	LatencyScale float64 `env:"LATENCY_SCALE" envDefault:"1"`
}

// Load parses environment variables into Config.
//
// Configuration Loading Order (highest to lowest priority):
// 1. Environment variables
// 2. .env file (if present, loaded by cmd/server)
// 3. Default values from struct tags
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env.Parse cannot express.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.HTTPPort)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	switch c.PromptTelemetry {
	case "redact", "hash", "full":
	default:
		return fmt.Errorf("PROMPT_TELEMETRY must be redact, hash or full, got %q", c.PromptTelemetry)
	}
	if c.EnableTracing && strings.TrimSpace(c.OTLPEndpoint) == "" {
		return fmt.Errorf("OTEL_EXPORTER_OTLP_ENDPOINT is required when ENABLE_TRACING is true")
	}
	if c.LatencyScale < 0 {
		return fmt.Errorf("LATENCY_SCALE must not be negative, got %v", c.LatencyScale)
	}
	for name, d := range map[string]time.Duration{
		"LATENCY_MODELS":     c.LatencyModels,
		"LATENCY_MODEL":      c.LatencyModel,
		"LATENCY_COMPLETION": c.LatencyCompletion,
		"LATENCY_TEMPLATES":  c.LatencyTemplates,
		"LATENCY_TEMPLATE":   c.LatencyTemplate,
		"LATENCY_SEARCH":     c.LatencySearch,
		"LATENCY_SAVE":       c.LatencySave,
		"LATENCY_UPDATE":     c.LatencyUpdate,
		"LATENCY_DELETE":     c.LatencyDelete,
		"LATENCY_RESET":      c.LatencyReset,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative, got %s", name, d)
		}
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// IsProduction reports whether gin should run in release mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
