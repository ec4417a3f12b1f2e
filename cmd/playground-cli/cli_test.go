package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/playground-api/internal/config"
	"github.com/janhq/playground-api/internal/domain/playground"
	templaterepo "github.com/janhq/playground-api/internal/infrastructure/repository/template"
	"github.com/janhq/playground-api/internal/infrastructure/seed"
	"github.com/janhq/playground-api/internal/interfaces/httpserver"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	data, err := seed.Default()
	require.NoError(t, err)
	service, err := playground.NewService(templaterepo.NewInMemoryRepository(), data.Catalog(), data.Templates, playground.NoLatency(), zerolog.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(httpserver.New(&config.Config{ServiceName: "playground-api"}, zerolog.Nop(), service).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, server string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", server}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestModelsList(t *testing.T) {
	srv := newAPI(t)

	out, err := execute(t, srv.URL, "models", "list")
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.True(t, env.Success)
	assert.Contains(t, out, "\n  \"data\": [")
}

func TestModelsGetUnknown(t *testing.T) {
	srv := newAPI(t)

	_, err := execute(t, srv.URL, "models", "get", "gpt-9")
	require.Error(t, err)
	assert.Equal(t, "ModelNotFound (404): No model found with id: gpt-9", err.Error())
}

func TestTemplateCommands(t *testing.T) {
	srv := newAPI(t)

	out, err := execute(t, srv.URL, "templates", "save", "--name", "Bug Report", "--prompt", "Describe the bug")
	require.NoError(t, err)

	var saved struct {
		Template struct {
			ID string `json:"id"`
		} `json:"template"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	require.NotEmpty(t, saved.Template.ID)

	out, err = execute(t, srv.URL, "templates", "search", "bug")
	require.NoError(t, err)
	assert.Contains(t, out, saved.Template.ID)

	out, err = execute(t, srv.URL, "templates", "update", saved.Template.ID, "--description", "triage")
	require.NoError(t, err)
	assert.Contains(t, out, `"description": "triage"`)

	_, err = execute(t, srv.URL, "templates", "update", saved.Template.ID)
	assert.Error(t, err)

	_, err = execute(t, srv.URL, "templates", "delete", saved.Template.ID)
	require.NoError(t, err)

	_, err = execute(t, srv.URL, "templates", "get", saved.Template.ID)
	assert.Error(t, err)

	out, err = execute(t, srv.URL, "templates", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Templates reset to default")
}

func TestCompletePrintsText(t *testing.T) {
	srv := newAPI(t)

	out, err := execute(t, srv.URL, "complete", "--model", "gpt-4", "--temperature", "1.5", "Write", "a", "haiku")
	require.NoError(t, err)
	assert.Contains(t, out, "This is a simulated response from **GPT-4**.")
	assert.Contains(t, out, "Write a haiku")
	assert.Contains(t, out, "Creative Mode")

	_, err = execute(t, srv.URL, "complete", "--top-p", "2", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidConfiguration (400)")
}

func TestConfigValidate(t *testing.T) {
	srv := newAPI(t)

	out, err := execute(t, srv.URL, "config", "validate", "--temperature", "1.9")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	_, err = execute(t, srv.URL, "config", "validate", "--max-tokens", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Max tokens must be between 1 and 32000")

	out, err = execute(t, srv.URL, "config", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"maxTokens"`)
}

func TestHealth(t *testing.T) {
	srv := newAPI(t)

	out, err := execute(t, srv.URL, "health")
	require.NoError(t, err)
	assert.Equal(t, "healthy\n", out)

	srv.Close()
	_, err = execute(t, srv.URL, "health", "--wait", "30ms", "--interval", "10ms")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "health check timeout after 30ms")
}
