package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"resty.dev/v3"
)

// envelope is the response shape shared by every /v1 playground route.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message"`
}

type apiClient struct {
	http *resty.Client
}

func newAPIClient(opts *options) *apiClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.server, "/")).
		SetTimeout(opts.timeout).
		SetHeader("Content-Type", "application/json")
	return &apiClient{http: client}
}

func (c *apiClient) Close() error {
	return c.http.Close()
}

// do sends the request and returns the raw body. Non-2xx responses are
// turned into errors carrying the envelope's message.
func (c *apiClient) do(ctx context.Context, method, path string, query map[string]string, body any) ([]byte, error) {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetDoNotParseResponse(true)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.RawResponse == nil || resp.RawResponse.Body == nil {
		return nil, fmt.Errorf("%s %s: empty response", method, path)
	}
	defer resp.RawResponse.Body.Close()

	raw, err := io.ReadAll(resp.RawResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return raw, apiError(resp.StatusCode(), raw)
	}
	return raw, nil
}

func apiError(status int, raw []byte) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		return fmt.Errorf("%s (%d): %s", env.Error, status, env.Message)
	}
	return fmt.Errorf("request failed (%d): %s", status, strings.TrimSpace(string(raw)))
}

func printJSON(w io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, werr := fmt.Fprintln(w, strings.TrimSpace(string(raw)))
		return werr
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}
