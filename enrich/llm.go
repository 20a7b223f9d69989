// Package enrich adds a short summary and an economic-sector category to
// scraped articles using an OpenAI-compatible chat completions API.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultEndpoint is Groq's OpenAI-compatible API.
	DefaultEndpoint = "https://api.groq.com/openai/v1"
	DefaultModel    = "llama3-8b-8192"
	DefaultTimeout  = 60 * time.Second
)

var (
	// ErrEmptyResponse is returned when the API answers without any content.
	ErrEmptyResponse = errors.New("empty completion")
	// ErrNoAPIKey is returned when no API key is configured.
	ErrNoAPIKey = errors.New("no API key configured")
)

// Completer turns a prompt into a model answer.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// LLMConfig configures the chat completions client.
type LLMConfig struct {
	Endpoint string
	Model    string
	APIKey   string
	Timeout  time.Duration
}

// LLMClient talks to an OpenAI-compatible /chat/completions endpoint.
type LLMClient struct {
	cfg    LLMConfig
	client *http.Client
	logger *slog.Logger
}

// NewLLMClient creates a client; empty fields fall back to Groq defaults.
func NewLLMClient(cfg LLMConfig, logger *slog.Logger) *LLMClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With("component", "llm_client"),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends prompt as a single user message and returns the trimmed
// content of the first choice.
func (c *LLMClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrNoAPIKey
	}

	body, err := json.Marshal(chatRequest{
		Model:    c.cfg.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := strings.TrimSuffix(c.cfg.Endpoint, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var result chatResponse
	decodeErr := json.Unmarshal(raw, &result)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && result.Error != nil {
			return "", fmt.Errorf("completion failed: %d: %s", resp.StatusCode, result.Error.Message)
		}
		return "", fmt.Errorf("completion failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if len(result.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	content := strings.TrimSpace(result.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}

	c.logger.Debug("completion done", "model", c.cfg.Model, "duration", time.Since(start), "chars", len(content))
	return content, nil
}
