package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgLog "location-recommender-agent/pkg/log"
)

// ErrNoCredentials is returned when the client was built without an API key.
var ErrNoCredentials = errors.New("groq: missing API key")

// Client is the Groq chat-completions client.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	l          pkgLog.Logger
}

var _ IGroq = (*Client)(nil)

// New creates a new Groq client. An empty API key is allowed at construction
// time; calls will fail with ErrNoCredentials so the pipeline can fall back
// to its rule-based paths.
func New(cfg Config, l pkgLog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		l: l,
	}
}

// SetBaseURL overrides the API URL for testing purposes.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// GenerateJSON sends the prompt in JSON mode and returns the extracted JSON
// object from the completion. The configured model is tried first; on
// model-not-found errors the fallback chain is attempted before giving up.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, purposeTag string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoCredentials
	}

	start := time.Now()
	c.l.Debugf(ctx, "groq: request purpose=%s model=%s", purposeTag, c.model)

	models := c.candidateModels()
	var lastErr error
	for _, model := range models {
		text, err := c.complete(ctx, model, prompt)
		if err != nil {
			lastErr = err
			if isModelNotFound(err) {
				continue
			}
			return "", err
		}
		if model != c.model {
			c.l.Warnf(ctx, "groq: model fallback used requested=%s actual=%s", c.model, model)
		}
		c.l.Debugf(ctx, "groq: response purpose=%s model=%s latency_ms=%d", purposeTag, model, time.Since(start).Milliseconds())
		return ExtractJSON(text)
	}
	return "", fmt.Errorf("groq: all models failed: %w", lastErr)
}

func (c *Client) candidateModels() []string {
	models := []string{c.model}
	for _, m := range fallbackModels {
		if m != c.model {
			models = append(models, m)
		}
	}
	return models
}

func (c *Client) complete(ctx context.Context, model, prompt string) (string, error) {
	req := Request{
		Model:          model,
		Messages:       []Message{{Role: "user", Content: prompt}},
		Temperature:    GenerationTemperature,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("groq: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("groq: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("groq: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("groq: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err != nil {
			return "", fmt.Errorf("groq: API error %d: %s", resp.StatusCode, string(respBody))
		}
		return "", fmt.Errorf("groq: API error %d: %s", resp.StatusCode, errResp.Error.Message)
	}

	var result Response
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("groq: failed to parse response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("groq: empty completion")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

func isModelNotFound(err error) bool {
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "not_found") || strings.Contains(text, "not found") ||
		strings.Contains(text, "model_decommissioned") || strings.Contains(text, "does not exist")
}
