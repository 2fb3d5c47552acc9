package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	langpkg "vodub/internal/language"
)

const defaultHTTPTimeout = 120 * time.Second

// Config captures the runtime settings required to talk to the translation model.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// Client translates transcript segments through an OpenAI-compatible
// chat completions endpoint.
type Client struct {
	cfg Config
	api *openai.Client
}

// Option customizes the client.
type Option func(*openai.ClientConfig)

// WithHTTPClient overrides the default HTTP client (useful for tests).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(cc *openai.ClientConfig) {
		if httpClient != nil {
			cc.HTTPClient = httpClient
		}
	}
}

// NewClient constructs a translation client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)

	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}
	for _, opt := range opts {
		opt(&clientConfig)
	}

	return &Client{
		cfg: cfg,
		api: openai.NewClientWithConfig(clientConfig),
	}
}

// Configured reports whether the client has credentials to work with.
func (c *Client) Configured() bool {
	return c != nil && c.cfg.APIKey != ""
}

// Model returns the configured model name for logging.
func (c *Client) Model() string {
	return c.cfg.Model
}

// responsePayload is the JSON object the model is instructed to return.
type responsePayload struct {
	Segments []string `json:"segments"`
}

// Translate renders texts into the target language, one output per input,
// order preserved. Segment boundaries are never merged or split.
func (c *Client) Translate(ctx context.Context, texts []string, sourceLang, targetLang string) ([]string, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("translate: api key not configured")
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("translate: no texts provided")
	}

	req := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt(sourceLang, targetLang, len(texts)),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: encodeSegments(texts),
			},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("translate request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("translate: empty response")
	}

	var decoded responsePayload
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		return nil, fmt.Errorf("translate: parse response: %w", err)
	}
	if len(decoded.Segments) != len(texts) {
		return nil, fmt.Errorf("translate: expected %d segments, model returned %d", len(texts), len(decoded.Segments))
	}
	for i := range decoded.Segments {
		decoded.Segments[i] = strings.TrimSpace(decoded.Segments[i])
	}
	return decoded.Segments, nil
}

// HealthCheck verifies the endpoint is reachable and the key is accepted.
func (c *Client) HealthCheck(ctx context.Context) error {
	if !c.Configured() {
		return fmt.Errorf("translate: api key not configured")
	}
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("translate health check: %w", err)
	}
	return nil
}

func encodeSegments(texts []string) string {
	indexed := make(map[string]any, 1)
	indexed["segments"] = texts
	data, _ := json.Marshal(indexed)
	return string(data)
}

func systemPrompt(sourceLang, targetLang string, count int) string {
	source := langpkg.DisplayName(sourceLang)
	target := langpkg.DisplayName(targetLang)
	return fmt.Sprintf(
		"You translate subtitle segments from %s to %s for dubbing. "+
			"The user sends a JSON object with a \"segments\" array of %d strings. "+
			"Respond with a JSON object of the same shape: a \"segments\" array of exactly %d strings, "+
			"where entry i is the translation of entry i. Never merge, split, reorder, or drop segments. "+
			"Keep translations about as long as the source so dubbed speech fits the original timing.",
		source, target, count, count,
	)
}
