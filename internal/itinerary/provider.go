package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultMaxTokens   = 8000
	DefaultTemperature = 0.7
	DefaultTimeout     = 60 * time.Second

	// maxErrorBody caps how much of a failed response is kept on the error.
	maxErrorBody = 4 << 10
	// maxResponseBody caps how much of a successful response is decoded.
	maxResponseBody = 4 << 20
)

// ProviderConfig describes one OpenAI-compatible chat-completions endpoint.
// It is resolved once at startup and never mutated afterwards.
type ProviderConfig struct {
	Name     string
	Endpoint string
	APIKey   string
	Model    string
	// JSONMode marks providers that accept response_format json_object. Such
	// providers must return an object, so they are prompted with OutputObject.
	JSONMode          bool
	MaxTokens         int
	Temperature       float64
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables client-side limiting
}

// Mode returns the output shape the provider can be asked for.
func (c ProviderConfig) Mode() OutputMode {
	if c.JSONMode {
		return OutputObject
	}
	return OutputArray
}

func (c ProviderConfig) withDefaults() ProviderConfig {
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ProviderClient performs single chat-completion calls against one provider.
// It never retries; the Orchestrator decides what happens after a failure.
type ProviderClient struct {
	cfg     ProviderConfig
	hc      *http.Client
	limiter *rate.Limiter
	metrics *Metrics
	logger  *slog.Logger
}

// NewProviderClient builds a client for cfg. hc may be nil, in which case a
// client without its own timeout is used; the per-call timeout comes from cfg.
func NewProviderClient(cfg ProviderConfig, hc *http.Client, m *Metrics, logger *slog.Logger) *ProviderClient {
	cfg = cfg.withDefaults()
	if hc == nil {
		hc = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &ProviderClient{cfg: cfg, hc: hc, metrics: m, logger: logger}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(1, int(cfg.RequestsPerSecond)))
	}
	return c
}

// Name returns the provider name used in logs, metrics and errors.
func (c *ProviderClient) Name() string { return c.cfg.Name }

// Mode returns the output shape this provider is prompted for.
func (c *ProviderClient) Mode() OutputMode { return c.cfg.Mode() }

// Complete sends one chat-completion request and returns the message content
// of the first choice. Every failure is an *Error carrying this provider's name.
func (c *ProviderClient) Complete(ctx context.Context, p Prompts) (content string, err error) {
	start := time.Now()
	defer func() {
		c.metrics.observeRequest(c.cfg.Name, err, time.Since(start))
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &Error{Kind: KindTransport, Provider: c.cfg.Name, Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: p.System},
			{Role: "user", Content: p.User},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}
	if c.cfg.JSONMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", &Error{Kind: KindTransport, Provider: c.cfg.Name, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(b))
	if err != nil {
		return "", &Error{Kind: KindTransport, Provider: c.cfg.Name, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	c.logger.DebugContext(ctx, "calling llm provider",
		slog.String("provider", c.cfg.Name),
		slog.String("model", c.cfg.Model),
		slog.Bool("json_mode", c.cfg.JSONMode),
	)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", &Error{Kind: KindTransport, Provider: c.cfg.Name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		e := &Error{
			Kind:     kindForStatus(resp.StatusCode),
			Provider: c.cfg.Name,
			Status:   resp.StatusCode,
			Body:     strings.TrimSpace(string(raw)),
		}
		c.logger.WarnContext(ctx, "llm provider returned error status",
			slog.String("provider", c.cfg.Name),
			slog.Int("status", e.Status),
			slog.String("kind", e.Kind.String()),
		)
		return "", e
	}

	var cr chatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&cr); err != nil {
		return "", &Error{Kind: KindUnavailable, Provider: c.cfg.Name, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(cr.Choices) == 0 || strings.TrimSpace(cr.Choices[0].Message.Content) == "" {
		return "", &Error{Kind: KindEmptyCompletion, Provider: c.cfg.Name, Status: resp.StatusCode}
	}
	return cr.Choices[0].Message.Content, nil
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusBadRequest:
		return KindRequestInvalid
	case http.StatusPaymentRequired:
		return KindPaymentRequired
	}
	return KindUnavailable
}
