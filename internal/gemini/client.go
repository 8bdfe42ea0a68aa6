package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/clarity-ai/backend/pkg/circuitbreaker"
	"github.com/clarity-ai/backend/pkg/logger"
)

var (
	// ErrMissingAPIKey is a configuration error: the pipeline cannot run
	// at all without a credential, and there is no fallback for it.
	ErrMissingAPIKey = errors.New("gemini api key is not configured")

	// ErrUnavailable covers every runtime failure of the generation
	// endpoint: network errors, non-success status codes, timeouts and
	// malformed response envelopes.
	ErrUnavailable = errors.New("analysis unavailable")
)

type Config struct {
	APIKey string
	Model  string
	// FallbackModel gets a single attempt when the primary model fails.
	FallbackModel string
	BaseURL       string
	Timeout       time.Duration
}

type Client struct {
	httpClient    *http.Client
	apiKey        string
	model         string
	fallbackModel string
	baseURL       string
	timeout       time.Duration
	cb            *circuitbreaker.CircuitBreaker
}

// Request/response envelopes for the generateContent endpoint.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash-latest"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	cb := circuitbreaker.New("gemini", circuitbreaker.Config{
		MaxRequests:      3,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Logger:           logger.GetLogger(),
	})

	logger.Info("Gemini client initialized",
		zap.String("model", cfg.Model),
		zap.String("fallback_model", cfg.FallbackModel),
	)

	return &Client{
		httpClient:    &http.Client{},
		apiKey:        cfg.APIKey,
		model:         cfg.Model,
		fallbackModel: cfg.FallbackModel,
		baseURL:       cfg.BaseURL,
		timeout:       cfg.Timeout,
		cb:            cb,
	}, nil
}

// GenerateContent sends one instruction and returns the generated text.
// The primary model gets exactly one attempt; if it fails and a fallback
// model is configured, that gets one attempt too. Every failure mode
// surfaces as ErrUnavailable.
func (c *Client) GenerateContent(ctx context.Context, instruction string) (string, error) {
	var text string

	err := c.cb.Execute(ctx, func() error {
		result, err := c.generate(ctx, c.model, instruction)
		if err != nil && c.fallbackModel != "" && c.fallbackModel != c.model {
			logger.Warn("Primary model failed, trying fallback model",
				zap.String("model", c.model),
				zap.String("fallback_model", c.fallbackModel),
				zap.Error(err),
			)
			result, err = c.generate(ctx, c.fallbackModel, instruction)
		}
		if err != nil {
			return err
		}
		text = result
		return nil
	})

	if err != nil {
		logger.Error("Content generation failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return text, nil
}

func (c *Client) generate(ctx context.Context, model, instruction string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: instruction}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, model, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("unexpected status %d from model %s", resp.StatusCode, model)
	}

	var envelope generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("malformed response envelope from model %s", model)
	}

	text := envelope.Candidates[0].Content.Parts[0].Text
	logger.Debug("Content generated",
		zap.String("model", model),
		zap.Int("response_length", len(text)),
	)

	return text, nil
}
