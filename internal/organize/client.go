package organize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/logger"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/utils"
)

// maxResponseBytes bounds how much of the classifier response body is read.
const maxResponseBytes = 1 << 20

// CompletionClient is the outbound seam to the classification endpoint.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (*ChatResult, error)
}

// ChatResult is the usable part of one completion response.
type ChatResult struct {
	Content string
	Usage   *Usage
}

// ClientConfig configures the HTTP classification client.
type ClientConfig struct {
	Endpoint    string        // chat-completions URL
	APIKey      string        // optional bearer token
	Model       string        // model identifier sent with every request
	Timeout     time.Duration // per-request wall clock ceiling
	MaxTokens   int           // fixed response size ceiling
	Temperature float64
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	cfg    ClientConfig
	http   *http.Client
	logger logger.Logger
}

// NewClient builds a classification client. The HTTP client carries no
// timeout of its own; each request gets a context deadline merged with the
// caller's cancellation signal.
func NewClient(cfg ClientConfig, log logger.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{},
		logger: log,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *Usage `json:"usage"`
}

// Complete sends one non-streaming completion request. The configured timeout
// and the caller's context are merged, so either signal aborts the request.
func (c *Client) Complete(ctx context.Context, prompt string) (*ChatResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		Stream:      false,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			// Surface the abort/timeout signal, not the transport wrapper.
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("classification request failed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("classification endpoint returned error status",
			logger.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("classification endpoint returned status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var parsed chatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode classification response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("classification response contained no choices")
	}

	c.logger.Debug("classification request completed",
		logger.Duration("duration", time.Since(start)),
		logger.Int("prompt_bytes", len(prompt)))

	return &ChatResult{
		Content: parsed.Choices[0].Message.Content,
		Usage:   parsed.Usage,
	}, nil
}
