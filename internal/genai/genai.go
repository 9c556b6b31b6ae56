// Package genai wraps the OpenAI chat completion API behind a small
// generation interface with classified failure kinds.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Failure kinds surfaced to callers. Every external-call error maps to
// exactly one of these (or stays generic); callers classify with errors.Is.
var (
	ErrTimeout           = errors.New("generation timed out")
	ErrQuotaExceeded     = errors.New("generation quota or rate limit exceeded")
	ErrNoChoicesReturned = errors.New("no choices returned")
)

// Options bounds a single generation call. A nil Temperature leaves the
// provider default; a pointer to 0 requests deterministic sampling.
type Options struct {
	MaxTokens   int64
	Temperature *float64
	Timeout     time.Duration
}

// Generator is the text-generation contract used by the rest of the system.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// chatService defines the minimal interface for chat completions, so tests
// can substitute a mock for the real OpenAI service.
type chatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Client implements Generator over the OpenAI ChatCompletion service.
type Client struct {
	chat  chatService
	model string
}

// NewClient initializes a generation client with the given API key and model.
func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not set")
	}
	if model == "" {
		model = openai.ChatModelGPT4o
	}
	cli := openai.NewClient(option.WithAPIKey(apiKey))
	slog.Debug("genai client created", "model", model)
	return &Client{chat: &cli.Chat.Completions, model: model}, nil
}

// Generate runs a single chat completion bounded by opts. On failure the
// returned error wraps ErrTimeout or ErrQuotaExceeded when the cause is
// classifiable, and is otherwise generic. The raw provider error is logged,
// never meant for end users.
func (c *Client) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(opts.MaxTokens)
	}
	if opts.Temperature != nil {
		params.Temperature = openai.Float(*opts.Temperature)
	}

	start := time.Now()
	resp, err := c.chat.New(ctx, params)
	if err != nil {
		classified := classify(err)
		slog.Error("genai Generate failed", "error", err, "elapsed", time.Since(start))
		return "", classified
	}
	if len(resp.Choices) == 0 {
		slog.Error("genai Generate returned no choices")
		return "", ErrNoChoicesReturned
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	slog.Debug("genai Generate succeeded", "elapsed", time.Since(start), "chars", len(out))
	return out, nil
}

// classify maps provider errors onto the package failure kinds.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == 429 {
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	}
	return fmt.Errorf("generation failed: %w", err)
}
