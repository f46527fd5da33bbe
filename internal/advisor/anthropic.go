package advisor

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"
)

// DefaultModel is the cost-efficient model used for advisory prose.
// Advisory text is short and disposable; it does not need a frontier
// reasoning model.
const DefaultModel = "claude-3-5-haiku-20241022"

const defaultMaxTokens = 1024

// Client asks the Anthropic API for advisory text. Calls are guarded by
// a rate limiter so a scripted loop of audits cannot hammer the API.
type Client struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
	limiter   *rate.Limiter
}

// NewClient creates an API advisor. The key must be non-empty; model
// falls back to DefaultModel.
func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		client:    &client,
		model:     model,
		maxTokens: defaultMaxTokens,
		limiter:   rate.NewLimiter(rate.Limit(1), 2),
	}, nil
}

// Advise implements Advisor.
func (c *Client) Advise(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for rate limiter: %w", err)
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return text, nil
}
