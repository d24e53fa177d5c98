package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Client calls the Anthropic Messages API through the official SDK.
type Client struct {
	client anthropic.Client
}

// NewClient constructs a new Anthropic client.
func NewClient(apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	return &Client{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

// Complete sends the prompt as a single user message and returns the
// concatenated text blocks of the reply.
func (c *Client) Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(0.7),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic message: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if text := block.AsText(); text.Text != "" {
			b.WriteString(text.Text)
		}
	}
	content := strings.TrimSpace(b.String())
	if content == "" {
		return "", fmt.Errorf("anthropic response empty content")
	}
	return content, nil
}

// ListModels returns the model IDs available to the key.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	page, err := c.client.Models.List(ctx, anthropic.ModelListParams{})
	if err != nil {
		return nil, fmt.Errorf("anthropic models: %w", err)
	}
	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		ids = append(ids, string(m.ID))
	}
	return ids, nil
}
