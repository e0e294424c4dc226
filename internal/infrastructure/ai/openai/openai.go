// Package openai provides an ai.Client backed by the official openai-go
// SDK.
package openai

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client calls the OpenAI chat completions API.
type Client struct {
	model string
	opts  []option.RequestOption
}

// NewClient creates an OpenAI client.
func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing; provide ai.api_key")
	}
	if model == "" {
		return nil, errors.New("openai model is required")
	}
	return &Client{
		model: model,
		opts:  []option.RequestOption{option.WithAPIKey(apiKey)},
	}, nil
}

// Generate sends one user prompt and returns the first choice's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	client := openai.NewClient(c.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
