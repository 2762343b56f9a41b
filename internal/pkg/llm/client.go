package llm

import (
	"context"
	"log"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/StorePulse/StorePulse/internal/pkg/env"
)

const defaultModel = "claude-sonnet-4-5-20250929"

// CallError is the gateway's single failure type. Analysis callers convert
// it into a fully-populated default result; it never reaches an HTTP handler.
type CallError struct {
	Message string
}

func (e *CallError) Error() string {
	return "llm: " + e.Message
}

// Gateway is the one integration point all analysis features funnel through.
type Gateway interface {
	Ask(ctx context.Context, system, prompt string) (map[string]any, error)
}

// Client calls the Anthropic Messages API with a fixed low temperature and a
// system instruction requiring JSON-only output.
type Client struct {
	api         anthropic.Client
	model       string
	temperature float64
}

func NewClient() *Client {
	return &Client{
		api:         anthropic.NewClient(option.WithAPIKey(env.GetEnv("ANTHROPIC_API_KEY", ""))),
		model:       env.GetEnv("LLM_MODEL", defaultModel),
		temperature: 0.3,
	}
}

// Ask sends one prompt and returns the first well-formed JSON object found
// in the model's text output. Every failure path returns a *CallError; the
// raw model text is never trusted to be pure JSON.
func (c *Client) Ask(ctx context.Context, system, prompt string) (map[string]any, error) {
	message, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   4096,
		Temperature: anthropic.Float(c.temperature),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		log.Printf("llm call failed: %v", err)
		return nil, &CallError{Message: err.Error()}
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, &CallError{Message: "no text content in model response"}
	}

	result, err := ExtractJSON(text)
	if err != nil {
		log.Printf("llm response not parseable: %v", err)
		return nil, &CallError{Message: err.Error()}
	}
	return result, nil
}
