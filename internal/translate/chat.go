package translate

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ChatClient is the minimal interface needed to call a chat model, so any
// OpenAI-compatible or local backend can be adapted.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Chat translates through an OpenAI-compatible chat model. It is the
// alternative backend for deployments without access to the web endpoint.
type Chat struct {
	Client     ChatClient
	Model      string
	TargetLang string
}

func (c *Chat) Translate(ctx context.Context, text string) (string, error) {
	if c.Client == nil || strings.TrimSpace(c.Model) == "" {
		return "", fmt.Errorf("chat translator not configured")
	}
	system := fmt.Sprintf("You are a translation engine. Translate the user's text into the language with ISO 639 code %q. Output only the translation, nothing else.", c.TargetLang)
	resp, err := c.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("chat completion returned empty translation")
	}
	return out, nil
}
