// Package prompt rewrites terse user edit prompts into richer model
// instructions before they reach the image model.
package prompt

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const systemInstruction = "You rewrite photo-editing prompts. Expand the user's " +
	"instruction into a single concise sentence that names the subject, the " +
	"requested change, lighting and mood. Reply with the rewritten prompt only."

type Enhancer interface {
	Enhance(ctx context.Context, prompt string) (string, error)
}

// OpenAIEnhancer rewrites prompts with a chat completion call.
type OpenAIEnhancer struct {
	client *openai.Client
	model  string
}

func NewOpenAIEnhancer(apiKey, model string) *OpenAIEnhancer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIEnhancer{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (e *OpenAIEnhancer) Enhance(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("prompt is empty")
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("prompt enhancement failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("prompt enhancement returned no choices")
	}

	enhanced := strings.TrimSpace(resp.Choices[0].Message.Content)
	if enhanced == "" {
		return "", fmt.Errorf("prompt enhancement returned an empty prompt")
	}
	return enhanced, nil
}

// StaticEnhancer is the fallback when no LLM is configured: it appends a
// fixed quality suffix instead of rewriting.
type StaticEnhancer struct{}

func NewStaticEnhancer() *StaticEnhancer {
	return &StaticEnhancer{}
}

func (s *StaticEnhancer) Enhance(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("prompt is empty")
	}
	if strings.Contains(strings.ToLower(prompt), "natural lighting") {
		return prompt, nil
	}
	return prompt + ", natural lighting, high detail", nil
}

var (
	_ Enhancer = (*OpenAIEnhancer)(nil)
	_ Enhancer = (*StaticEnhancer)(nil)
)
