package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAI is the backend name, also used as its rate limiter budget.
const OpenAI = "openai"

// OpenAITranslator asks a chat model for a translation.
type OpenAITranslator struct {
	client *openai.Client
	model  string
}

// NewOpenAI builds the backend. baseURL is only set in tests.
func NewOpenAI(apiKey, baseURL string) *OpenAITranslator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAITranslator{client: openai.NewClientWithConfig(cfg), model: openai.GPT3Dot5Turbo}
}

func (o *OpenAITranslator) Name() string { return OpenAI }

func (o *OpenAITranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: Prompt(text, from, to),
			},
		},
		MaxCompletionTokens: 2000,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Prompt is the instruction shared by the language-model backends.
func Prompt(text, from, to string) string {
	return fmt.Sprintf(`Translate the following %s news text to %s.
Keep the meaning, tone and journalistic style of the original.
Do not translate brand or organization names.
Translate only the text itself, without additional comments.

Text to translate:
%s`, LanguageName(from), LanguageName(to), text)
}
