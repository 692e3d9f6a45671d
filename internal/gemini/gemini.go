// Package gemini wraps the Gemini generative API as a translation backend.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/gulcinmobile/newsengine/internal/translate"
)

// Name is the backend name, also used as its rate limiter budget.
const Name = "gemini"

const defaultModel = "gemini-1.5-flash"

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is not configured")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{client: client, model: defaultModel}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

func (c *Client) Name() string { return Name }

// Translate asks the model for a plain translation of text.
func (c *Client) Translate(ctx context.Context, text, from, to string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.2)

	resp, err := model.GenerateContent(ctx, genai.Text(translate.Prompt(text, from, to)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return parseResponse(b.String(), to)
}

// Labels the model sometimes puts in front of the answer.
var labelRe = regexp.MustCompile(`(?i)^(translation|translated text|turkish|french|spanish|german|english|türkçe|français|español|deutsch)\s*:\s*`)

// parseResponse strips code fences, quotes and a leading label.
func parseResponse(response, to string) (string, error) {
	s := strings.TrimSpace(response)
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	lines := strings.Split(s, "\n")
	if len(lines) > 0 {
		lines[0] = labelRe.ReplaceAllString(strings.TrimSpace(lines[0]), "")
	}
	s = strings.TrimSpace(strings.Join(lines, "\n"))

	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return "", fmt.Errorf("could not parse Gemini response for %s", to)
	}
	return s, nil
}
