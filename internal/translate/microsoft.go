package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gulcinmobile/newsengine/internal/retry"
)

const (
	MicrosoftEndpoint = "https://api.cognitive.microsofttranslator.com"
	// Microsoft is the backend name, also used as its rate limiter budget.
	Microsoft = "microsoft"
)

type MicrosoftConfig struct {
	Key        string
	Region     string
	Endpoint   string
	HTTPClient *http.Client
	Retry      retry.RetryConfig
}

// MicrosoftTranslator calls the Translator Text v3 API.
type MicrosoftTranslator struct {
	cfg    MicrosoftConfig
	client *http.Client
}

func NewMicrosoft(cfg MicrosoftConfig) *MicrosoftTranslator {
	if cfg.Endpoint == "" {
		cfg.Endpoint = MicrosoftEndpoint
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if cfg.Retry.MaxAttempts < 1 {
		cfg.Retry = retry.RetryConfig{MaxAttempts: 2, Delay: time.Second}
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &MicrosoftTranslator{cfg: cfg, client: client}
}

func (m *MicrosoftTranslator) Name() string { return Microsoft }

type msRequestItem struct {
	Text string `json:"Text"`
}

type msResponseItem struct {
	Translations []struct {
		Text string `json:"text"`
		To   string `json:"to"`
	} `json:"translations"`
}

func (m *MicrosoftTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	if m.cfg.Key == "" {
		return "", errors.New("microsoft translator key is not configured")
	}
	body, err := json.Marshal([]msRequestItem{{Text: text}})
	if err != nil {
		return "", err
	}

	var out string
	err = retry.WithRetry(ctx, m.cfg.Retry, func() error {
		res, err := m.do(ctx, body, from, to)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	return out, err
}

func (m *MicrosoftTranslator) do(ctx context.Context, body []byte, from, to string) (string, error) {
	params := url.Values{}
	params.Set("api-version", "3.0")
	params.Set("to", to)
	if from != "" {
		params.Set("from", from)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.Endpoint+"/translate?"+params.Encode(), bytes.NewReader(body))
	if err != nil {
		return "", retry.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", m.cfg.Key)
	if m.cfg.Region != "" {
		req.Header.Set("Ocp-Apim-Subscription-Region", m.cfg.Region)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("microsoft translator returned status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return "", retry.Permanent(fmt.Errorf("microsoft translator returned status %d", resp.StatusCode))
	}

	var items []msResponseItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return "", retry.Permanent(fmt.Errorf("decode translator response: %w", err))
	}
	if len(items) == 0 || len(items[0].Translations) == 0 {
		return "", retry.Permanent(errors.New("translator response was empty"))
	}
	return items[0].Translations[0].Text, nil
}
