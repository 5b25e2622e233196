package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxBodySize = 1 << 20

// Client translates text through the translation provider.
type Client struct {
	httpClient *http.Client
	config     Config
	baseURL    string
}

// New creates a translation client.
func New(cfg Config, opts ...Option) *Client {
	o := options{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.SourceLanguage == "" {
		cfg.SourceLanguage = DefaultSourceLanguage
	}
	if cfg.Path == "" {
		cfg.Path = "/"
	}

	baseURL := o.baseURL
	if baseURL == "" {
		baseURL = "https://" + cfg.Host
	}

	return &Client{
		httpClient: o.httpClient,
		config:     cfg,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// SourceLanguage returns the language texts are translated from.
func (c *Client) SourceLanguage() string {
	return c.config.SourceLanguage
}

// Translate translates text from the source language into target.
// When target shares the source's base language, text is returned unchanged
// without contacting the provider.
func (c *Client) Translate(ctx context.Context, text, target string) (string, error) {
	same, err := SameLanguage(c.config.SourceLanguage, target)
	if err != nil {
		return "", errors.Join(ErrTranslateFailed, err)
	}
	if same || text == "" {
		return text, nil
	}

	payload, err := json.Marshal(request{
		Q:      text,
		Source: c.config.SourceLanguage,
		Target: target,
	})
	if err != nil {
		return "", errors.Join(ErrTranslateFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.config.Path, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Join(ErrTranslateFailed, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-rapidapi-key", c.config.APIKey)
	req.Header.Set("x-rapidapi-host", c.config.Host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Join(ErrTranslateFailed, fmt.Errorf("request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", errors.Join(ErrTranslateFailed, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Join(ErrTranslateFailed, fmt.Errorf("status=%d body=%s", resp.StatusCode, body))
	}

	var out response
	if err := json.Unmarshal(body, &out); err != nil {
		return "", errors.Join(ErrTranslateFailed, fmt.Errorf("decode response: %w", err))
	}

	if len(out.Data.Translations) == 0 || out.Data.Translations[0].TranslatedText == "" {
		return "", errors.Join(ErrTranslateFailed, errors.New("response has no translated text"))
	}

	return out.Data.Translations[0].TranslatedText, nil
}

type request struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type response struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}
