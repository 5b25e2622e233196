package horoscope

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxBodySize caps how much of a provider response is read.
const maxBodySize = 1 << 20

// Client fetches readings from the horoscope provider.
type Client struct {
	httpClient *http.Client
	config     Config
	baseURL    string
}

// New creates a horoscope client.
func New(cfg Config, opts ...Option) *Client {
	o := options{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.Day == "" {
		cfg.Day = "today"
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

// Fetch retrieves the reading for sign. The sign is sent as-is.
func (c *Client) Fetch(ctx context.Context, sign Sign) (*Reading, error) {
	query := url.Values{}
	query.Set("day", c.config.Day)
	query.Set("sunsign", string(sign))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/horoscope?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("x-rapidapi-key", c.config.APIKey)
	req.Header.Set("x-rapidapi-host", c.config.Host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("request %s: %w", sign, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("status=%d body=%s", resp.StatusCode, body))
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.Join(ErrParseFailed, err)
	}

	if strings.TrimSpace(payload.Horoscope) == "" {
		return nil, errors.Join(ErrParseFailed, ErrEmptyHoroscope)
	}

	return &Reading{
		Sign:        sign,
		Date:        payload.Date,
		Text:        payload.Horoscope,
		LuckyNumber: payload.LuckyNumber,
	}, nil
}
