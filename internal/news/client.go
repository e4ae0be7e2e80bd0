package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the GNews v4 API root.
const DefaultBaseURL = "https://gnews.io/api/v4"

// ClientConfig configures the upstream client.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *logrus.Logger
}

// Result is the normalized upstream response relayed to callers. Articles
// is passed through exactly as the provider sent it.
type Result struct {
	Status       string          `json:"status"`
	Articles     json.RawMessage `json:"articles"`
	TotalResults int             `json:"totalResults"`
}

type upstreamResponse struct {
	TotalArticles int             `json:"totalArticles"`
	TotalResults  int             `json:"totalResults"`
	Articles      json.RawMessage `json:"articles"`
}

// Client talks to the GNews REST API.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(cfg ClientConfig) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	baseURL, err := url.Parse(strings.TrimSuffix(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid news base URL: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid news base URL %q", raw)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     cfg.Logger,
	}, nil
}

// Fetch calls endpoint (e.g. "search") with params plus the API token.
func (c *Client) Fetch(ctx context.Context, endpoint string, params url.Values) (*Result, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	if c.apiKey != "" {
		query.Set("token", c.apiKey)
	}

	endpointURL := c.baseURL.JoinPath(endpoint)
	endpointURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"q":        params.Get("q"),
		"lang":     params.Get("lang"),
		"max":      params.Get("max"),
	}).Debug("querying news provider")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s request failed with status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	result := &Result{
		Status:       "ok",
		Articles:     payload.Articles,
		TotalResults: payload.TotalArticles,
	}
	if result.TotalResults == 0 {
		result.TotalResults = payload.TotalResults
	}
	if len(result.Articles) == 0 || string(result.Articles) == "null" {
		result.Articles = json.RawMessage("[]")
	}

	c.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"total":    result.TotalResults,
	}).Debug("news provider responded")

	return result, nil
}
