// Package news relays headline searches to the upstream news provider.
package news

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"newsdesk/internal/apperr"
)

const (
	DefaultLang     = "en"
	DefaultCountry  = "us"
	DefaultMax      = 10
	DefaultTopMax   = 20
	MaxArticles     = 100
	msgFetchFailure = "Failed to fetch news"
)

// Fetcher performs one upstream call.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, params url.Values) (*Result, error)
}

// Query is an inbound search request.
type Query struct {
	Q        string
	Category string
	Lang     string
	Max      int
}

// Headlines is an inbound top-headlines request.
type Headlines struct {
	Lang    string
	Country string
	Max     int
}

// Proxy translates inbound parameters into provider requests.
type Proxy struct {
	fetcher Fetcher
	logger  *logrus.Logger
}

func NewProxy(fetcher Fetcher, logger *logrus.Logger) *Proxy {
	if logger == nil {
		logger = logrus.New()
	}
	return &Proxy{fetcher: fetcher, logger: logger}
}

// Search runs a provider search. Failures are reported as upstream errors
// with no retry.
func (p *Proxy) Search(ctx context.Context, q Query) (*Result, error) {
	return p.fetch(ctx, "search", searchParams(q))
}

func (p *Proxy) TopHeadlines(ctx context.Context, h Headlines) (*Result, error) {
	return p.fetch(ctx, "top-headlines", headlineParams(h))
}

func (p *Proxy) fetch(ctx context.Context, endpoint string, params url.Values) (*Result, error) {
	result, err := p.fetcher.Fetch(ctx, endpoint, params)
	if err != nil {
		p.logger.WithError(err).WithField("endpoint", endpoint).Warn("news provider request failed")
		return nil, apperr.Upstream(msgFetchFailure, err)
	}
	return result, nil
}

func searchParams(q Query) url.Values {
	params := url.Values{}
	params.Set("q", searchTerm(q.Q, q.Category))
	params.Set("lang", orDefault(q.Lang, DefaultLang))
	params.Set("max", strconv.Itoa(clampMax(q.Max, DefaultMax)))
	return params
}

func headlineParams(h Headlines) url.Values {
	params := url.Values{}
	params.Set("lang", orDefault(h.Lang, DefaultLang))
	params.Set("country", orDefault(h.Country, DefaultCountry))
	params.Set("max", strconv.Itoa(clampMax(h.Max, DefaultTopMax)))
	return params
}

// ParseMax parses a max query parameter; blank or malformed input yields 0,
// which the proxy replaces with its default.
func ParseMax(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func clampMax(n, def int) int {
	switch {
	case n <= 0:
		return def
	case n > MaxArticles:
		return MaxArticles
	default:
		return n
	}
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
