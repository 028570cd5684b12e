// Package web fetches article pages over HTTP.
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
	"github.com/custodia-labs/ghmcp/internal/core/ports/driven"
	"github.com/custodia-labs/ghmcp/internal/normalisers/html"
)

// Ensure Fetcher implements the interface.
var _ driven.ArticleFetcher = (*Fetcher)(nil)

const (
	// DefaultTimeout bounds one page download.
	DefaultTimeout = 20 * time.Second

	// MaxPageBytes caps how much of a page is read.
	MaxPageBytes = 5 << 20

	// UserAgent is sent with every page request. Some article hosts serve
	// an empty shell to unknown clients.
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/118.0 Safari/537.36"
)

// ErrNotHTML is returned for pages that are not UTF-8 text.
var ErrNotHTML = domain.ErrArticleNotText

// Fetcher downloads pages and extracts their article content.
type Fetcher struct {
	client     *http.Client
	normaliser *html.Normaliser
}

// NewFetcher creates a fetcher. A nil client gets DefaultTimeout.
func NewFetcher(client *http.Client, normaliser *html.Normaliser) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if normaliser == nil {
		normaliser = html.New()
	}
	return &Fetcher{client: client, normaliser: normaliser}
}

// Fetch downloads rawURL and extracts its title and body.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.Article, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w %q", domain.ErrInvalidArticleURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %w", u.Host, &domain.FetchStatusError{StatusCode: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if !utf8.Valid(body) {
		return nil, ErrNotHTML
	}

	return f.normaliser.Extract(string(body))
}
