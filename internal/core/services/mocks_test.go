package services

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

// mockGateway records dispatched requests and replays a fixed outcome.
type mockGateway struct {
	mu       sync.Mutex
	requests []domain.Request
	value    domain.Value
	err      error
}

func (m *mockGateway) Dispatch(_ context.Context, req domain.Request) (domain.Value, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.err != nil {
		return domain.Null(), m.err
	}
	return m.value, nil
}

func (m *mockGateway) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *mockGateway) last() domain.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[len(m.requests)-1]
}

// mockFetcher serves pages from a map keyed by URL. Unknown URLs fail.
type mockFetcher struct {
	mu       sync.Mutex
	articles map[string]*domain.Article
	errs     map[string]error
	fetched  []string
}

func (m *mockFetcher) Fetch(_ context.Context, url string) (*domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetched = append(m.fetched, url)
	if err, ok := m.errs[url]; ok {
		return nil, err
	}
	if a, ok := m.articles[url]; ok {
		return a, nil
	}
	return nil, errUnknownURL
}

// mockConverter strips a fixed wrapper so tests can assert on the body.
type mockConverter struct {
	err error
}

func (m *mockConverter) Convert(html string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	html = strings.TrimPrefix(html, "<p>")
	return strings.TrimSuffix(html, "</p>"), nil
}

type testError string

func (e testError) Error() string { return string(e) }

const errUnknownURL = testError("unknown url")
