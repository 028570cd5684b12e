package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
	"github.com/custodia-labs/ghmcp/internal/core/ports/driven"
	"github.com/custodia-labs/ghmcp/internal/logger"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com/"

	// MediaType is sent as Accept on every call.
	MediaType = "application/vnd.github.v3+json"

	// APIVersion is sent as X-GitHub-Api-Version on every call.
	APIVersion = "2022-11-28"

	// MaxBodyBytes caps how much of a success body is read.
	MaxBodyBytes = 10 << 20
)

// Ensure Client implements the Gateway interface.
var _ driven.Gateway = (*Client)(nil)

// Client dispatches requests to the GitHub REST API and turns every outcome
// into either a decoded payload or a *domain.Error.
type Client struct {
	gh            *gh.Client
	tokenProvider driven.TokenProvider
	throttle      *Throttle
	now           func() time.Time
}

type clientOptions struct {
	baseURL       string
	httpClient    *http.Client
	tokenProvider driven.TokenProvider
	throttle      *Throttle
	now           func() time.Time
	version       string
}

// Option configures a Client.
type Option func(*clientOptions)

// WithBaseURL points the client at another API root (tests, GHES).
func WithBaseURL(u string) Option {
	return func(o *clientOptions) { o.baseURL = u }
}

// WithHTTPClient sets the underlying transport client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithTokenProvider sets the credential source.
func WithTokenProvider(p driven.TokenProvider) Option {
	return func(o *clientOptions) { o.tokenProvider = p }
}

// WithRequestsPerSecond enables client-side throttling. Zero disables it.
func WithRequestsPerSecond(rps float64) Option {
	return func(o *clientOptions) { o.throttle = NewThrottle(rps) }
}

// WithClock overrides the time source used for rate limit waits.
func WithClock(now func() time.Time) Option {
	return func(o *clientOptions) { o.now = now }
}

// WithVersion sets the version reported in the User-Agent header.
func WithVersion(v string) Option {
	return func(o *clientOptions) { o.version = v }
}

// NewClient creates a GitHub gateway. Without an authenticated token
// provider every call is anonymous.
func NewClient(opts ...Option) (*Client, error) {
	o := clientOptions{
		baseURL: DefaultBaseURL,
		now:     time.Now,
		version: "dev",
	}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if o.tokenProvider != nil && o.tokenProvider.IsAuthenticated() {
		ctx := context.Background()
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		httpClient = oauth2.NewClient(ctx, NewTokenSource(ctx, o.tokenProvider))
	}

	client := gh.NewClient(httpClient)
	base, err := url.Parse(withTrailingSlash(o.baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", o.baseURL, err)
	}
	client.BaseURL = base
	client.UserAgent = "ghmcp/" + o.version

	return &Client{
		gh:            client,
		tokenProvider: o.tokenProvider,
		throttle:      o.throttle,
		now:           o.now,
	}, nil
}

// AuthMethod reports how calls are authenticated.
func (c *Client) AuthMethod() domain.AuthMethod {
	if c.tokenProvider == nil || !c.tokenProvider.IsAuthenticated() {
		return domain.AuthMethodNone
	}
	return c.tokenProvider.AuthMethod()
}

// Dispatch performs one upstream call. The rate limit guard runs on every
// response before status normalization, so an exhausted quota is reported
// even on a 2xx.
func (c *Client) Dispatch(ctx context.Context, req domain.Request) (domain.Value, error) {
	dispatchID := uuid.NewString()
	method := req.EffectiveMethod()
	log := logger.L().With(
		zap.String("dispatch_id", dispatchID),
		zap.String("method", method),
		zap.String("endpoint", req.Endpoint),
	)

	ctx, cancel := context.WithTimeout(ctx, req.EffectiveTimeout())
	defer cancel()

	if err := c.throttle.Wait(ctx); err != nil {
		log.Debug("throttle wait failed", zap.Error(err))
		return domain.Null(), timeoutError()
	}

	httpReq, err := c.newRequest(method, req)
	if err != nil {
		log.Debug("build request failed", zap.Error(err))
		return domain.Null(), domain.Internal("Failed to build GitHub request.",
			map[string]any{"error_type": "request", "endpoint": req.Endpoint})
	}

	start := time.Now()
	resp, err := c.gh.BareDo(context.WithValue(ctx, gh.BypassRateLimitCheck, true), httpReq)
	if resp != nil && resp.Response != nil && resp.Body != nil {
		defer resp.Body.Close()
	}

	if err != nil && (resp == nil || resp.Response == nil ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)) {
		log.Debug("dispatch failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
		return domain.Null(), NormalizeTransport(err)
	}

	status := resp.StatusCode
	log.Debug("dispatch completed", zap.Int("status", status), zap.Duration("duration", time.Since(start)))

	if guardErr := CheckRateLimit(RateLimitStateFromHeader(resp.Header), c.now()); guardErr != nil {
		return domain.Null(), guardErr
	}

	var accepted *gh.AcceptedError
	if errors.As(err, &accepted) {
		return decodeBody(accepted.Raw)
	}

	if err != nil {
		if status < 200 || status > 299 {
			return domain.Null(), NormalizeStatus(status, resp.Header, upstreamMessage(err), c.now())
		}
		return domain.Null(), NormalizeTransport(err)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return domain.Null(), NormalizeTransport(err)
	}
	if len(body) > MaxBodyBytes {
		return domain.Null(), domain.Internal("GitHub response exceeded the size limit.",
			map[string]any{"error_type": "response_too_large", "limit_bytes": MaxBodyBytes})
	}
	return decodeBody(body)
}

func (c *Client) newRequest(method string, req domain.Request) (*http.Request, error) {
	target := strings.TrimPrefix(req.Endpoint, "/")
	if len(req.Params) > 0 {
		pairs := make([]string, 0, len(req.Params))
		for _, p := range req.Params {
			pairs = append(pairs, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
		}
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + strings.Join(pairs, "&")
	}

	var body any
	if req.Body != nil {
		body = *req.Body
	}

	httpReq, err := c.gh.NewRequest(method, target, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", MediaType)
	httpReq.Header.Set("X-GitHub-Api-Version", APIVersion)
	return httpReq, nil
}

func decodeBody(body []byte) (domain.Value, error) {
	v, err := domain.DecodeValue(body)
	if err != nil {
		return domain.Null(), domain.Internal("Failed to decode GitHub response.",
			map[string]any{"error_type": "decode"})
	}
	return v, nil
}

func timeoutError() *domain.Error {
	return domain.NewError(domain.KindTimeout, http.StatusRequestTimeout,
		"Request timed out.", map[string]any{"error_type": "timeout"})
}

func withTrailingSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
