package github

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

// NormalizeStatus maps a non-2xx upstream status to an error record.
// upstreamMessage is the "message" field of the error body, if any.
func NormalizeStatus(status int, header http.Header, upstreamMessage string, now time.Time) *domain.Error {
	details := map[string]any{"status_code": status}
	if upstreamMessage != "" {
		details["upstream_message"] = upstreamMessage
	}

	switch status {
	case http.StatusUnauthorized:
		return domain.NewError(domain.KindUnauthenticated, http.StatusUnauthorized,
			"Authentication failed. Please check your GitHub token.", details)
	case http.StatusForbidden:
		if header.Get(HeaderRateRemaining) == "0" {
			return rateLimitedError(RateLimitStateFromHeader(header), now, details)
		}
		return domain.NewError(domain.KindForbidden, http.StatusForbidden,
			"Access forbidden. You may not have permission to access this resource.", details)
	case http.StatusNotFound:
		return domain.NewError(domain.KindNotFound, http.StatusNotFound,
			"Resource not found. Please check the repository name and path.", details)
	case http.StatusUnprocessableEntity:
		return domain.NewError(domain.KindValidationFailed, http.StatusBadRequest,
			"Invalid request parameters.", details)
	default:
		return domain.NewError(domain.KindUpstreamError, status,
			fmt.Sprintf("GitHub API error: %d", status), details)
	}
}

// NormalizeTransport maps a failure that produced no response. The
// underlying error text is never exposed.
func NormalizeTransport(err error) *domain.Error {
	if err == nil {
		return nil
	}

	var derr *domain.Error
	if errors.As(err, &derr) {
		return derr
	}

	if isTimeout(err) {
		return timeoutError()
	}

	var urlErr *url.Error
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &urlErr) || errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return domain.NewError(domain.KindNetworkUnavailable, http.StatusServiceUnavailable,
			"Network error. Please check your connection.", map[string]any{"error_type": "network"})
	}

	return domain.Internal("Unexpected error while calling GitHub.",
		map[string]any{"error_type": "unexpected"})
}

// isTimeout treats cancellation as a timeout: from the caller's view both
// mean the call did not finish in time.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// upstreamMessage extracts the decoded "message" field from the error
// go-github returns for a non-2xx response.
func upstreamMessage(err error) string {
	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) {
		return errResp.Message
	}
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return rateErr.Message
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return abuseErr.Message
	}
	return ""
}
