package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies every failure the pipeline can report. The set is closed.
type Kind string

// Error kinds.
const (
	KindInvalidArgument    Kind = "invalid_argument"
	KindUnauthenticated    Kind = "unauthenticated"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindValidationFailed   Kind = "validation_failed"
	KindRateLimited        Kind = "rate_limited"
	KindTimeout            Kind = "timeout"
	KindNetworkUnavailable Kind = "network_unavailable"
	KindUpstreamError      Kind = "upstream_error"
	KindInternal           Kind = "internal"
)

// Kinds lists every error kind.
var Kinds = []Kind{
	KindInvalidArgument,
	KindUnauthenticated,
	KindForbidden,
	KindNotFound,
	KindValidationFailed,
	KindRateLimited,
	KindTimeout,
	KindNetworkUnavailable,
	KindUpstreamError,
	KindInternal,
}

// DefaultSuggestion is used for any kind missing from the suggestion table.
const DefaultSuggestion = "Please try again or contact support if the issue persists."

var suggestions = map[Kind]string{
	KindInvalidArgument: "Check your input parameters and try again.",
	KindUnauthenticated: "Check your GITHUB_TOKEN environment variable. " +
		"Ensure it has the required permissions and is not expired.",
	KindForbidden:        "Check your token permissions and try again.",
	KindNotFound:         "Verify the repository name and file path are correct.",
	KindValidationFailed: "Check your input parameters and try again.",
	KindRateLimited: "Wait before making more requests. " +
		"Consider using a GitHub token with higher rate limits.",
	KindTimeout:            "The request took too long. Try again with a simpler query.",
	KindNetworkUnavailable: "Check your internet connection and try again.",
	KindUpstreamError:      "The GitHub API may be experiencing issues. Try again later.",
	KindInternal:           DefaultSuggestion,
}

// Suggestion returns the remediation hint for a kind.
func Suggestion(kind Kind) string {
	if s, ok := suggestions[kind]; ok {
		return s
	}
	return DefaultSuggestion
}

// Error is the single failure value that crosses the tool boundary.
type Error struct {
	Kind       Kind           `json:"kind"`
	Code       int            `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details"`
	Suggestion string         `json:"suggestion"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Code, e.Message)
}

// NewError builds an Error with the table suggestion for its kind.
func NewError(kind Kind, code int, message string, details map[string]any) *Error {
	if details == nil {
		details = map[string]any{}
	}
	return &Error{
		Kind:       kind,
		Code:       code,
		Message:    message,
		Details:    details,
		Suggestion: Suggestion(kind),
	}
}

// WithSuggestion returns a copy of e carrying a call-specific hint.
func (e *Error) WithSuggestion(s string) *Error {
	c := *e
	c.Suggestion = s
	return &c
}

// InvalidArgument reports caller input rejected before any network call.
func InvalidArgument(message string, details map[string]any) *Error {
	return NewError(KindInvalidArgument, http.StatusBadRequest, message, details)
}

// NotFound reports a missing local or remote resource.
func NotFound(message string, details map[string]any) *Error {
	return NewError(KindNotFound, http.StatusNotFound, message, details)
}

// Internal reports an unexpected failure using only a summary message.
func Internal(message string, details map[string]any) *Error {
	return NewError(KindInternal, http.StatusInternalServerError, message, details)
}

// AsError converts err into an *Error. Errors that already are *Error pass
// through unchanged; anything else becomes Internal and its text is not
// carried over.
func AsError(err error, operation string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(
		fmt.Sprintf("Unexpected error while %s.", operation),
		map[string]any{"error_type": "unexpected", "operation": operation},
	)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
