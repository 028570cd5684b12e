package driven

import (
	"context"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

// TokenProvider supplies the credential attached to upstream calls.
type TokenProvider interface {
	// GetToken returns the access token, or "" when calls are anonymous.
	GetToken(ctx context.Context) (string, error)

	// AuthMethod returns the authentication method (pat, none).
	AuthMethod() domain.AuthMethod

	// IsAuthenticated returns true if a usable credential is configured.
	IsAuthenticated() bool
}
