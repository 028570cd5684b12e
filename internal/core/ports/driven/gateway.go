package driven

import (
	"context"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

// Gateway performs one authenticated upstream call.
//
// Dispatch returns the decoded body on success. Every failure is a
// *domain.Error; a payload is never returned together with an error.
type Gateway interface {
	Dispatch(ctx context.Context, req domain.Request) (domain.Value, error)
}
