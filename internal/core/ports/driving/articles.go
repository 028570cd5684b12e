package driving

import (
	"context"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

// ArticleService saves web articles as markdown and summarizes saved
// collections.
type ArticleService interface {
	ReadArticles(ctx context.Context, p domain.ReadArticlesParams) (string, error)
	SummarizeArticles(ctx context.Context, p domain.SummarizeArticlesParams) (string, error)
}
