package driven

import (
	"context"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

// ArticleFetcher downloads a web page and extracts its title and body.
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (*domain.Article, error)
}

// MarkdownConverter turns extracted article HTML into markdown.
type MarkdownConverter interface {
	Convert(html string) (string, error)
}
