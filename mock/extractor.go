package mock

import (
	"context"

	"github.com/fwojciec/blogtext"
)

var _ blogtext.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of blogtext.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, rawURL string) (*blogtext.Result, error)
}

func (e *Extractor) Extract(ctx context.Context, rawURL string) (*blogtext.Result, error) {
	return e.ExtractFn(ctx, rawURL)
}

var _ blogtext.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of blogtext.ArticleExtractor.
type ArticleExtractor struct {
	ExtractArticleFn func(html string) (*blogtext.Article, error)
}

func (e *ArticleExtractor) ExtractArticle(html string) (*blogtext.Article, error) {
	return e.ExtractArticleFn(html)
}
