// Package readability adapts go-readability as a generic-page article
// extractor.
package readability

import (
	"fmt"
	"strings"

	"github.com/fwojciec/blogtext"
	"github.com/go-shiori/go-readability"
)

// DefaultCharThreshold is the minimum article length readability accepts.
// Korean prose packs more meaning per character than the library's
// English-tuned default of 500, so the bar is lower.
const DefaultCharThreshold = 200

// Ensure Extractor implements blogtext.ArticleExtractor at compile time.
var _ blogtext.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct {
	charThreshold int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCharThreshold overrides DefaultCharThreshold.
func WithCharThreshold(n int) Option {
	return func(e *Extractor) {
		e.charThreshold = n
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{charThreshold: DefaultCharThreshold}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractArticle processes raw HTML and returns the main content.
func (e *Extractor) ExtractArticle(rawHTML string) (*blogtext.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, blogtext.Errorf(blogtext.EINVALID, "empty HTML input")
	}

	parser := readability.NewParser()
	parser.CharThresholds = e.charThreshold
	article, err := parser.Parse(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}

	return &blogtext.Article{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
