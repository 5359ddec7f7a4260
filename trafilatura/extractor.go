// Package trafilatura adapts go-trafilatura as a generic-page article
// extractor.
package trafilatura

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fwojciec/blogtext"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements blogtext.ArticleExtractor at compile time.
var _ blogtext.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
// Reader comments are excluded; they are not part of the authored body.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// ExtractArticle processes raw HTML and returns the main content.
func (e *Extractor) ExtractArticle(rawHTML string) (*blogtext.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, blogtext.Errorf(blogtext.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, fmt.Errorf("trafilatura: %w", err)
	}

	article := &blogtext.Article{Title: result.Metadata.Title}
	if result.ContentNode != nil {
		if article.ContentHTML, err = renderNode(result.ContentNode); err != nil {
			return nil, err
		}
	}
	return article, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
