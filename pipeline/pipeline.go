// Package pipeline wires normalization, fetching, content location, and
// sanitization into a blogtext.Extractor.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/blogtext"
)

// Ensure Pipeline implements blogtext.Extractor at compile time.
var _ blogtext.Extractor = (*Pipeline)(nil)

// Pipeline extracts the authored body of one page per call. Calls share no
// mutable state, so a Pipeline can serve concurrent extractions as long as
// its collaborators are safe for concurrent use.
type Pipeline struct {
	Normalizer *blogtext.Normalizer
	Fetcher    blogtext.Fetcher
	Locator    blogtext.ContentLocator
	Sanitizer  blogtext.Sanitizer

	// Logger receives the ambiguous-URL warning. Optional.
	Logger *slog.Logger
}

// Extract runs rawURL through the pipeline. Every failure is a *blogtext.Error
// or wraps one, naming the URL and, past location, the strategy involved.
func (p *Pipeline) Extract(ctx context.Context, rawURL string) (*blogtext.Result, error) {
	target, err := p.Normalizer.Normalize(rawURL)
	if err != nil {
		return nil, err
	}
	if target.Ambiguous {
		p.logger().Warn("extracting as a generic page",
			"url", target.URL,
			"err", blogtext.Errorf(blogtext.EAMBIGUOUS, "%s is on the platform host but names no post", target.URL))
	}

	page, err := p.Fetcher.Fetch(ctx, blogtext.FetchRequest{
		URL:            target.URL,
		RequireArticle: target.Platform(),
	})
	if err != nil {
		return nil, err
	}

	// Relative references in the page resolve against where it was
	// actually served from.
	located := target
	if page.URL != "" {
		located.URL = page.URL
	}
	frag, err := p.Locator.Locate(ctx, located, page.Body)
	if err != nil {
		return nil, err
	}

	text, err := p.Sanitizer.Sanitize(frag)
	if err != nil {
		if blogtext.ErrorCode(err) == blogtext.ESANITIZE {
			return nil, blogtext.Errorf(blogtext.ESANITIZE, "%s: %s", target.URL, blogtext.ErrorMessage(err))
		}
		return nil, fmt.Errorf("sanitize %s (strategy %q): %w", target.URL, frag.Strategy, err)
	}

	return &blogtext.Result{
		Text:       text,
		URL:        target.Original,
		Canonical:  target.URL,
		Locator:    target.Locator,
		Strategy:   frag.Strategy,
		Confidence: frag.Confidence,
		Hash:       computeHash(text),
	}, nil
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

// computeHash computes a hash of the content using xxhash.
func computeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
