package goquery

import (
	"context"
	"log/slog"

	"github.com/fwojciec/blogtext"
)

// Ensure Locator implements blogtext.ContentLocator at compile time.
var _ blogtext.ContentLocator = (*Locator)(nil)

// Locator runs a cascade of strategies over a page. Platform targets use
// the platform table, everything else uses the generic table. The first
// strategy returning a fragment wins.
type Locator struct {
	platform []Strategy
	generic  []Strategy
	logger   *slog.Logger
}

// LocatorOption configures a Locator.
type LocatorOption func(*Locator)

// WithLogger sets the logger that receives per-strategy debug records.
func WithLogger(logger *slog.Logger) LocatorOption {
	return func(l *Locator) {
		l.logger = logger
	}
}

// NewLocator creates a Locator with explicit strategy tables.
func NewLocator(platform, generic []Strategy, opts ...LocatorOption) *Locator {
	l := &Locator{
		platform: platform,
		generic:  generic,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// PlatformStrategies returns the platform cascade:
// structural selectors, frame hop, embedded state, fallback.
func PlatformStrategies(rules blogtext.Rules, fetcher blogtext.Fetcher) []Strategy {
	structural := NewStructuralStrategy(rules.ContentSelectors, rules.MinChars)
	return []Strategy{
		structural,
		NewFrameStrategy(fetcher, rules.FrameSelectors, structural),
		NewStateStrategy(rules.StateVariables, rules.StatePaths, rules.MinChars),
		NewFallbackStrategy([]string{"article"}, rules.MinChars),
	}
}

// GenericStrategies returns the cascade for pages off the platform:
// meta description, semantic containers, any extra strategies (such as
// article extractors), then the body.
func GenericStrategies(rules blogtext.Rules, extra ...Strategy) []Strategy {
	strategies := []Strategy{
		NewMetaStrategy(rules.MinChars),
		NewSemanticStrategy([]string{"main", "article"}, rules.MinChars),
	}
	strategies = append(strategies, extra...)
	return append(strategies, NewFallbackStrategy(nil, rules.MinChars))
}

// Locate runs the cascade for target over html.
func (l *Locator) Locate(ctx context.Context, target blogtext.Target, html string) (*blogtext.Fragment, error) {
	page, err := NewPage(target.URL, html)
	if err != nil {
		return nil, blogtext.Errorf(blogtext.EEXTRACT, "parse %s: %v", target.URL, err)
	}

	strategies := l.generic
	if target.Platform() {
		strategies = l.platform
	}

	last := ""
	for _, s := range strategies {
		last = s.Name()
		frag, err := s.Locate(ctx, page)
		if err != nil {
			l.logger.Debug("strategy failed", "url", target.URL, "strategy", last, "err", err)
			continue
		}
		if frag == nil {
			l.logger.Debug("strategy missed", "url", target.URL, "strategy", last)
			continue
		}
		return frag, nil
	}

	return nil, blogtext.Errorf(blogtext.EEXTRACT, "no content located for %s (last strategy %q)", target.URL, last)
}
