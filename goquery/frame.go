package goquery

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/blogtext"
)

// FrameStrategy follows a page's embedded content frame. Some platform
// pages are a shell around an iframe that holds the real post; this
// strategy fetches that nested document and runs an inner strategy on it.
//
// The inner strategy never hops again, so recursion depth is capped at 1.
type FrameStrategy struct {
	fetcher   blogtext.Fetcher
	selectors []string
	inner     Strategy
}

// NewFrameStrategy returns a FrameStrategy that locates frames with
// selectors and applies inner to the nested document.
func NewFrameStrategy(fetcher blogtext.Fetcher, selectors []string, inner Strategy) *FrameStrategy {
	return &FrameStrategy{fetcher: fetcher, selectors: selectors, inner: inner}
}

// Name returns the strategy's identifier.
func (s *FrameStrategy) Name() string {
	return StrategyFrame
}

// Locate fetches the frame document and delegates to the inner strategy.
// A page without a frame yields nil. A failed nested fetch is reported as
// an error, which the cascade treats as no match.
func (s *FrameStrategy) Locate(ctx context.Context, page *Page) (*blogtext.Fragment, error) {
	frameURL := s.frameURL(page)
	if frameURL == "" {
		return nil, nil
	}

	res, err := s.fetcher.Fetch(ctx, blogtext.FetchRequest{URL: frameURL, RequireArticle: true})
	if err != nil {
		return nil, fmt.Errorf("fetch frame %s: %w", frameURL, err)
	}

	nested, err := NewPage(res.URL, res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse frame %s: %w", frameURL, err)
	}

	frag, err := s.inner.Locate(ctx, nested)
	if err != nil || frag == nil {
		return nil, err
	}
	frag.Strategy = StrategyFrame
	return frag, nil
}

// frameURL returns the absolute frame source, or "" when there is none or
// it points back at the page itself.
func (s *FrameStrategy) frameURL(page *Page) string {
	base, err := url.Parse(page.URL)
	if err != nil {
		return ""
	}

	for _, selector := range s.selectors {
		src, ok := page.Doc.Find(selector).First().Attr("src")
		src = strings.TrimSpace(src)
		if !ok || src == "" || isNonHTTPLink(src) {
			continue
		}
		ref, err := url.Parse(src)
		if err != nil {
			continue
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""
		if resolved.String() == page.URL {
			continue
		}
		return resolved.String()
	}
	return ""
}

// isNonHTTPLink checks if a src is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "about:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "data:")
}
