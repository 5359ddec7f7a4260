package mock

import (
	"context"

	"github.com/fwojciec/blogtext"
)

var _ blogtext.ContentLocator = (*ContentLocator)(nil)

// ContentLocator is a mock implementation of blogtext.ContentLocator.
type ContentLocator struct {
	LocateFn func(ctx context.Context, target blogtext.Target, html string) (*blogtext.Fragment, error)
}

func (l *ContentLocator) Locate(ctx context.Context, target blogtext.Target, html string) (*blogtext.Fragment, error) {
	return l.LocateFn(ctx, target, html)
}

var _ blogtext.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of blogtext.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(fragment *blogtext.Fragment) (string, error)
}

func (s *Sanitizer) Sanitize(fragment *blogtext.Fragment) (string, error) {
	return s.SanitizeFn(fragment)
}
