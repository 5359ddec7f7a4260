package mock

import (
	"context"

	"github.com/fwojciec/blogtext"
)

var _ blogtext.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of blogtext.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, req blogtext.FetchRequest) (*blogtext.FetchResult, error)
}

func (f *Fetcher) Fetch(ctx context.Context, req blogtext.FetchRequest) (*blogtext.FetchResult, error) {
	return f.FetchFn(ctx, req)
}

var _ blogtext.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of blogtext.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
