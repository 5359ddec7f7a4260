package prometheus

import (
	"context"

	"github.com/fwojciec/blogtext"
)

// Ensure Fetcher implements blogtext.Fetcher at compile time.
var _ blogtext.Fetcher = (*Fetcher)(nil)

// Fetcher counts fetches by outcome. Frame hops go through the same
// Fetcher, so one extraction may count more than once.
type Fetcher struct {
	next    blogtext.Fetcher
	metrics *Metrics
}

// NewFetcher wraps next.
func NewFetcher(next blogtext.Fetcher, metrics *Metrics) *Fetcher {
	return &Fetcher{next: next, metrics: metrics}
}

// Fetch delegates to the wrapped fetcher and records the outcome.
func (f *Fetcher) Fetch(ctx context.Context, req blogtext.FetchRequest) (*blogtext.FetchResult, error) {
	res, err := f.next.Fetch(ctx, req)
	f.metrics.fetches.WithLabelValues(outcome(blogtext.ErrorCode(err))).Inc()
	return res, err
}
