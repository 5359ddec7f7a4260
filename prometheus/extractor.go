package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/blogtext"
)

// Ensure Extractor implements blogtext.Extractor at compile time.
var _ blogtext.Extractor = (*Extractor)(nil)

// Extractor counts and times extractions.
type Extractor struct {
	next    blogtext.Extractor
	metrics *Metrics
}

// NewExtractor wraps next.
func NewExtractor(next blogtext.Extractor, metrics *Metrics) *Extractor {
	return &Extractor{next: next, metrics: metrics}
}

// Extract delegates to the wrapped extractor and records the outcome.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (res *blogtext.Result, err error) {
	defer func(begin time.Time) {
		code := outcome(blogtext.ErrorCode(err))
		strategy, confidence := "", ""
		if res != nil {
			strategy = res.Strategy
			confidence = res.Confidence.String()
		}
		e.metrics.extractions.WithLabelValues(code, strategy, confidence).Inc()
		e.metrics.duration.WithLabelValues(code).Observe(time.Since(begin).Seconds())
	}(time.Now())
	return e.next.Extract(ctx, rawURL)
}
