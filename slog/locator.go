package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/blogtext"
)

// Ensure LoggingLocator implements blogtext.ContentLocator.
var _ blogtext.ContentLocator = (*LoggingLocator)(nil)

// LoggingLocator wraps a ContentLocator with logging.
type LoggingLocator struct {
	next   blogtext.ContentLocator
	logger *slog.Logger
}

// NewLoggingLocator creates a new LoggingLocator.
func NewLoggingLocator(next blogtext.ContentLocator, logger *slog.Logger) *LoggingLocator {
	return &LoggingLocator{next: next, logger: logger}
}

// Locate delegates to the wrapped locator and logs which strategy won.
func (l *LoggingLocator) Locate(ctx context.Context, target blogtext.Target, html string) (frag *blogtext.Fragment, err error) {
	defer func(begin time.Time) {
		strategy := "(none)"
		confidence := ""
		if frag != nil {
			strategy = frag.Strategy
			confidence = frag.Confidence.String()
		}
		l.logger.Info("locate",
			"url", target.URL,
			"platform", target.Platform(),
			"strategy", strategy,
			"confidence", confidence,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Locate(ctx, target, html)
}
