// Package slog provides log/slog decorators for the blogtext services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/blogtext"
)

// Ensure LoggingFetcher implements blogtext.Fetcher.
var _ blogtext.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   blogtext.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next blogtext.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, req blogtext.FetchRequest) (res *blogtext.FetchResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", req.URL,
			"article", req.RequireArticle,
			"duration", time.Since(begin),
		}
		if res != nil {
			attrs = append(attrs, "status", res.StatusCode, "bytes", len(res.Body), "thin", res.Thin)
		}
		if err != nil {
			attrs = append(attrs, "code", blogtext.ErrorCode(err), "err", err)
		}
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, req)
}
