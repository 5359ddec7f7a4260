package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/blogtext"
)

// Ensure LoggingExtractor implements blogtext.Extractor.
var _ blogtext.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging. Failures are logged at
// error level with their code.
type LoggingExtractor struct {
	next   blogtext.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next blogtext.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(ctx context.Context, rawURL string) (res *blogtext.Result, err error) {
	defer func(begin time.Time) {
		if err != nil {
			e.logger.Error("extract",
				"url", rawURL,
				"code", blogtext.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		e.logger.Info("extract",
			"url", rawURL,
			"strategy", res.Strategy,
			"confidence", res.Confidence.String(),
			"chars", utf8.RuneCountInString(res.Text),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(ctx, rawURL)
}
