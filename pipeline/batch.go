package pipeline

import (
	"context"

	"github.com/fwojciec/blogtext"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of extractions a Batch runs at once.
const DefaultConcurrency = 4

// Batch extracts many URLs concurrently.
type Batch struct {
	Extractor   blogtext.Extractor
	Concurrency int
}

// Outcome is the result of extracting one URL of a batch.
type Outcome struct {
	URL    string
	Result *blogtext.Result
	Err    error
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress. It is always
// called from the goroutine running Run.
type ProgressFunc func(event ProgressEvent)

type outcome struct {
	position int
	Outcome
}

// Run extracts every URL and returns the outcomes in input order. A failed
// URL does not stop the others.
func (b *Batch) Run(ctx context.Context, urls []string, progress ProgressFunc) []Outcome {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan outcome, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				res, err := b.Extractor.Extract(gctx, u)
				resultCh <- outcome{position: i, Outcome: Outcome{URL: u, Result: res, Err: err}}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	outcomes := make([]Outcome, total)
	completed := 0
	for o := range resultCh {
		completed++
		outcomes[o.position] = o.Outcome

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			URL:       o.URL,
		}
		if o.Err != nil {
			event.Type = ProgressFailed
			event.Error = o.Err
		}
		progress(event)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return outcomes
}
