package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/fwojciec/blogtext"
	"github.com/fwojciec/blogtext/fs"
	"github.com/fwojciec/blogtext/pipeline"
	"github.com/google/uuid"
)

// record is one line of JSON output from the extract command.
type record struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	*blogtext.Result
	Error *errorRecord `json:"error,omitempty"`
}

type errorRecord struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	batch := &pipeline.Batch{
		Extractor:   deps.Extractor,
		Concurrency: c.Concurrency,
	}

	outcomes := batch.Run(deps.Ctx, c.URLs, func(e pipeline.ProgressEvent) {
		if e.Type == pipeline.ProgressCompleted || e.Type == pipeline.ProgressFailed {
			deps.Logger.Debug("progress", "completed", e.Completed, "total", e.Total, "url", e.URL)
		}
	})

	if c.Out != "" {
		return c.save(deps, outcomes)
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)

	var failed int
	for i, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", o.URL, describe(o.Err))
			if c.JSON {
				if err := enc.Encode(record{
					ID:    uuid.NewString(),
					URL:   o.URL,
					Error: &errorRecord{Code: blogtext.ErrorCode(o.Err), Message: describe(o.Err)},
				}); err != nil {
					return err
				}
			}
			continue
		}

		if c.JSON {
			if err := enc.Encode(record{ID: uuid.NewString(), URL: o.URL, Result: o.Result}); err != nil {
				return err
			}
			continue
		}

		if len(outcomes) > 1 {
			if i > 0 {
				fmt.Fprintln(deps.Stdout)
			}
			fmt.Fprintf(deps.Stdout, "==> %s <==\n", o.URL)
		}
		fmt.Fprintln(deps.Stdout, o.Result.Text)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d extractions failed", failed, len(outcomes))
	}
	return nil
}

// save writes the successful outcomes to the output directory, replacing
// its previous contents.
func (c *ExtractCmd) save(deps *Dependencies, outcomes []pipeline.Outcome) error {
	ext := ".txt"
	if c.Format == formatMarkdown {
		ext = ".md"
	}
	out := filepath.Clean(c.Out)
	var store blogtext.ResultStore = fs.NewFileStore(filepath.Dir(out), filepath.Base(out), ext)

	var saved, failed int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", o.URL, describe(o.Err))
			continue
		}
		if err := store.Save(deps.Ctx, o.Result); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", o.URL, describe(err))
			return err
		}
		saved++
	}

	if err := store.Commit(); err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Saved %d of %d results to %s\n", saved, len(outcomes), out)

	if failed > 0 {
		return fmt.Errorf("%d of %d extractions failed", failed, len(outcomes))
	}
	return nil
}

// describe returns the application message of err, or the raw error text
// for failures that carry no application code, such as cancellation.
func describe(err error) string {
	if blogtext.ErrorCode(err) == blogtext.EINTERNAL {
		return err.Error()
	}
	return blogtext.ErrorMessage(err)
}
