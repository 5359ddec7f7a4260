package blogtext

import "context"

// ResultStore persists a set of extraction results. Saved results become
// visible together on Commit; Abort discards them.
type ResultStore interface {
	Save(ctx context.Context, res *Result) error
	Commit() error
	Abort() error
}
