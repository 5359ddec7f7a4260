package mock

import (
	"context"

	"github.com/fwojciec/blogtext"
)

var _ blogtext.ResultStore = (*ResultStore)(nil)

// ResultStore is a mock implementation of blogtext.ResultStore.
type ResultStore struct {
	SaveFn   func(ctx context.Context, res *blogtext.Result) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ResultStore) Save(ctx context.Context, res *blogtext.Result) error {
	return s.SaveFn(ctx, res)
}

func (s *ResultStore) Commit() error {
	return s.CommitFn()
}

func (s *ResultStore) Abort() error {
	return s.AbortFn()
}
