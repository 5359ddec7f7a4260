package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/blogtext"
	"github.com/fwojciec/blogtext/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultStore_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ blogtext.ResultStore = &mock.ResultStore{}
}

func TestResultStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("delegates to SaveFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *blogtext.Result
		s := &mock.ResultStore{
			SaveFn: func(_ context.Context, res *blogtext.Result) error {
				calledWith = res
				return nil
			},
		}

		res := &blogtext.Result{Text: "본문", Canonical: "https://m.blog.naver.com/abc/100"}

		err := s.Save(context.Background(), res)

		require.NoError(t, err)
		assert.Equal(t, res, calledWith)
	})
}
