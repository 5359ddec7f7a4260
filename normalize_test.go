package blogtext_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/fwojciec/blogtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer() *blogtext.Normalizer {
	return blogtext.NewNormalizer(blogtext.Platform{
		Host:       "blog.example.com",
		MobileHost: "m.blog.example.com",
	})
}

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("all recognized forms of one post normalize identically", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer()
		forms := []string{
			"https://blog.example.com/PostView.naver?blogId=abc&logNo=100",
			"https://blog.example.com/abc/100",
			"https://m.blog.example.com/abc/100",
			"blog.example.com/abc/100",
			"http://blog.example.com/PostView.nhn?logNo=100&blogId=abc&redirect=Dlog",
			"https://blog.example.com/PostList.naver/abc/100",
		}

		for _, form := range forms {
			target, err := n.Normalize(form)
			require.NoError(t, err, form)
			require.NotNil(t, target.Locator, form)
			assert.Equal(t, blogtext.PostLocator{AuthorID: "abc", PostID: "100"}, *target.Locator, form)
			assert.Equal(t, "https://m.blog.example.com/abc/100", target.URL, form)
			assert.True(t, target.Platform(), form)
			assert.False(t, target.Ambiguous, form)
			assert.Equal(t, form, target.Original)
		}
	})

	t.Run("normalizing a canonical URL is a fixed point", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer()
		first, err := n.Normalize("https://blog.example.com/PostView.naver?blogId=abc&logNo=100")
		require.NoError(t, err)

		second, err := n.Normalize(first.URL)
		require.NoError(t, err)

		assert.Equal(t, first.URL, second.URL)
		assert.Equal(t, first.Locator, second.Locator)
	})

	t.Run("adds https scheme when missing", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer()
		target, err := n.Normalize("news.example.org/article/1")

		require.NoError(t, err)
		assert.Equal(t, "https://news.example.org/article/1", target.URL)
		assert.False(t, target.Platform())
	})

	t.Run("adds https scheme when the query carries a URL", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer()
		target, err := n.Normalize("blog.example.com/abc/100?from=https://search.example.org")

		require.NoError(t, err)
		require.NotNil(t, target.Locator)
		assert.Equal(t, "abc/100", target.Locator.String())
		assert.Equal(t, "https://m.blog.example.com/abc/100", target.URL)
	})

	t.Run("passes non-platform URLs through unchanged", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer()
		raw := "https://news.example.org/abc/100?ref=feed"
		target, err := n.Normalize(raw)

		require.NoError(t, err)
		assert.Equal(t, raw, target.URL)
		assert.Nil(t, target.Locator)
		assert.False(t, target.Ambiguous)
	})

	t.Run("marks author home as ambiguous and keeps the original URL", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer()
		target, err := n.Normalize("https://m.blog.example.com/abc")

		require.NoError(t, err)
		assert.True(t, target.Ambiguous)
		assert.Nil(t, target.Locator)
		assert.Equal(t, "https://m.blog.example.com/abc", target.URL)
		assert.False(t, target.Platform())
	})

	t.Run("marks query form without post number as ambiguous", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer()
		target, err := n.Normalize("https://blog.example.com/PostView.naver?blogId=abc")

		require.NoError(t, err)
		assert.True(t, target.Ambiguous)
	})

	t.Run("treats subdomains of the platform host as platform URLs", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer()
		target, err := n.Normalize("https://section.blog.example.com/abc/100")

		require.NoError(t, err)
		require.NotNil(t, target.Locator)
		assert.Equal(t, "100", target.Locator.PostID)
	})

	t.Run("does not treat look-alike hosts as the platform", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer()
		target, err := n.Normalize("https://notblog.example.com/abc/100")

		require.NoError(t, err)
		assert.Nil(t, target.Locator)
		assert.False(t, target.Ambiguous)
	})

	t.Run("returns EINVALID for empty input", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer()
		_, err := n.Normalize("   ")

		require.Error(t, err)
		assert.Equal(t, blogtext.EINVALID, blogtext.ErrorCode(err))
	})

	t.Run("returns EINVALID for unparseable input", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer()
		_, err := n.Normalize("https://%zz")

		require.Error(t, err)
		assert.Equal(t, blogtext.EINVALID, blogtext.ErrorCode(err))
	})

	t.Run("consults extra patterns after the defaults", func(t *testing.T) {
		t.Parallel()

		shortLink := blogtext.PostPattern{
			Name: "short",
			Match: func(u *url.URL) (blogtext.PostLocator, bool) {
				parts := strings.Split(strings.Trim(u.Path, "/"), "-")
				if len(parts) != 2 {
					return blogtext.PostLocator{}, false
				}
				return blogtext.PostLocator{AuthorID: parts[0], PostID: parts[1]}, true
			},
		}
		n := blogtext.NewNormalizer(blogtext.Platform{
			Host:       "blog.example.com",
			MobileHost: "m.blog.example.com",
		}, shortLink)

		target, err := n.Normalize("https://blog.example.com/abc-100")

		require.NoError(t, err)
		require.NotNil(t, target.Locator)
		assert.Equal(t, "https://m.blog.example.com/abc/100", target.URL)
	})
}

func TestDefaultRules(t *testing.T) {
	t.Parallel()

	rules := blogtext.DefaultRules()

	assert.Equal(t, "m.blog.naver.com", rules.Platform.MobileHost)
	assert.Contains(t, rules.ContentSelectors, ".se-main-container")
	assert.Equal(t, blogtext.DefaultMaxChars, rules.MaxChars)
	assert.Equal(t, blogtext.DefaultMinChars, rules.MinChars)
}
