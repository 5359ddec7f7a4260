package goquery_test

import (
	"context"
	"testing"

	"github.com/fwojciec/blogtext"
	"github.com/fwojciec/blogtext/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locateState(t *testing.T, html string) *blogtext.Fragment {
	t.Helper()

	rules := blogtext.DefaultRules()
	page, err := goquery.NewPage("https://m.blog.naver.com/abc/100", html)
	require.NoError(t, err)

	frag, err := goquery.NewStateStrategy(rules.StateVariables, rules.StatePaths, 20).Locate(context.Background(), page)
	require.NoError(t, err)
	return frag
}

func TestStateStrategy_Locate(t *testing.T) {
	t.Parallel()

	t.Run("reads HTML from a JSON assignment", func(t *testing.T) {
		t.Parallel()

		frag := locateState(t, `<script>window.__INITIAL_STATE__ = {"post":{"contentHtml":"<p>`+words("상태", 20)+`</p>"}};</script>`)

		require.NotNil(t, frag)
		assert.Equal(t, goquery.StrategyState, frag.Strategy)
		assert.Equal(t, blogtext.ConfidenceHigh, frag.Confidence)
		assert.Contains(t, frag.HTML, "<p>상태")
	})

	t.Run("parses JavaScript object syntax", func(t *testing.T) {
		t.Parallel()

		frag := locateState(t, `<script>
var __PRELOADED_STATE__ = {postView: {content: '`+words("자바스크립트", 10)+`',},};
</script>`)

		require.NotNil(t, frag)
		assert.Contains(t, frag.HTML, "<p>자바스크립트")
	})

	t.Run("unescapes quotes inside single-quoted strings", func(t *testing.T) {
		t.Parallel()

		frag := locateState(t, `<script>
window.__INITIAL_STATE__ = {post: {content: 'It\'s a "quoted" word `+words("따옴표", 10)+`'}};
</script>`)

		require.NotNil(t, frag)
		assert.Contains(t, frag.HTML, "It&#39;s a &#34;quoted&#34; word")
	})

	t.Run("parses template strings", func(t *testing.T) {
		t.Parallel()

		frag := locateState(t, "<script>var __APOLLO_STATE__ = {post: {content: `"+words("템플릿", 10)+"`}};</script>")

		require.NotNil(t, frag)
		assert.Contains(t, frag.HTML, "<p>템플릿")
	})

	t.Run("reads a JSON script element by id", func(t *testing.T) {
		t.Parallel()

		frag := locateState(t, `<script id="__NEXT_DATA__" type="application/json">
{"props":{"pageProps":{"post":{"content":"`+words("넥스트", 10)+`"}}}}
</script>`)

		require.NotNil(t, frag)
		assert.Contains(t, frag.HTML, "넥스트")
	})

	t.Run("joins component text arrays", func(t *testing.T) {
		t.Parallel()

		frag := locateState(t, `<script>window.__APOLLO_STATE__ = {"post":{"components":[{"text":"`+words("첫째", 8)+`"},{"text":"`+words("둘째", 8)+`"}]}};</script>`)

		require.NotNil(t, frag)
		assert.Contains(t, frag.HTML, "<p>첫째")
		assert.Contains(t, frag.HTML, "<p>둘째")
	})

	t.Run("keeps braces inside strings", func(t *testing.T) {
		t.Parallel()

		frag := locateState(t, `<script>window.__APOLLO_STATE__ = {"post":{"content":"중괄호 } 가 들어간 { 긴 본문 `+words("내용", 10)+`"}}; var other = {};</script>`)

		require.NotNil(t, frag)
		assert.Contains(t, frag.HTML, "중괄호 } 가 들어간 { 긴 본문")
	})

	t.Run("tries paths in order and skips short values", func(t *testing.T) {
		t.Parallel()

		frag := locateState(t, `<script>window.__APOLLO_STATE__ = {"post":{"contentHtml":"<p>짧음</p>","content":"`+words("대체", 15)+`"}};</script>`)

		require.NotNil(t, frag)
		assert.Contains(t, frag.HTML, "대체")
		assert.NotContains(t, frag.HTML, "짧음")
	})

	t.Run("treats malformed state as not found", func(t *testing.T) {
		t.Parallel()

		frag := locateState(t, `<script>window.__APOLLO_STATE__ = {"post": {"content": "끝나지 않은</script>`)

		assert.Nil(t, frag)
	})

	t.Run("ignores a variable that is only mentioned", func(t *testing.T) {
		t.Parallel()

		frag := locateState(t, `<script>console.log(__APOLLO_STATE__ + {"post":{"content":"`+words("내용", 20)+`"}});</script>`)

		assert.Nil(t, frag)
	})

	t.Run("returns nil without state scripts", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, locateState(t, `<html><body><p>본문</p></body></html>`))
	})
}
