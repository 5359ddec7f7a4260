package goquery_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/blogtext"
	"github.com/fwojciec/blogtext/goquery"
	"github.com/fwojciec/blogtext/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSanitizer(t *testing.T, opts ...goquery.SanitizerOption) *goquery.Sanitizer {
	t.Helper()

	s, err := goquery.NewSanitizer(blogtext.DefaultRules(), opts...)
	require.NoError(t, err)
	return s
}

func fragment(html string) *blogtext.Fragment {
	return &blogtext.Fragment{HTML: html, Strategy: goquery.StrategyStructural}
}

func TestSanitizer_Sanitize(t *testing.T) {
	t.Parallel()

	t.Run("renders paragraphs and line breaks as newlines", func(t *testing.T) {
		t.Parallel()

		text, err := newSanitizer(t).Sanitize(fragment(`<div><p>첫째 줄</p><p>둘째 줄<br>셋째 줄</p></div>`))

		require.NoError(t, err)
		assert.Equal(t, "첫째 줄\n둘째 줄\n셋째 줄", text)
	})

	t.Run("collapses whitespace and blank runs", func(t *testing.T) {
		t.Parallel()

		text, err := newSanitizer(t).Sanitize(fragment("<p>  하나   \t 둘  <br><br><br><br>셋</p>"))

		require.NoError(t, err)
		assert.Equal(t, "하나 둘\n\n셋", text)
	})

	t.Run("removes invisible elements", func(t *testing.T) {
		t.Parallel()

		text, err := newSanitizer(t).Sanitize(fragment(`<div>본문<script>var x = 1;</script><style>p{}</style><noscript>켜주세요</noscript></div>`))

		require.NoError(t, err)
		assert.Equal(t, "본문", text)
	})

	t.Run("removes ad containers", func(t *testing.T) {
		t.Parallel()

		text, err := newSanitizer(t).Sanitize(fragment(`<div><p>본문</p><div class="revenue_ad">광고</div><div id="banner-top">배너</div><div class="header">머리말</div></div>`))

		require.NoError(t, err)
		assert.Equal(t, "본문\n머리말", text)
	})

	t.Run("strips hashtags", func(t *testing.T) {
		t.Parallel()

		text, err := newSanitizer(t).Sanitize(fragment(`<p>맛집 추천 #서울맛집 #데이트</p><p>C# 언어</p>`))

		require.NoError(t, err)
		assert.Equal(t, "맛집 추천\nC# 언어", text)
	})

	t.Run("drops interface chrome", func(t *testing.T) {
		t.Parallel()

		text, err := newSanitizer(t).Sanitize(fragment(`<p>본문입니다</p><p>공감이 많이 되네요</p><div>공감 12</div><div>댓글 3</div><span>이웃추가</span>`))

		require.NoError(t, err)
		assert.Equal(t, "본문입니다\n공감이 많이 되네요", text)
	})

	t.Run("keeps prose that mentions chrome phrases", func(t *testing.T) {
		t.Parallel()

		text, err := newSanitizer(t).Sanitize(fragment(`<p>저는 매일 아침 글쓰기를 합니다. 친구에게 공유하기 좋은 맛집이에요.</p><div>공유하기 · 신고하기</div>`))

		require.NoError(t, err)
		assert.Equal(t, "저는 매일 아침 글쓰기를 합니다. 친구에게 공유하기 좋은 맛집이에요.", text)
	})

	t.Run("removes long hashtags whole", func(t *testing.T) {
		t.Parallel()

		text, err := newSanitizer(t).Sanitize(fragment(`<p>본문 #` + strings.Repeat("가", 60) + `XYZ 끝</p>`))

		require.NoError(t, err)
		assert.Equal(t, "본문 끝", text)
	})

	t.Run("keeps disclosures unless organic", func(t *testing.T) {
		t.Parallel()

		html := `<p>좋은 제품이었다</p><p>이 글은 업체로부터 소정의 원고료를 받아 작성되었습니다</p>`

		text, err := newSanitizer(t).Sanitize(fragment(html))
		require.NoError(t, err)
		assert.Contains(t, text, "원고료")

		text, err = newSanitizer(t, goquery.WithOrganic(true)).Sanitize(fragment(html))
		require.NoError(t, err)
		assert.Equal(t, "좋은 제품이었다", text)
	})

	t.Run("truncates to the cap", func(t *testing.T) {
		t.Parallel()

		rules := blogtext.DefaultRules()
		rules.MaxChars = 100
		s, err := goquery.NewSanitizer(rules)
		require.NoError(t, err)

		for _, n := range []int{1, 99, 100, 101, 20000} {
			text, err := s.Sanitize(fragment("<p>" + strings.Repeat("가", n) + "</p>"))
			require.NoError(t, err)
			assert.LessOrEqual(t, utf8.RuneCountInString(text), 100)
			assert.Equal(t, min(n, 100), utf8.RuneCountInString(text))
		}
	})

	t.Run("renders through the converter", func(t *testing.T) {
		t.Parallel()

		var got string
		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				got = html
				return "# 제목\n\n본문 #태그", nil
			},
		}

		text, err := newSanitizer(t, goquery.WithConverter(converter)).Sanitize(fragment(`<h1>제목</h1><p>본문</p><script>x</script>`))

		require.NoError(t, err)
		assert.Equal(t, "# 제목\n\n본문", text)
		assert.NotContains(t, got, "<script>")
	})

	t.Run("returns ESANITIZE when nothing survives", func(t *testing.T) {
		t.Parallel()

		for _, frag := range []*blogtext.Fragment{
			nil,
			fragment(""),
			fragment(`<script>var x;</script>`),
			fragment(`<p>#태그 #해시</p>`),
			fragment(`<div>공감 3</div><div>이웃추가</div>`),
		} {
			text, err := newSanitizer(t).Sanitize(frag)
			assert.Empty(t, text)
			assert.Equal(t, blogtext.ESANITIZE, blogtext.ErrorCode(err))
		}
	})
}

func TestNewSanitizer_InvalidPattern(t *testing.T) {
	t.Parallel()

	rules := blogtext.DefaultRules()
	rules.ChromePatterns = append(rules.ChromePatterns, "(")

	_, err := goquery.NewSanitizer(rules)

	assert.Equal(t, blogtext.EINVALID, blogtext.ErrorCode(err))
}
