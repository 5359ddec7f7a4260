package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/blogtext"
	"github.com/fwojciec/blogtext/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts paragraphs", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>첫 문단입니다.</p><p>둘째 문단입니다.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "첫 문단입니다.\n\n둘째 문단입니다.")
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<h2>여행 후기</h2><h3>첫째 날</h3>`)

		require.NoError(t, err)
		assert.Contains(t, md, "## 여행 후기")
		assert.Contains(t, md, "### 첫째 날")
	})

	t.Run("keeps only the text of links", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>자세한 내용은 <a href="https://example.com">공식 사이트</a>를 참고하세요.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "자세한 내용은 공식 사이트를 참고하세요.")
		assert.NotContains(t, md, "https://example.com")
	})

	t.Run("drops images", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>사진 <img src="https://example.com/a.jpg" alt="풍경"> 아래</p>`)

		require.NoError(t, err)
		assert.NotContains(t, md, "a.jpg")
		assert.NotContains(t, md, "![")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<ul><li>김밥</li><li>떡볶이</li></ul><ol><li>예약</li><li>방문</li></ol>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- 김밥")
		assert.Contains(t, md, "- 떡볶이")
		assert.Contains(t, md, "1. 예약")
		assert.Contains(t, md, "2. 방문")
	})

	t.Run("converts emphasis and quotes", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p><strong>강조</strong> 그리고 <em>기울임</em></p><blockquote><p>인용문</p></blockquote>`)

		require.NoError(t, err)
		assert.Contains(t, md, "**강조**")
		assert.Contains(t, md, "*기울임*")
		assert.Contains(t, md, "> 인용문")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<table><thead><tr><th>메뉴</th><th>가격</th></tr></thead><tbody><tr><td>국밥</td><td>9000원</td></tr></tbody></table>`)

		require.NoError(t, err)
		assert.Contains(t, md, "메뉴")
		assert.Contains(t, md, "9000원")
		assert.Contains(t, md, "|")
	})

	t.Run("returns EINVALID for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("  ")

		assert.Equal(t, blogtext.EINVALID, blogtext.ErrorCode(err))
	})
}
