package readability_test

import (
	"testing"

	"github.com/fwojciec/blogtext"
	"github.com/fwojciec/blogtext/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blogPage = `<!DOCTYPE html>
<html>
<head><title>서울 맛집 탐방</title></head>
<body>
<nav><a href="/home">홈 메뉴 링크</a><a href="/about">소개 메뉴 링크</a></nav>
<aside class="sidebar"><p>사이드바 인기 글 목록</p></aside>
<article>
<h2>을지로 노포 국밥집</h2>
<p>을지로 골목 안쪽에 자리한 이 국밥집은 사십 년 넘게 같은 자리를 지켜 온 곳입니다. 점심시간이면 근처 직장인들로 줄이 길게 늘어섭니다.</p>
<p>국물은 맑고 깊은 맛이 나며, 고기는 부드럽게 삶아져 있습니다. 함께 나오는 깍두기도 알맞게 익어 국밥과 잘 어울렸습니다.</p>
<p>가격은 한 그릇에 구천 원이며, 주말에는 오후 세 시까지만 영업하니 방문 전에 꼭 확인하시기 바랍니다.</p>
</article>
<footer><p>저작권 표시 문구 2024</p></footer>
</body>
</html>`

func TestExtractor_ExtractArticle(t *testing.T) {
	t.Parallel()

	t.Run("extracts the title", func(t *testing.T) {
		t.Parallel()

		article, err := readability.NewExtractor().ExtractArticle(blogPage)

		require.NoError(t, err)
		assert.Equal(t, "서울 맛집 탐방", article.Title)
	})

	t.Run("keeps the article body", func(t *testing.T) {
		t.Parallel()

		article, err := readability.NewExtractor().ExtractArticle(blogPage)

		require.NoError(t, err)
		assert.Contains(t, article.ContentHTML, "을지로 골목")
		assert.Contains(t, article.ContentHTML, "깍두기")
	})

	t.Run("removes navigation, sidebar and footer", func(t *testing.T) {
		t.Parallel()

		article, err := readability.NewExtractor().ExtractArticle(blogPage)

		require.NoError(t, err)
		assert.NotContains(t, article.ContentHTML, "홈 메뉴 링크")
		assert.NotContains(t, article.ContentHTML, "사이드바 인기 글")
		assert.NotContains(t, article.ContentHTML, "저작권 표시 문구")
	})

	t.Run("accepts a custom character threshold", func(t *testing.T) {
		t.Parallel()

		article, err := readability.NewExtractor(readability.WithCharThreshold(50)).ExtractArticle(blogPage)

		require.NoError(t, err)
		assert.Contains(t, article.ContentHTML, "국밥")
	})

	t.Run("returns EINVALID for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := readability.NewExtractor().ExtractArticle(" ")

		assert.Equal(t, blogtext.EINVALID, blogtext.ErrorCode(err))
	})
}
