// Package htmltomarkdown renders sanitized fragments as Markdown.
package htmltomarkdown

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/blogtext"
)

// Ensure Converter implements blogtext.Converter at compile time.
var _ blogtext.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. Images are dropped and links keep only
// their text, since the output is prose for downstream text consumers.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", blogtext.Errorf(blogtext.EINVALID, "empty HTML input")
	}

	prose, err := stripMedia(html)
	if err != nil {
		return "", err
	}
	return c.conv.ConvertString(prose)
}

// stripMedia removes images and unwraps links.
func stripMedia(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse fragment: %w", err)
	}
	body := doc.Find("body")
	body.Find("img, picture, video").Remove()
	body.Find("a").Each(func(_ int, a *goquery.Selection) {
		if a.Contents().Length() == 0 {
			a.Remove()
			return
		}
		a.Contents().Unwrap()
	})
	return body.Html()
}
