package goquery

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// invisibleSelector matches elements whose content is never visible text.
const invisibleSelector = "script, style, noscript, template, iframe"

// blockElements end a line of text when rendered.
var blockElements = map[atom.Atom]bool{
	atom.Address:    true,
	atom.Article:    true,
	atom.Aside:      true,
	atom.Blockquote: true,
	atom.Dd:         true,
	atom.Div:        true,
	atom.Dl:         true,
	atom.Dt:         true,
	atom.Figcaption: true,
	atom.Figure:     true,
	atom.Footer:     true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Header:     true,
	atom.Hr:         true,
	atom.Li:         true,
	atom.Main:       true,
	atom.Ol:         true,
	atom.P:          true,
	atom.Pre:        true,
	atom.Section:    true,
	atom.Table:      true,
	atom.Tr:         true,
	atom.Ul:         true,
}

// skipElements contribute no text.
var skipElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Iframe:   true,
	atom.Head:     true,
}

var manyNewlinesRe = regexp.MustCompile(`\n{3,}`)

// textBuilder accumulates rendered text, never emitting two newlines in a
// row for a single boundary.
type textBuilder struct {
	b strings.Builder
}

func (t *textBuilder) newline() {
	s := t.b.String()
	if s == "" || strings.HasSuffix(s, "\n") {
		return
	}
	t.b.WriteByte('\n')
}

func (t *textBuilder) walk(n *nethtml.Node) {
	switch n.Type {
	case nethtml.TextNode:
		t.b.WriteString(n.Data)
		return
	case nethtml.ElementNode:
		if skipElements[n.DataAtom] {
			return
		}
		if n.DataAtom == atom.Br {
			// br always produces a line, even an empty one.
			t.b.WriteByte('\n')
			return
		}
	}

	block := n.Type == nethtml.ElementNode && blockElements[n.DataAtom]
	if block {
		t.newline()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		t.walk(c)
	}
	if block {
		t.newline()
	}
}

// renderText returns the text of sel with br elements and block boundaries
// rendered as newlines. Whitespace is normalized by normalizeWhitespace.
func renderText(sel *goquery.Selection) string {
	var t textBuilder
	for _, n := range sel.Nodes {
		t.walk(n)
	}
	return normalizeWhitespace(t.b.String())
}

// visibleText returns the text of sel collapsed onto a single line. It is
// the measure used by the quality bar.
func visibleText(sel *goquery.Selection) string {
	var t textBuilder
	for _, n := range sel.Nodes {
		t.walk(n)
	}
	return strings.Join(strings.Fields(t.b.String()), " ")
}

// visibleLen returns the number of characters in the visible text of sel.
func visibleLen(sel *goquery.Selection) int {
	return utf8.RuneCountInString(visibleText(sel))
}

// normalizeWhitespace collapses runs of horizontal whitespace to single
// spaces, trims every line, and limits blank runs to one empty line.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	out := strings.Join(lines, "\n")
	out = manyNewlinesRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// truncateRunes cuts s to at most max characters.
func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return strings.TrimRightFunc(s[:i], unicode.IsSpace)
		}
		count++
	}
	return s
}

// textToHTML wraps plain text in paragraphs so text-only sources can flow
// through the same sanitizer as markup.
func textToHTML(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>")
	}
	return b.String()
}

// looksLikeHTML reports whether s appears to carry markup.
func looksLikeHTML(s string) bool {
	i := strings.IndexByte(s, '<')
	return i >= 0 && strings.IndexByte(s[i:], '>') > 0
}
