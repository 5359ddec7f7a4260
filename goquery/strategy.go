package goquery

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
	"github.com/fwojciec/blogtext"
)

// Strategy names used in fragment tags and diagnostics.
const (
	StrategyStructural = "structural"
	StrategyFrame      = "frame"
	StrategyState      = "state"
	StrategyFallback   = "fallback"
	StrategyMeta       = "meta"
	StrategySemantic   = "semantic"
)

// Page is a parsed document together with the URL it was fetched from.
type Page struct {
	URL  string
	HTML string
	Doc  *goquery.Document
}

// NewPage parses html into a Page.
func NewPage(pageURL, html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return &Page{URL: pageURL, HTML: html, Doc: doc}, nil
}

// Strategy is one step of the content cascade.
type Strategy interface {
	// Name returns the strategy's identifier (e.g., "structural").
	Name() string

	// Locate returns the fragment holding the authored body, or nil if the
	// strategy does not apply to page. Errors are diagnostic only; the
	// cascade moves on to the next strategy either way.
	Locate(ctx context.Context, page *Page) (*blogtext.Fragment, error)
}

// candidate is an element that met the quality bar.
type candidate struct {
	sel    *goquery.Selection
	length int
}

// SelectorStrategy locates content with an ordered list of CSS selectors.
//
// In longest mode every match of every selector competes and the element
// with the most visible text wins; smaller matches such as captions or
// widgets are assumed to be noise. In ordered mode the first selector with a
// qualifying match wins.
type SelectorStrategy struct {
	name       string
	selectors  []string
	minChars   int
	longest    bool
	confidence blogtext.Confidence
}

// NewStructuralStrategy returns the longest-match strategy over the
// platform's editor container selectors.
func NewStructuralStrategy(selectors []string, minChars int) *SelectorStrategy {
	return &SelectorStrategy{
		name:       StrategyStructural,
		selectors:  selectors,
		minChars:   minChars,
		longest:    true,
		confidence: blogtext.ConfidenceHigh,
	}
}

// NewSemanticStrategy returns an ordered strategy over semantic containers
// such as main and article.
func NewSemanticStrategy(selectors []string, minChars int) *SelectorStrategy {
	return &SelectorStrategy{
		name:       StrategySemantic,
		selectors:  selectors,
		minChars:   minChars,
		confidence: blogtext.ConfidenceHigh,
	}
}

// Name returns the strategy's identifier.
func (s *SelectorStrategy) Name() string {
	return s.name
}

// Locate returns the winning element as a fragment.
func (s *SelectorStrategy) Locate(_ context.Context, page *Page) (*blogtext.Fragment, error) {
	best := s.find(page.Doc)
	if best == nil {
		return nil, nil
	}
	return s.fragment(best.sel)
}

func (s *SelectorStrategy) find(doc *goquery.Document) *candidate {
	var best *candidate
	for _, selector := range s.selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			n := visibleLen(sel)
			if n < s.minChars {
				return
			}
			if best == nil || n > best.length {
				best = &candidate{sel: sel, length: n}
			}
		})
		if best != nil && !s.longest {
			break
		}
	}
	return best
}

func (s *SelectorStrategy) fragment(sel *goquery.Selection) (*blogtext.Fragment, error) {
	html, err := goquery.OuterHtml(sel)
	if err != nil {
		return nil, err
	}
	return &blogtext.Fragment{HTML: html, Strategy: s.name, Confidence: s.confidence}, nil
}

// FallbackStrategy takes the nearest semantic container meeting the quality
// bar, or else the whole document body with any non-empty text. Its
// fragments are always low confidence.
type FallbackStrategy struct {
	name      string
	selectors []string
	minChars  int
}

// NewFallbackStrategy returns a fallback over the given containers.
func NewFallbackStrategy(selectors []string, minChars int) *FallbackStrategy {
	return &FallbackStrategy{name: StrategyFallback, selectors: selectors, minChars: minChars}
}

// Name returns the strategy's identifier.
func (s *FallbackStrategy) Name() string {
	return s.name
}

// Locate returns the container or body fragment, or nil if the body is
// empty.
func (s *FallbackStrategy) Locate(_ context.Context, page *Page) (*blogtext.Fragment, error) {
	for _, selector := range s.selectors {
		sel := page.Doc.Find(selector).First()
		if sel.Length() > 0 && visibleLen(sel) >= s.minChars {
			return s.fragment(sel)
		}
	}

	body := page.Doc.Find("body").First()
	if body.Length() == 0 || visibleLen(body) == 0 {
		return nil, nil
	}
	return s.fragment(body)
}

func (s *FallbackStrategy) fragment(sel *goquery.Selection) (*blogtext.Fragment, error) {
	html, err := goquery.OuterHtml(sel)
	if err != nil {
		return nil, err
	}
	return &blogtext.Fragment{HTML: html, Strategy: s.name, Confidence: blogtext.ConfidenceLow}, nil
}

// MetaStrategy uses the page's own summary: the description meta tag, then
// the Open Graph description.
type MetaStrategy struct {
	minChars int
}

// NewMetaStrategy returns a MetaStrategy.
func NewMetaStrategy(minChars int) *MetaStrategy {
	return &MetaStrategy{minChars: minChars}
}

// Name returns the strategy's identifier.
func (s *MetaStrategy) Name() string {
	return StrategyMeta
}

// Locate returns the description as a paragraph fragment.
func (s *MetaStrategy) Locate(_ context.Context, page *Page) (*blogtext.Fragment, error) {
	desc := ""
	if content, ok := page.Doc.Find("meta[name='description']").First().Attr("content"); ok {
		desc = strings.TrimSpace(content)
	}
	if desc == "" {
		og := opengraph.NewOpenGraph()
		if err := og.ProcessHTML(strings.NewReader(page.HTML)); err != nil {
			return nil, err
		}
		desc = strings.TrimSpace(og.Description)
	}
	if desc == "" || utf8.RuneCountInString(strings.Join(strings.Fields(desc), " ")) < s.minChars {
		return nil, nil
	}
	return &blogtext.Fragment{
		HTML:       textToHTML(desc),
		Strategy:   StrategyMeta,
		Confidence: blogtext.ConfidenceHigh,
	}, nil
}

// ArticleStrategy delegates to a whole-page article extractor such as
// readability or trafilatura. Its fragments are low confidence.
type ArticleStrategy struct {
	name      string
	extractor blogtext.ArticleExtractor
	minChars  int
}

// NewArticleStrategy returns an ArticleStrategy tagged with name.
func NewArticleStrategy(name string, extractor blogtext.ArticleExtractor, minChars int) *ArticleStrategy {
	return &ArticleStrategy{name: name, extractor: extractor, minChars: minChars}
}

// Name returns the strategy's identifier.
func (s *ArticleStrategy) Name() string {
	return s.name
}

// Locate runs the extractor and checks the quality bar on its output.
func (s *ArticleStrategy) Locate(_ context.Context, page *Page) (*blogtext.Fragment, error) {
	article, err := s.extractor.ExtractArticle(page.HTML)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(article.ContentHTML) == "" {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.ContentHTML))
	if err != nil {
		return nil, err
	}
	if visibleLen(doc.Selection) < s.minChars {
		return nil, nil
	}
	return &blogtext.Fragment{
		HTML:       article.ContentHTML,
		Strategy:   s.name,
		Confidence: blogtext.ConfidenceLow,
	}, nil
}
