package blogtext

import "context"

// Result is the outcome of one extraction.
type Result struct {
	// Text is the cleaned body text. It is never empty.
	Text string `json:"text"`

	// The remaining fields are diagnostics. Consumers of Text must not
	// depend on them.
	URL        string       `json:"url"`
	Canonical  string       `json:"canonical"`
	Locator    *PostLocator `json:"locator,omitempty"`
	Strategy   string       `json:"strategy"`
	Confidence Confidence   `json:"confidence"`

	// Hash is the xxhash of Text in hex, for deduplicating results.
	Hash string `json:"hash"`
}

// Extractor turns a URL into cleaned body text.
type Extractor interface {
	// Extract normalizes, fetches, locates and sanitizes the page at rawURL.
	Extract(ctx context.Context, rawURL string) (*Result, error)
}

// Article holds content found by a readability-style extractor.
type Article struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// ArticleExtractor extracts the main content from a whole HTML page.
type ArticleExtractor interface {
	// ExtractArticle processes raw HTML and returns the main content.
	ExtractArticle(html string) (*Article, error)
}
