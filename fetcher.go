package blogtext

import "context"

// FetchRequest describes one page to retrieve.
type FetchRequest struct {
	URL string

	// RequireArticle marks a page that should carry substantial article
	// markup. A thin response to such a request is treated as a bot-block
	// placeholder and retried.
	RequireArticle bool
}

// FetchResult holds a retrieved page.
type FetchResult struct {
	// URL is the final URL after redirects.
	URL string

	StatusCode int

	// Body is the response body decoded to UTF-8.
	Body string

	// Thin is set when the raw body was below the minimum-byte threshold.
	Thin bool
}

// Fetcher retrieves raw HTML over HTTP.
type Fetcher interface {
	// Fetch retrieves the page, retrying transient failures internally.
	// Returns EBLOCKED once the retry budget is exhausted.
	Fetch(ctx context.Context, req FetchRequest) (*FetchResult, error)
}

// DomainLimiter rate limits requests per host.
type DomainLimiter interface {
	// Wait blocks until a request to host is allowed or ctx is done.
	Wait(ctx context.Context, host string) error
}
