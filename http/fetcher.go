// Package http provides an HTTP implementation of blogtext.Fetcher with
// retry, client identity rotation, and charset decoding.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/blogtext"
	"github.com/sethvargo/go-retry"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultTimeout bounds one attempt, from dial to the last body byte.
	DefaultTimeout = 15 * time.Second

	// DefaultConnectTimeout bounds establishing the connection.
	DefaultConnectTimeout = 5 * time.Second

	// DefaultMaxAttempts is the total number of attempts per fetch.
	DefaultMaxAttempts = 3

	// DefaultRetryDelay and DefaultRetryJitter give a sleep between 0.8s and
	// 2.0s before each retry.
	DefaultRetryDelay  = 1400 * time.Millisecond
	DefaultRetryJitter = 600 * time.Millisecond

	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes = 5 << 20
)

// Ensure Fetcher implements blogtext.Fetcher at compile time.
var _ blogtext.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML over HTTP. Transient conditions (network errors,
// 429, 5xx, thin placeholder pages) are retried internally; everything else
// is returned as EBLOCKED. Fetcher is safe for concurrent use.
type Fetcher struct {
	client         *http.Client
	transport      http.RoundTripper
	timeout        time.Duration
	connectTimeout time.Duration
	maxAttempts    int
	retryDelay     time.Duration
	retryJitter    time.Duration
	minBodyBytes   int
	limiter        blogtext.DomainLimiter
	identities     []Identity
	randomAgents   bool
	pool           *identityPool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-attempt timeout.
// Defaults to DefaultTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithConnectTimeout sets the dial timeout. It has no effect together with
// WithTransport.
func WithConnectTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.connectTimeout = d
	}
}

// WithTransport substitutes the round tripper, mostly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.transport = rt
	}
}

// WithMaxAttempts sets the total number of attempts per fetch.
func WithMaxAttempts(n int) Option {
	return func(f *Fetcher) {
		f.maxAttempts = n
	}
}

// WithRetryDelay sets the base sleep between attempts and the jitter added
// around it. Zero values make retries immediate.
func WithRetryDelay(base, jitter time.Duration) Option {
	return func(f *Fetcher) {
		f.retryDelay = base
		f.retryJitter = jitter
	}
}

// WithMinBodyBytes sets the thin-response threshold.
func WithMinBodyBytes(n int) Option {
	return func(f *Fetcher) {
		f.minBodyBytes = n
	}
}

// WithRateLimiter makes every attempt wait on the limiter for its host.
func WithRateLimiter(l blogtext.DomainLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithIdentities replaces the identity pool.
func WithIdentities(ids []Identity) Option {
	return func(f *Fetcher) {
		f.identities = ids
	}
}

// WithRandomUserAgents draws a random browser user agent on each retry.
func WithRandomUserAgents(enabled bool) Option {
	return func(f *Fetcher) {
		f.randomAgents = enabled
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:        DefaultTimeout,
		connectTimeout: DefaultConnectTimeout,
		maxAttempts:    DefaultMaxAttempts,
		retryDelay:     DefaultRetryDelay,
		retryJitter:    DefaultRetryJitter,
		minBodyBytes:   blogtext.DefaultMinBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.maxAttempts < 1 {
		f.maxAttempts = 1
	}

	transport := f.transport
	if transport == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.DialContext = (&net.Dialer{Timeout: f.connectTimeout, KeepAlive: 30 * time.Second}).DialContext
		t.TLSHandshakeTimeout = f.connectTimeout
		transport = t
	}
	f.client = &http.Client{
		Transport: transport,
		Timeout:   f.timeout,
	}
	f.pool = newIdentityPool(f.identities, f.randomAgents)

	return f
}

// Fetch retrieves req.URL.
func (f *Fetcher) Fetch(ctx context.Context, req blogtext.FetchRequest) (*blogtext.FetchResult, error) {
	u, err := url.Parse(req.URL)
	if err != nil || u.Host == "" {
		return nil, blogtext.Errorf(blogtext.EINVALID, "invalid fetch URL %q", req.URL)
	}

	var (
		result    *blogtext.FetchResult
		attempts  int
		referer   string
		forbidden bool
	)
	err = retry.Do(ctx, f.backoff(), func(ctx context.Context) error {
		attempts++

		if f.limiter != nil {
			if err := f.limiter.Wait(ctx, u.Hostname()); err != nil {
				return err
			}
		}

		res, err := f.get(ctx, req.URL, f.pool.pick(attempts), referer)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return retry.RetryableError(blogtext.Errorf(blogtext.ETRANSIENT, "GET %s: %v", req.URL, err))
		}

		switch code := res.StatusCode; {
		case code >= 200 && code < 300:
			if req.RequireArticle && res.Thin {
				return retry.RetryableError(blogtext.Errorf(blogtext.ETRANSIENT, "thin response (%d bytes) for %s", len(res.Body), req.URL))
			}
			result = res
			return nil
		case code == http.StatusForbidden:
			if forbidden {
				return blogtext.Errorf(blogtext.EBLOCKED, "HTTP 403 for %s after strengthened retry", req.URL)
			}
			forbidden = true
			referer = req.URL
			return retry.RetryableError(blogtext.Errorf(blogtext.ETRANSIENT, "HTTP 403 for %s", req.URL))
		case code == http.StatusTooManyRequests || code >= 500:
			return retry.RetryableError(blogtext.Errorf(blogtext.ETRANSIENT, "HTTP %d for %s", code, req.URL))
		default:
			return blogtext.Errorf(blogtext.EBLOCKED, "HTTP %d for %s", code, req.URL)
		}
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("fetch %s: %w", req.URL, ctx.Err())
		}
		if blogtext.ErrorCode(err) == blogtext.ETRANSIENT {
			return nil, blogtext.Errorf(blogtext.EBLOCKED, "giving up on %s after %d attempts: %s", req.URL, attempts, blogtext.ErrorMessage(err))
		}
		return nil, err
	}
	return result, nil
}

// backoff returns a fresh retry schedule for one call.
func (f *Fetcher) backoff() retry.Backoff {
	b := retry.NewConstant(max(f.retryDelay, time.Nanosecond))
	if f.retryJitter > 0 {
		b = retry.WithJitter(f.retryJitter, b)
	}
	return retry.WithMaxRetries(uint64(f.maxAttempts-1), b)
}

// get performs one attempt and decodes the body to UTF-8.
func (f *Fetcher) get(ctx context.Context, rawURL string, id Identity, referer string) (*blogtext.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	id.apply(req, referer)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, err
	}
	body, err := decode(raw, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	finalURL := rawURL
	if resp.Request != nil {
		finalURL = resp.Request.URL.String()
	}
	return &blogtext.FetchResult{
		URL:        finalURL,
		StatusCode: resp.StatusCode,
		Body:       body,
		Thin:       len(raw) < f.minBodyBytes,
	}, nil
}

// decode converts raw to UTF-8 using the Content-Type charset, a meta
// declaration, or content sniffing, in that order.
func decode(raw []byte, contentType string) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	enc, name, certain := charset.DetermineEncoding(raw, contentType)
	// Sniffing only looks at the first 1024 bytes, which may end mid-rune.
	if enc == nil || name == "utf-8" || (!certain && utf8.Valid(raw)) {
		return string(bytes.ToValidUTF8(raw, []byte("�"))), nil
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode %s body: %w", name, err)
	}
	return string(out), nil
}
