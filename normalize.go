package blogtext

import (
	"net/url"
	"regexp"
	"strings"
)

// PostLocator identifies one post on the platform independent of the URL
// form that referenced it.
type PostLocator struct {
	AuthorID string `json:"authorId"`
	PostID   string `json:"postId"`
}

// String returns the locator as "author/post".
func (l PostLocator) String() string {
	return l.AuthorID + "/" + l.PostID
}

// Target is the result of normalizing an input URL.
type Target struct {
	// Original is the input as given by the caller.
	Original string `json:"original"`

	// URL is the address to fetch: the canonical post URL when Locator is
	// set, otherwise the input with a scheme added.
	URL string `json:"url"`

	// Locator is set when the URL resolved to a platform post.
	Locator *PostLocator `json:"locator,omitempty"`

	// Ambiguous is set when the URL is on the platform host but does not
	// carry enough structure to identify a post (e.g. an author's home).
	Ambiguous bool `json:"ambiguous,omitempty"`
}

// Platform reports whether platform-specific extraction applies.
func (t Target) Platform() bool {
	return t.Locator != nil
}

// PostPattern recognizes one URL form of a platform post. Match is only
// called for URLs on a platform host.
type PostPattern struct {
	Name  string
	Match func(u *url.URL) (PostLocator, bool)
}

var (
	postPathRe = regexp.MustCompile(`^/(?:PostList\.naver/)?([A-Za-z0-9_.-]+)/(\d+)(?:/|$)`)
	numericRe  = regexp.MustCompile(`^\d+$`)
	schemeRe   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)
)

// DefaultPostPatterns returns the URL forms recognized out of the box:
// the desktop query form and the path form shared by desktop and mobile
// hosts.
func DefaultPostPatterns() []PostPattern {
	return []PostPattern{
		{Name: "query", Match: matchQueryForm},
		{Name: "path", Match: matchPathForm},
	}
}

// matchQueryForm handles ".../PostView.naver?blogId=X&logNo=Y".
func matchQueryForm(u *url.URL) (PostLocator, bool) {
	path := strings.ToLower(u.Path)
	if !strings.HasSuffix(path, "/postview.naver") && !strings.HasSuffix(path, "/postview.nhn") {
		return PostLocator{}, false
	}
	q := u.Query()
	blogID, logNo := q.Get("blogId"), q.Get("logNo")
	if blogID == "" || !numericRe.MatchString(logNo) {
		return PostLocator{}, false
	}
	return PostLocator{AuthorID: blogID, PostID: logNo}, true
}

// matchPathForm handles "/{authorId}/{postId}" on either host.
func matchPathForm(u *url.URL) (PostLocator, bool) {
	m := postPathRe.FindStringSubmatch(u.Path)
	if m == nil {
		return PostLocator{}, false
	}
	return PostLocator{AuthorID: m[1], PostID: m[2]}, true
}

// Normalizer canonicalizes input URLs into platform post locators.
// Normalizer holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	platform Platform
	patterns []PostPattern
}

// NewNormalizer returns a Normalizer for the given platform hosts using the
// default patterns followed by any extra patterns.
func NewNormalizer(platform Platform, extra ...PostPattern) *Normalizer {
	patterns := DefaultPostPatterns()
	patterns = append(patterns, extra...)
	return &Normalizer{
		platform: Platform{
			Host:       strings.ToLower(platform.Host),
			MobileHost: strings.ToLower(platform.MobileHost),
		},
		patterns: patterns,
	}
}

// Normalize resolves raw into a Target. A missing scheme defaults to https.
// URLs off the platform host are passed through unchanged. Platform URLs
// that do not resolve to a post come back with Ambiguous set; that is not
// an error.
func (n *Normalizer) Normalize(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, Errorf(EINVALID, "empty URL")
	}

	withScheme := raw
	if !schemeRe.MatchString(raw) {
		withScheme = "https://" + raw
	}

	u, err := url.Parse(withScheme)
	if err != nil || u.Host == "" {
		return Target{}, Errorf(EINVALID, "invalid URL %q", raw)
	}

	target := Target{Original: raw, URL: withScheme}
	if !n.IsPlatformHost(u.Hostname()) {
		return target, nil
	}

	for _, p := range n.patterns {
		if loc, ok := p.Match(u); ok {
			target.Locator = &loc
			target.URL = n.CanonicalURL(loc)
			return target, nil
		}
	}

	target.Ambiguous = true
	return target, nil
}

// CanonicalURL renders a locator in the mobile path form.
func (n *Normalizer) CanonicalURL(loc PostLocator) string {
	u := url.URL{
		Scheme: "https",
		Host:   n.platform.MobileHost,
		Path:   "/" + loc.AuthorID + "/" + loc.PostID,
	}
	return u.String()
}

// IsPlatformHost reports whether host belongs to the platform: the desktop
// host, the mobile host, or a subdomain of the desktop host.
func (n *Normalizer) IsPlatformHost(host string) bool {
	host = strings.ToLower(host)
	if host == "" || n.platform.Host == "" {
		return false
	}
	return host == n.platform.Host ||
		host == n.platform.MobileHost ||
		strings.HasSuffix(host, "."+n.platform.Host)
}
