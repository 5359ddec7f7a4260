package http

import (
	"net/http"
	"sync/atomic"

	"github.com/corpix/uarand"
)

// DefaultAcceptLanguage prefers Korean, the platform's primary language.
const DefaultAcceptLanguage = "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7"

// DefaultReferer is sent when no strengthened referer applies.
const DefaultReferer = "https://m.blog.naver.com/"

// Identity is the set of client headers presented on one attempt.
type Identity struct {
	UserAgent      string
	AcceptLanguage string
	Referer        string
}

// DefaultIdentities returns the fixed identity pool. The mobile browser
// comes first because the mobile pages carry the simplest markup.
func DefaultIdentities() []Identity {
	return []Identity{
		{
			UserAgent:      "Mozilla/5.0 (Linux; Android 13; SM-S918N) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Mobile Safari/537.36",
			AcceptLanguage: DefaultAcceptLanguage,
			Referer:        DefaultReferer,
		},
		{
			UserAgent:      "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1",
			AcceptLanguage: DefaultAcceptLanguage,
			Referer:        DefaultReferer,
		},
		{
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
			AcceptLanguage: DefaultAcceptLanguage,
			Referer:        "https://blog.naver.com/",
		},
	}
}

// identityPool hands out identities in rotation. The pool itself is
// read-only after construction; only the cursor moves.
type identityPool struct {
	identities []Identity
	random     bool
	next       atomic.Uint64
}

func newIdentityPool(identities []Identity, random bool) *identityPool {
	if len(identities) == 0 {
		identities = DefaultIdentities()
	}
	return &identityPool{identities: identities, random: random}
}

// pick returns the identity for the given attempt (starting at 1). The first
// attempt of every call uses the head of the pool; later attempts rotate
// through the rest, or draw a random user agent when enabled.
func (p *identityPool) pick(attempt int) Identity {
	if attempt <= 1 {
		return p.identities[0]
	}
	id := p.identities[int(p.next.Add(1)%uint64(len(p.identities)))]
	if p.random {
		id.UserAgent = uarand.GetRandom()
	}
	return id
}

// apply sets the identity headers on req. A non-empty referer overrides the
// identity's default.
func (id Identity) apply(req *http.Request, referer string) {
	if referer == "" {
		referer = id.Referer
	}
	req.Header.Set("User-Agent", id.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", id.AcceptLanguage)
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
}
