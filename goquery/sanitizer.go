package goquery

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/blogtext"
)

// Ensure Sanitizer implements blogtext.Sanitizer at compile time.
var _ blogtext.Sanitizer = (*Sanitizer)(nil)

var (
	// adNameRe matches class and id tokens used for ads and promotions.
	adNameRe = regexp.MustCompile(`(?i)(?:^|[\s_-])(?:ad|ads|adsense|adfit|advert|advertisement|banner|promo|promotion|sponsor|sponsored)(?:$|[\s_-])`)

	// hashtagRe matches a '#' immediately followed by non-whitespace, up
	// to the end of the token.
	hashtagRe = regexp.MustCompile(`#[^\s\x{00a0}#]+`)
)

// Sanitizer turns a located fragment into clean, bounded text.
// Sanitizer holds only read-only configuration and is safe for concurrent
// use.
type Sanitizer struct {
	maxChars       int
	organic        bool
	chromePhrases  []string
	chromePatterns []*regexp.Regexp
	disclosures    []string
	converter      blogtext.Converter
}

// SanitizerOption configures a Sanitizer.
type SanitizerOption func(*Sanitizer)

// WithOrganic drops lines carrying sponsorship or ad-disclosure phrasing.
func WithOrganic(organic bool) SanitizerOption {
	return func(s *Sanitizer) {
		s.organic = organic
	}
}

// WithConverter renders the cleaned fragment with c (e.g. to Markdown)
// instead of as plain text.
func WithConverter(c blogtext.Converter) SanitizerOption {
	return func(s *Sanitizer) {
		s.converter = c
	}
}

// NewSanitizer creates a Sanitizer from rules. It returns EINVALID if a
// chrome pattern does not compile.
func NewSanitizer(rules blogtext.Rules, opts ...SanitizerOption) (*Sanitizer, error) {
	s := &Sanitizer{
		maxChars:      rules.MaxChars,
		chromePhrases: rules.ChromePhrases,
		disclosures:   make([]string, 0, len(rules.DisclosurePhrases)),
	}
	if s.maxChars <= 0 {
		s.maxChars = blogtext.DefaultMaxChars
	}
	for _, p := range rules.ChromePatterns {
		re, err := regexp.Compile(`^(?:` + p + `)$`)
		if err != nil {
			return nil, blogtext.Errorf(blogtext.EINVALID, "invalid chrome pattern %q: %v", p, err)
		}
		s.chromePatterns = append(s.chromePatterns, re)
	}
	for _, d := range rules.DisclosurePhrases {
		s.disclosures = append(s.disclosures, strings.ToLower(d))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Sanitize cleans the fragment. The result is never longer than the
// configured cap; longer text is truncated, not rejected.
func (s *Sanitizer) Sanitize(fragment *blogtext.Fragment) (string, error) {
	if fragment == nil || strings.TrimSpace(fragment.HTML) == "" {
		return "", blogtext.Errorf(blogtext.ESANITIZE, "empty fragment")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment.HTML))
	if err != nil {
		return "", blogtext.Errorf(blogtext.ESANITIZE, "parse fragment (strategy %q): %v", fragment.Strategy, err)
	}

	body := doc.Find("body")
	body.Find(invisibleSelector).Remove()
	body.Find("[class], [id]").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		id, _ := sel.Attr("id")
		if adNameRe.MatchString(class) || adNameRe.MatchString(id) {
			sel.Remove()
		}
	})

	text, err := s.render(body)
	if err != nil {
		return "", err
	}

	text = s.clean(text)
	if text == "" {
		return "", blogtext.Errorf(blogtext.ESANITIZE, "no text survived cleaning (strategy %q)", fragment.Strategy)
	}
	return text, nil
}

func (s *Sanitizer) render(body *goquery.Selection) (string, error) {
	if s.converter == nil {
		return renderText(body), nil
	}
	html, err := body.Html()
	if err != nil {
		return "", fmt.Errorf("render fragment: %w", err)
	}
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	md, err := s.converter.Convert(html)
	if err != nil {
		return "", fmt.Errorf("convert fragment: %w", err)
	}
	return md, nil
}

// clean applies the text-level rules: hashtags, chrome, disclosures,
// whitespace, cap.
func (s *Sanitizer) clean(text string) string {
	text = hashtagRe.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.Join(strings.Fields(line), " ")
		if s.isChrome(trimmed) || (s.organic && s.isDisclosure(trimmed)) {
			continue
		}
		kept = append(kept, line)
	}

	text = normalizeWhitespace(strings.Join(kept, "\n"))
	return truncateRunes(text, s.maxChars)
}

// isChrome reports whether line is a counter line or consists only of
// chrome phrases and separators.
func (s *Sanitizer) isChrome(line string) bool {
	if line == "" {
		return false
	}
	for _, re := range s.chromePatterns {
		if re.MatchString(line) {
			return true
		}
	}

	rest := line
	for _, phrase := range s.chromePhrases {
		rest = strings.ReplaceAll(rest, phrase, "")
	}
	return rest != line && strings.TrimFunc(rest, isSeparator) == ""
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func (s *Sanitizer) isDisclosure(line string) bool {
	lower := strings.ToLower(line)
	for _, d := range s.disclosures {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}
