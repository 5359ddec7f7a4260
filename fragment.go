package blogtext

import "context"

// Confidence grades how likely a fragment is to be the authored body.
type Confidence int

// Confidence levels.
const (
	ConfidenceHigh Confidence = iota
	ConfidenceLow
)

// String returns "high" or "low".
func (c Confidence) String() string {
	if c == ConfidenceLow {
		return "low"
	}
	return "high"
}

// MarshalText implements encoding.TextMarshaler.
func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Fragment is an HTML sub-tree believed to contain the authored body.
type Fragment struct {
	// HTML is the fragment markup. Text-only sources are escaped into a
	// paragraph so consumers always receive HTML.
	HTML string

	// Strategy names the strategy that produced the fragment. It is for
	// diagnostics only.
	Strategy string

	Confidence Confidence
}

// ContentLocator finds the sub-region of a page holding the authored body.
type ContentLocator interface {
	// Locate runs the strategy cascade for target over html. target.URL is
	// the address html was served from, used to resolve relative links.
	// Returns EEXTRACT if no strategy produced a fragment.
	Locate(ctx context.Context, target Target, html string) (*Fragment, error)
}

// Sanitizer converts a fragment into clean, bounded text.
type Sanitizer interface {
	// Sanitize returns the cleaned text. Returns ESANITIZE if nothing
	// survives cleaning; never returns an empty string with a nil error.
	Sanitize(fragment *Fragment) (string, error)
}
