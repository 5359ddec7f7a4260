package goquery

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/blogtext"
	"github.com/tidwall/gjson"
	json5 "github.com/yosuke-furukawa/json5/encoding/json5"
)

// StateStrategy reads the authored body out of client-side state that the
// page serializes into an inline script, e.g.
//
//	window.__APOLLO_STATE__ = {...};
//	<script id="__NEXT_DATA__" type="application/json">{...}</script>
//
// The state is parsed as JSON, or as JSON5 when it uses JavaScript object
// syntax, and the configured gjson key-paths are tried in order. Anything
// that fails to parse is treated as "not found"; this strategy never
// returns an error.
type StateStrategy struct {
	variables []string
	paths     []string
	minChars  int
}

// NewStateStrategy returns a StateStrategy.
func NewStateStrategy(variables, paths []string, minChars int) *StateStrategy {
	return &StateStrategy{variables: variables, paths: paths, minChars: minChars}
}

// Name returns the strategy's identifier.
func (s *StateStrategy) Name() string {
	return StrategyState
}

// Locate scans inline scripts for known state variables.
func (s *StateStrategy) Locate(_ context.Context, page *Page) (*blogtext.Fragment, error) {
	var found *blogtext.Fragment
	page.Doc.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		id, _ := script.Attr("id")
		text := script.Text()
		for _, variable := range s.variables {
			data, ok := stateData(id, text, variable)
			if !ok {
				continue
			}
			if content, ok := s.content(data); ok {
				found = &blogtext.Fragment{
					HTML:       content,
					Strategy:   StrategyState,
					Confidence: blogtext.ConfidenceHigh,
				}
				return false
			}
		}
		return true
	})
	return found, nil
}

// content walks the key-paths and returns the first value that meets the
// quality bar, as HTML.
func (s *StateStrategy) content(data []byte) (string, bool) {
	for _, path := range s.paths {
		res := gjson.GetBytes(data, path)
		if !res.Exists() {
			continue
		}

		var value string
		if res.IsArray() {
			var parts []string
			res.ForEach(func(_, v gjson.Result) bool {
				if str := strings.TrimSpace(v.String()); str != "" {
					parts = append(parts, str)
				}
				return true
			})
			value = strings.Join(parts, "\n")
		} else {
			value = strings.TrimSpace(res.String())
		}
		if value == "" {
			continue
		}

		if !looksLikeHTML(value) {
			value = textToHTML(value)
		}
		page, err := goquery.NewDocumentFromReader(strings.NewReader(value))
		if err != nil {
			continue
		}
		if utf8.RuneCountInString(visibleText(page.Selection)) < s.minChars {
			continue
		}
		return value, true
	}
	return "", false
}

// stateData extracts the JSON document assigned to variable in a script.
// A script whose id equals variable holds the document as its whole body.
func stateData(id, text, variable string) ([]byte, bool) {
	var raw string
	if id == variable {
		raw = strings.TrimSpace(text)
	} else {
		i := strings.Index(text, variable)
		if i < 0 {
			return nil, false
		}
		rest := text[i+len(variable):]
		eq := strings.IndexByte(rest, '=')
		if eq < 0 {
			return nil, false
		}
		// Only quotes and brackets may sit between the name and the '=',
		// as in window["__STATE__"] = {...}.
		if strings.Trim(rest[:eq], "\"'] \t") != "" {
			return nil, false
		}
		raw = strings.TrimSpace(rest[eq+1:])
	}

	obj, ok := balancedObject(raw)
	if !ok {
		return nil, false
	}
	if json.Valid([]byte(obj)) {
		return []byte(obj), true
	}

	obj = normalizeLiteral(obj)
	if json.Valid([]byte(obj)) {
		return []byte(obj), true
	}

	var v any
	if err := json5.Unmarshal([]byte(obj), &v); err != nil {
		return nil, false
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	return data, true
}

// balancedObject returns the leading {...} object literal of s, respecting
// string literals and escapes.
func balancedObject(s string) (string, bool) {
	if !strings.HasPrefix(s, "{") {
		return "", false
	}
	depth := 0
	var quote byte
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}

// normalizeLiteral rewrites the JavaScript-only parts of an object literal
// that the JSON5 decoder rejects: single-quoted and template strings become
// double-quoted strings, and trailing commas are dropped.
func normalizeLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			end := skipString(s, i)
			b.WriteString(s[i:end])
			i = end - 1
		case '\'', '`':
			i = requote(&b, s, i)
		case ',':
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// skipString returns the index just past the double-quoted string that
// starts at s[start].
func skipString(s string, start int) int {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(s)
}

// requote writes the string literal starting at s[start], delimited by
// s[start], as a double-quoted string and returns the index of its closing
// delimiter.
func requote(b *strings.Builder, s string, start int) int {
	quote := s[start]
	b.WriteByte('"')
	for i := start + 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			i++
			if s[i] == quote {
				b.WriteByte(quote)
			} else {
				b.WriteByte('\\')
				b.WriteByte(s[i])
			}
		case c == quote:
			b.WriteByte('"')
			return i
		case c == '"':
			b.WriteString(`\"`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return len(s)
}
