// Package fs stores extraction results as files.
package fs

import (
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/fwojciec/blogtext"
	"gopkg.in/yaml.v3"
)

// ResultPath converts a result to a relative, slash-separated file path
// without extension. Platform posts map to author/post; other pages map to
// host plus URL path.
//
// Example: https://news.example.org/2024/story → news.example.org/2024/story
func ResultPath(res *blogtext.Result) (string, error) {
	if res.Locator != nil {
		return checkPath(res.Locator.AuthorID + "/" + res.Locator.PostID)
	}

	u, err := url.Parse(res.Canonical)
	if err != nil {
		return "", blogtext.Errorf(blogtext.EINVALID, "invalid result URL %q", res.Canonical)
	}

	p := u.Path
	if p == "" || strings.HasSuffix(p, "/") {
		p += "index"
	}
	return checkPath(u.Hostname() + "/" + strings.TrimPrefix(p, "/"))
}

func checkPath(p string) (string, error) {
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." || seg == "." || seg == "" {
			return "", blogtext.Errorf(blogtext.EINVALID, "path traversal in %q", p)
		}
	}
	return path.Clean(p), nil
}

// frontMatter is the YAML header written above the text.
type frontMatter struct {
	Source     string    `yaml:"source"`
	Canonical  string    `yaml:"canonical"`
	Strategy   string    `yaml:"strategy"`
	Confidence string    `yaml:"confidence"`
	Hash       string    `yaml:"hash"`
	Extracted  time.Time `yaml:"extracted"`
}

// FormatResult formats a result with YAML frontmatter.
func FormatResult(res *blogtext.Result, extracted time.Time) (string, error) {
	header, err := yaml.Marshal(frontMatter{
		Source:     res.URL,
		Canonical:  res.Canonical,
		Strategy:   res.Strategy,
		Confidence: res.Confidence.String(),
		Hash:       res.Hash,
		Extracted:  extracted.UTC().Truncate(time.Second),
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(res.Text)
	b.WriteString("\n")
	return b.String(), nil
}
