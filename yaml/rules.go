// Package yaml loads extraction rule overrides from YAML files.
package yaml

import (
	"errors"
	"io"
	"os"
	"slices"

	"github.com/fwojciec/blogtext"
	"gopkg.in/yaml.v3"
)

// LoadRules reads the rules file at path and overlays it on the defaults.
func LoadRules(path string) (blogtext.Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		return blogtext.Rules{}, blogtext.Errorf(blogtext.EINVALID, "open rules file: %v", err)
	}
	defer f.Close()
	return OverlayRules(blogtext.DefaultRules(), f)
}

// OverlayRules decodes a rules document from r and merges it into base.
// List entries are appended to the base lists, skipping duplicates.
// Non-zero scalars and platform hosts replace the base values. Unknown keys
// are rejected so a typo does not silently do nothing.
func OverlayRules(base blogtext.Rules, r io.Reader) (blogtext.Rules, error) {
	var over blogtext.Rules
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&over); err != nil {
		if errors.Is(err, io.EOF) {
			return base, nil
		}
		return blogtext.Rules{}, blogtext.Errorf(blogtext.EINVALID, "parse rules: %v", err)
	}

	out := base
	if over.Platform.Host != "" {
		out.Platform.Host = over.Platform.Host
	}
	if over.Platform.MobileHost != "" {
		out.Platform.MobileHost = over.Platform.MobileHost
	}
	out.ContentSelectors = merge(base.ContentSelectors, over.ContentSelectors)
	out.FrameSelectors = merge(base.FrameSelectors, over.FrameSelectors)
	out.StateVariables = merge(base.StateVariables, over.StateVariables)
	out.StatePaths = merge(base.StatePaths, over.StatePaths)
	out.ChromePhrases = merge(base.ChromePhrases, over.ChromePhrases)
	out.ChromePatterns = merge(base.ChromePatterns, over.ChromePatterns)
	out.DisclosurePhrases = merge(base.DisclosurePhrases, over.DisclosurePhrases)
	if over.MaxChars > 0 {
		out.MaxChars = over.MaxChars
	}
	if over.MinChars > 0 {
		out.MinChars = over.MinChars
	}
	if over.MinBodyBytes > 0 {
		out.MinBodyBytes = over.MinBodyBytes
	}
	return out, nil
}

func merge(base, extra []string) []string {
	out := slices.Clone(base)
	for _, s := range extra {
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
