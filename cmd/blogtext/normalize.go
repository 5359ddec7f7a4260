package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/blogtext"
)

// Run executes the normalize command.
func (c *NormalizeCmd) Run(deps *Dependencies) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)

	var failed int
	for _, raw := range c.URLs {
		target, err := deps.Normalizer.Normalize(raw)
		if err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s\n", blogtext.ErrorMessage(err))
			continue
		}

		if c.JSON {
			if err := enc.Encode(target); err != nil {
				return err
			}
			continue
		}

		line := target.URL
		if target.Ambiguous {
			line += "\t(ambiguous)"
		}
		fmt.Fprintln(deps.Stdout, line)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d URLs could not be normalized", failed, len(c.URLs))
	}
	return nil
}
