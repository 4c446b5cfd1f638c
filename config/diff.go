package config

import (
	"bytes"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff of two configurations rendered as YAML, with
// passwords redacted. It returns "" when they render identically.
func Diff(before, after *Config) (string, error) {
	a, err := render(before)
	if err != nil {
		return "", err
	}
	b, err := render(after)
	if err != nil {
		return "", err
	}
	if a == b {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: "before",
		ToFile:   "after",
		Context:  2,
	})
}

func render(cfg *Config) (string, error) {
	if cfg == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := cfg.Redacted().Write(&buf); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n") + "\n", nil
}
