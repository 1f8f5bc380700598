package main

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// treeDiff returns a unified diff between two renderings of a tree, or an
// empty string if they are the same.
func treeDiff(name, before, after string) string {
	if before == after {
		return ""
	}

	u := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  2,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		// Very rare; fall back to just saying something changed.
		return "--- a/" + name + "\n+++ b/" + name + "\n"
	}

	return strings.TrimRight(s, "\n") + "\n"
}
