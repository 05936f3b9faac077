// Package tt provides shared test helpers.
package tt

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// RequireTextEqual fails the test with a unified diff when got differs from
// want. Much easier to read than testify's one-line mismatch output for
// multi-line rendered blocks.
func RequireTextEqual(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	if err != nil {
		t.Fatalf("text mismatch (diff failed: %v)\nwant:\n%s\ngot:\n%s", err, want, got)
	}
	t.Fatalf("text mismatch:\n%s", diff)
}
