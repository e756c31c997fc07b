package protontest

import (
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOps returns a line diff of two op listings, or "" when they match.
func DiffOps(want, got []string) string {
	a := strings.Join(want, "\n") + "\n"
	b := strings.Join(got, "\n") + "\n"
	if a == b {
		return ""
	}
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(l)
		}
	}
	return sb.String()
}

// CheckOps fails t with a readable diff when got differs from want.
func CheckOps(t testing.TB, want, got []string) {
	t.Helper()
	if diff := DiffOps(want, got); diff != "" {
		t.Errorf("draw ops mismatch (-want +got):\n%s", diff)
	}
}
