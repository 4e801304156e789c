package jobs

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// FoldKeyword normalizes a search keyword for caseless matching: NFKC first
// so full-width forms collapse to their ASCII equivalents, then case folding.
func FoldKeyword(s string) string {
	return folder.String(norm.NFKC.String(strings.TrimSpace(s)))
}

// FoldTags lowercases and de-duplicates a tag list, dropping empties.
func FoldTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		folded := FoldKeyword(tag)
		if folded == "" {
			continue
		}
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		out = append(out, folded)
	}
	return out
}
