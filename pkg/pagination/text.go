package pagination

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeText folds compatibility characters (ligatures, non-breaking
// spaces) and collapses every whitespace run to a single space.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

// truncateHeading shortens h to at most limit runes and then cuts it at
// the first backtick, so that the remainder can be matched against
// reflowed page text.
func truncateHeading(h string, limit int) string {
	if r := []rune(h); len(r) > limit {
		h = string(r[:limit])
	}
	if i := strings.Index(h, "`"); i >= 0 {
		h = h[:i]
	}
	return h
}
