// Package normalize holds the single string normalization used for tags,
// ingredient names and ingredient search queries. Write-time and query-time
// normalization must go through the same function or tag and ingredient
// lookups stop round-tripping.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Stroked letters carry no combining mark, so NFKD leaves them intact and
// they need an explicit mapping.
var foldStrokes = runes.Map(func(r rune) rune {
	switch r {
	case 'ł':
		return 'l'
	case 'Ł':
		return 'L'
	case 'đ':
		return 'd'
	case 'Đ':
		return 'D'
	case 'ø':
		return 'o'
	case 'Ø':
		return 'O'
	}
	return r
})

var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), foldStrokes)

// String decomposes s (NFKD), drops combining marks and lowercases the
// result. Idempotent; never fails.
func String(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		// transform only errors on a short destination buffer, which
		// transform.String never produces; fall back to the input
		out = s
	}
	return strings.ToLower(out)
}

// IngredientName extracts the name portion of an "amount:name" ingredient
// entry: the substring after the first colon, or the whole string when no
// colon is present. The result is trimmed but not normalized.
func IngredientName(entry string) string {
	if i := strings.Index(entry, ":"); i >= 0 {
		return strings.TrimSpace(entry[i+1:])
	}
	return strings.TrimSpace(entry)
}
