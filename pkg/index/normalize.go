package index

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerCaser = cases.Lower(language.Und)

// Normalize lowercases s (Unicode-aware, so accented capitals in
// scientific names from GBIF/ENA lowercase correctly; diacritics are
// kept, not folded to ASCII) and replaces every non-alphanumeric rune
// with a single space, leading and trailing ones included, the query
// normalization applied before every exact or fuzzy lookup.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return lowerCaser.String(b.String())
}
