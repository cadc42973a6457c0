// Package slug builds URL identifiers and display labels from shop, city and day names.
package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// markRanges lists the diacritic and modifier blocks dropped after decomposition.
var markRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x02b0, Hi: 0x02ff, Stride: 1}, // spacing modifier letters
		{Lo: 0x0300, Hi: 0x036f, Stride: 1}, // combining diacritical marks
		{Lo: 0x1ab0, Hi: 0x1aff, Stride: 1}, // combining diacritical marks extended
		{Lo: 0x1dc0, Hi: 0x1dff, Stride: 1}, // combining diacritical marks supplement
		{Lo: 0x20d0, Hi: 0x20ff, Stride: 1}, // combining marks for symbols
		{Lo: 0xfe20, Hi: 0xfe2f, Stride: 1}, // combining half marks
	},
}

func stripMarks(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(markRanges)),
		runes.Remove(runes.In(unicode.Mn)),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Slugify returns the lower-case, hyphen separated ASCII form of name.
// Slugify(Slugify(s)) == Slugify(s) for every s.
func Slugify(name string) string {
	lowered := strings.ToLower(stripMarks(name))

	var b strings.Builder
	b.Grow(len(lowered))
	pendingDash := false
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// Equal reports whether a and b resolve to the same slug.
func Equal(a, b string) bool {
	return Slugify(a) == Slugify(b)
}

// TitleCase turns "san_juan-city" into "San Juan City". Only the first rune
// of a word is upper-cased, so "3rd" stays "3rd".
func TitleCase(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	words := strings.Fields(s)
	// Casers keep state between calls, so one pair per invocation.
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)
	for i, w := range words {
		_, size := utf8.DecodeRuneInString(w)
		words[i] = upper.String(w[:size]) + lower.String(w[size:])
	}
	return strings.Join(words, " ")
}
