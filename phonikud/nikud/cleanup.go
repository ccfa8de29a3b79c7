package nikud

import "strings"

const (
	diacriticsFirst = '\u0590'
	diacriticsLast  = '\u05c7'
)

// StripDiacritics removes Hebrew points and cantillation (U+0590–U+05C7) and the
// prefix marker from text. Base letters and all other characters are kept.
func StripDiacritics(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '|' || (r >= diacriticsFirst && r <= diacriticsLast) {
			return -1
		}
		return r
	}, text)
}
