package cipher

import (
	"strings"
	"unicode"

	"golang.org/x/exp/constraints"
)

// mod returns a modulo m normalised into [0, m).
func mod[T constraints.Integer](a, m T) T {
	return ((a % m) + m) % m
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }

func isASCIILetter(r rune) bool { return isASCIIUpper(r) || isASCIILower(r) }

// shiftLetter rotates an ASCII letter by shift within its case range.
// Other runes are returned unchanged.
func shiftLetter(r rune, shift int) rune {
	switch {
	case isASCIIUpper(r):
		return 'A' + rune(mod(int(r-'A')+shift, 26))
	case isASCIILower(r):
		return 'a' + rune(mod(int(r-'a')+shift, 26))
	}
	return r
}

// keepRunes filters text down to the runes accepted by keep, in order.
func keepRunes(text string, keep func(rune) bool) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if keep(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// runeFilter validates text against a per-rune admissible set.
func runeFilter(text string, keep func(rune) bool) ValidationResult {
	for _, r := range text {
		if !keep(r) {
			return ValidationResult{Suggestion: keepRunes(text, keep)}
		}
	}
	return valid()
}

func stripSpace(text string) string {
	return keepRunes(text, func(r rune) bool { return !unicode.IsSpace(r) })
}
