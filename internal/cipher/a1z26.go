package cipher

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/RowanDark/cipherdeck/internal/alphabet"
)

var a1z26Separators = regexp.MustCompile(`[.\s,;]+`)

// EncodeA1Z26 replaces each letter with its alphabet position and each space
// with 0, joining the tokens with dots. Other runes become their own token.
func EncodeA1Z26(text string) string {
	tokens := make([]string, 0, len(text))
	for _, r := range strings.ToUpper(text) {
		if r == ' ' {
			tokens = append(tokens, "0")
			continue
		}
		if pos, ok := alphabet.A1Z26.EncodeRune(r); ok {
			tokens = append(tokens, pos)
			continue
		}
		tokens = append(tokens, string(r))
	}
	return strings.Join(tokens, ".")
}

// DecodeA1Z26 reverses EncodeA1Z26. Tokens outside 0..26 are kept verbatim.
func DecodeA1Z26(text string) string {
	var b strings.Builder
	for _, token := range a1z26Separators.Split(text, -1) {
		if token == "" {
			continue
		}
		n, err := strconv.Atoi(token)
		switch {
		case err != nil:
			b.WriteString(token)
		case n == 0:
			b.WriteByte(' ')
		case n >= 1 && n <= 26:
			b.WriteByte(byte('A' + n - 1))
		default:
			b.WriteString(token)
		}
	}
	return b.String()
}

// ValidateA1Z26 checks letters-and-spaces input for encoding or
// digits-and-separators input for decoding.
func ValidateA1Z26(text string, dir Direction) ValidationResult {
	if dir == DirectionEncode {
		return runeFilter(text, isLetterOrSpace)
	}
	return runeFilter(text, func(r rune) bool {
		return (r >= '0' && r <= '9') || r == '.' || r == ',' || r == ';' || unicode.IsSpace(r)
	})
}

// A1Z26Mapping returns a copy of the letter to position table.
func A1Z26Mapping() map[string]string { return alphabet.A1Z26.Mapping() }

func isLetterOrSpace(r rune) bool { return isASCIILetter(r) || unicode.IsSpace(r) }

type a1z26Codec struct{ BaseCodec }

func (c *a1z26Codec) Encode(text string, _ Params) string { return EncodeA1Z26(text) }

func (c *a1z26Codec) Decode(text string, _ Params) string { return DecodeA1Z26(text) }

func (c *a1z26Codec) Validate(text string, dir Direction) ValidationResult {
	return ValidateA1Z26(text, dir)
}

func init() {
	mustRegister(&a1z26Codec{BaseCodec{
		SchemeValue:      SchemeA1Z26,
		NameValue:        "A1Z26",
		DescriptionValue: "Letters to alphabet positions separated by dots",
	}})
}
