package cipher

import (
	"strings"

	"github.com/RowanDark/cipherdeck/internal/alphabet"
)

// EncodeLeet upper-cases text and applies the leet substitutions.
func EncodeLeet(text string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(text) {
		if s, ok := alphabet.Leet.EncodeRune(r); ok {
			b.WriteString(s)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DecodeLeet maps substituted glyphs back to letters. I and L share "1", so
// "1" always decodes to I.
func DecodeLeet(text string) string {
	var b strings.Builder
	for _, r := range text {
		if s, ok := alphabet.Leet.Decode(string(r)); ok {
			b.WriteString(s)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LeetMapping returns a copy of the letter to leet table.
func LeetMapping() map[string]string { return alphabet.Leet.Mapping() }

type leetCodec struct{ BaseCodec }

func (c *leetCodec) Encode(text string, _ Params) string { return EncodeLeet(text) }

func (c *leetCodec) Decode(text string, _ Params) string { return DecodeLeet(text) }

func init() {
	mustRegister(&leetCodec{BaseCodec{
		SchemeValue:      SchemeLeet,
		NameValue:        "Leet Speak",
		DescriptionValue: "Letters to look-alike digits and symbols",
		TraitsValue:      Traits{Lossy: true},
	}})
}
