package cipher

import (
	"strings"
	"unicode"

	"github.com/RowanDark/cipherdeck/internal/alphabet"
)

// EncodeMorse converts letters and digits to Morse tokens separated by single
// spaces. A space becomes "/" and unmapped runes are kept as their own token.
func EncodeMorse(text string) string {
	tokens := make([]string, 0, len(text))
	for _, r := range strings.ToUpper(text) {
		if code, ok := alphabet.Morse.EncodeRune(r); ok {
			tokens = append(tokens, code)
			continue
		}
		tokens = append(tokens, string(r))
	}
	return strings.Join(tokens, " ")
}

// DecodeMorse splits on single spaces and maps each token back. Unknown
// tokens, including the empty token between doubled spaces, pass through.
func DecodeMorse(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	for _, token := range strings.Split(text, " ") {
		if plain, ok := alphabet.Morse.Decode(token); ok {
			b.WriteString(plain)
			continue
		}
		b.WriteString(token)
	}
	return b.String()
}

// ValidateMorse accepts dots, dashes, slashes and whitespace when decoding.
func ValidateMorse(text string, dir Direction) ValidationResult {
	if dir == DirectionEncode {
		return valid()
	}
	return graphemeFilter(text, func(cluster string) bool {
		for _, r := range cluster {
			if r != '.' && r != '-' && r != '/' && !unicode.IsSpace(r) {
				return false
			}
		}
		return true
	})
}

// MorseMapping returns a copy of the Morse table.
func MorseMapping() map[string]string { return alphabet.Morse.Mapping() }

type morseCodec struct{ BaseCodec }

func (c *morseCodec) Encode(text string, _ Params) string { return EncodeMorse(text) }

func (c *morseCodec) Decode(text string, _ Params) string { return DecodeMorse(text) }

func (c *morseCodec) Validate(text string, dir Direction) ValidationResult {
	return ValidateMorse(text, dir)
}

func init() {
	mustRegister(&morseCodec{BaseCodec{
		SchemeValue:      SchemeMorse,
		NameValue:        "Morse Code",
		DescriptionValue: "International Morse code with / as the word gap",
	}})
}
