package cipher

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// encodeCodePoints formats each rune's code point with format, space-joined.
func encodeCodePoints(text, format string) string {
	tokens := make([]string, 0, len(text))
	for _, r := range text {
		tokens = append(tokens, fmt.Sprintf(format, r))
	}
	return strings.Join(tokens, " ")
}

// decodeCodePoints parses whitespace separated numbers in base and turns them
// back into runes. Tokens that do not parse are dropped.
func decodeCodePoints(text string, base int) string {
	var b strings.Builder
	for _, token := range strings.Fields(text) {
		n, err := strconv.ParseUint(token, base, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			continue
		}
		b.WriteRune(rune(n))
	}
	return b.String()
}

// EncodeBinary writes each rune as an 8-bit (or wider) binary group.
func EncodeBinary(text string) string { return encodeCodePoints(text, "%08b") }

// DecodeBinary reverses EncodeBinary.
func DecodeBinary(text string) string { return decodeCodePoints(text, 2) }

// ValidateBinary accepts 0, 1 and whitespace when decoding.
func ValidateBinary(text string, dir Direction) ValidationResult {
	if dir == DirectionEncode {
		return valid()
	}
	return runeFilter(text, func(r rune) bool { return r == '0' || r == '1' || unicode.IsSpace(r) })
}

// EncodeHex writes each rune as two (or more) lower-case hex digits.
func EncodeHex(text string) string { return encodeCodePoints(text, "%02x") }

// DecodeHex reverses EncodeHex and accepts either case.
func DecodeHex(text string) string { return decodeCodePoints(text, 16) }

// ValidateHex accepts hex digits and whitespace when decoding.
func ValidateHex(text string, dir Direction) ValidationResult {
	if dir == DirectionEncode {
		return valid()
	}
	return runeFilter(text, func(r rune) bool {
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') || unicode.IsSpace(r)
	})
}

type binaryCodec struct{ BaseCodec }

func (c *binaryCodec) Encode(text string, _ Params) string { return EncodeBinary(text) }

func (c *binaryCodec) Decode(text string, _ Params) string { return DecodeBinary(text) }

func (c *binaryCodec) Validate(text string, dir Direction) ValidationResult {
	return ValidateBinary(text, dir)
}

type hexCodec struct{ BaseCodec }

func (c *hexCodec) Encode(text string, _ Params) string { return EncodeHex(text) }

func (c *hexCodec) Decode(text string, _ Params) string { return DecodeHex(text) }

func (c *hexCodec) Validate(text string, dir Direction) ValidationResult {
	return ValidateHex(text, dir)
}

func init() {
	mustRegister(&binaryCodec{BaseCodec{
		SchemeValue:      SchemeBinary,
		NameValue:        "Binary",
		DescriptionValue: "Code points as space separated binary groups",
	}})
	mustRegister(&hexCodec{BaseCodec{
		SchemeValue:      SchemeHex,
		NameValue:        "Hexadecimal",
		DescriptionValue: "Code points as space separated hex pairs",
	}})
}
