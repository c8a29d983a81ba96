package cipher

import (
	"encoding/base64"
	"regexp"
	"unicode/utf8"
)

// InvalidBase64 is returned by DecodeBase64 for malformed input.
const InvalidBase64 = "Invalid Base64 string"

var base64Input = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

// EncodeBase64 encodes the UTF-8 bytes of text with the padded standard
// alphabet.
func EncodeBase64(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// DecodeBase64 accepts padded or unpadded input. Payloads that are not valid
// UTF-8 are rejected like malformed input.
func DecodeBase64(text string) string {
	if text == "" {
		return ""
	}
	decoded, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(text)
		if err != nil {
			return InvalidBase64
		}
	}
	if !utf8.Valid(decoded) {
		return InvalidBase64
	}
	return string(decoded)
}

// ValidateBase64 checks decoder input against the Base64 alphabet.
func ValidateBase64(text string, dir Direction) ValidationResult {
	if dir == DirectionEncode || text == "" || base64Input.MatchString(text) {
		return valid()
	}
	return ValidationResult{Suggestion: keepRunes(text, func(r rune) bool {
		return isASCIILetter(r) || (r >= '0' && r <= '9') || r == '+' || r == '/' || r == '='
	})}
}

type base64Codec struct{ BaseCodec }

func (c *base64Codec) Encode(text string, _ Params) string { return EncodeBase64(text) }

func (c *base64Codec) Decode(text string, _ Params) string { return DecodeBase64(text) }

func (c *base64Codec) Validate(text string, dir Direction) ValidationResult {
	return ValidateBase64(text, dir)
}

func init() {
	mustRegister(&base64Codec{BaseCodec{
		SchemeValue:      SchemeBase64,
		NameValue:        "Base64",
		DescriptionValue: "Standard padded Base64 over UTF-8",
	}})
}
