package cipher

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// InvalidURLEncoding is returned by DecodeURL for malformed escapes.
const InvalidURLEncoding = "Invalid URL encoded string"

const upperHex = "0123456789ABCDEF"

func isURLUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// EncodeURL percent-escapes every UTF-8 byte outside the unreserved set.
// Spaces become %20.
func EncodeURL(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if isURLUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

// DecodeURL unescapes %XX sequences. A plus sign stays a plus sign.
func DecodeURL(text string) string {
	if text == "" {
		return ""
	}
	decoded, err := url.PathUnescape(text)
	if err != nil || !utf8.ValidString(decoded) {
		return InvalidURLEncoding
	}
	return decoded
}

type urlCodec struct{ BaseCodec }

func (c *urlCodec) Encode(text string, _ Params) string { return EncodeURL(text) }

func (c *urlCodec) Decode(text string, _ Params) string { return DecodeURL(text) }

func init() {
	mustRegister(&urlCodec{BaseCodec{
		SchemeValue:      SchemeURL,
		NameValue:        "URL Encoding",
		DescriptionValue: "Percent-encoding of reserved and non-ASCII bytes",
	}})
}
