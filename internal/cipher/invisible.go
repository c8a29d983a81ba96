package cipher

import (
	"strings"

	"github.com/RowanDark/cipherdeck/internal/alphabet"
)

const (
	// NoHiddenMessage is returned when the input carries no reserved runes.
	NoHiddenMessage = "No hidden message found"
	// UndecodableHiddenMessage is returned when reserved runes are present
	// but yield no printable bytes.
	UndecodableHiddenMessage = "Could not decode hidden message"

	// DefaultCover is the carrier text used when none is configured.
	DefaultCover = "This text contains a hidden message"
)

var zeroWidthDigits = [4]string{"0", "1", "2", "3"}

func zeroWidthValue(r rune) (byte, bool) {
	d, ok := alphabet.ZeroWidth.Decode(string(r))
	if !ok {
		return 0, false
	}
	return d[0] - '0', true
}

func isZeroWidth(r rune) bool {
	_, ok := zeroWidthValue(r)
	return ok
}

// EncodeInvisible hides the UTF-8 bytes of text as zero-width runes, two bits
// per rune, spliced into the middle of cover. Empty text returns cover as is.
func EncodeInvisible(text, cover string) string {
	if text == "" {
		return cover
	}

	var payload strings.Builder
	for i := 0; i < len(text); i++ {
		c := text[i]
		for shift := 6; shift >= 0; shift -= 2 {
			sym, _ := alphabet.ZeroWidth.Encode(zeroWidthDigits[(c>>shift)&0x3])
			payload.WriteString(sym)
		}
	}

	coverRunes := []rune(cover)
	mid := len(coverRunes) / 2
	return string(coverRunes[:mid]) + payload.String() + string(coverRunes[mid:])
}

// DecodeInvisible recovers a message hidden by EncodeInvisible. Only bytes in
// 1..126 are kept and a trailing partial group is ignored.
func DecodeInvisible(text string) string {
	if text == "" {
		return ""
	}

	var (
		found bool
		cur   byte
		n     int
		out   []byte
	)
	for _, r := range text {
		v, ok := zeroWidthValue(r)
		if !ok {
			continue
		}
		found = true
		cur = cur<<2 | v
		n++
		if n == 4 {
			if cur > 0 && cur < 127 {
				out = append(out, cur)
			}
			cur, n = 0, 0
		}
	}

	switch {
	case !found:
		return NoHiddenMessage
	case len(out) == 0:
		return UndecodableHiddenMessage
	}
	return string(out)
}

// HasHiddenPayload reports whether text contains any reserved zero-width rune.
func HasHiddenPayload(text string) bool {
	return strings.IndexFunc(text, isZeroWidth) >= 0
}

// ExtractCover returns text with every reserved zero-width rune removed.
func ExtractCover(text string) string {
	return keepRunes(text, func(r rune) bool { return !isZeroWidth(r) })
}

type invisibleCodec struct{ BaseCodec }

func (c *invisibleCodec) Encode(text string, p Params) string {
	return EncodeInvisible(text, p.Cover)
}

func (c *invisibleCodec) Decode(text string, _ Params) string { return DecodeInvisible(text) }

func init() {
	mustRegister(&invisibleCodec{BaseCodec{
		SchemeValue:      SchemeInvisible,
		NameValue:        "Invisible Ink",
		DescriptionValue: "Hide a message as zero-width characters inside cover text",
		TraitsValue:      Traits{Parameters: []Parameter{ParamCover}},
	}})
}
