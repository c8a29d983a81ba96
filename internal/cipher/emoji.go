package cipher

import (
	"strings"

	"github.com/RowanDark/cipherdeck/internal/alphabet"
)

const emojiPresentation = "\ufe0f"

// EncodeEmoji substitutes every letter with its emoji.
func EncodeEmoji(text string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(text) {
		if e, ok := alphabet.Emoji.EncodeRune(r); ok {
			b.WriteString(e)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DecodeEmoji maps emoji back to letters one grapheme cluster at a time, so
// multi code point emoji are matched whole. Unknown clusters pass through.
func DecodeEmoji(text string) string {
	return mapGraphemes(text, func(cluster string) string {
		if letter, ok := lookupEmoji(cluster); ok {
			return letter
		}
		return cluster
	})
}

func lookupEmoji(cluster string) (string, bool) {
	if letter, ok := alphabet.Emoji.Decode(cluster); ok {
		return letter, true
	}
	if trimmed, found := strings.CutSuffix(cluster, emojiPresentation); found {
		return alphabet.Emoji.Decode(trimmed)
	}
	return "", false
}

// ValidateEmoji accepts letters and whitespace for encoding, and mapped
// emoji or spaces for decoding.
func ValidateEmoji(text string, dir Direction) ValidationResult {
	if dir == DirectionEncode {
		return runeFilter(text, isLetterOrSpace)
	}
	return graphemeFilter(text, func(cluster string) bool {
		if cluster == " " {
			return true
		}
		_, ok := lookupEmoji(cluster)
		return ok
	})
}

// EmojiMapping returns a copy of the letter to emoji table.
func EmojiMapping() map[string]string { return alphabet.Emoji.Mapping() }

type emojiCodec struct{ BaseCodec }

func (c *emojiCodec) Encode(text string, _ Params) string { return EncodeEmoji(text) }

func (c *emojiCodec) Decode(text string, _ Params) string { return DecodeEmoji(text) }

func (c *emojiCodec) Validate(text string, dir Direction) ValidationResult {
	return ValidateEmoji(text, dir)
}

func init() {
	mustRegister(&emojiCodec{BaseCodec{
		SchemeValue:      SchemeEmoji,
		NameValue:        "Emoji",
		DescriptionValue: "Letters to a fixed set of emoji",
	}})
}

