package cipher

import (
	"slices"
	"strings"
)

// ReverseText reverses the runes of text.
func ReverseText(text string) string {
	r := []rune(text)
	slices.Reverse(r)
	return string(r)
}

// ReverseEachWord reverses each space separated word in place.
func ReverseEachWord(text string) string {
	words := strings.Split(text, " ")
	for i, w := range words {
		words[i] = ReverseText(w)
	}
	return strings.Join(words, " ")
}

// ReverseWordOrder reverses the order of space separated words.
func ReverseWordOrder(text string) string {
	words := strings.Split(text, " ")
	slices.Reverse(words)
	return strings.Join(words, " ")
}

// Reverse applies the transform selected by mode. An empty mode means full.
func Reverse(text string, mode ReverseMode) string {
	switch mode {
	case ReverseWords:
		return ReverseEachWord(text)
	case ReverseOrder:
		return ReverseWordOrder(text)
	default:
		return ReverseText(text)
	}
}

type reverseCodec struct{ BaseCodec }

func (c *reverseCodec) Encode(text string, p Params) string { return Reverse(text, p.Mode) }

func (c *reverseCodec) Decode(text string, p Params) string { return Reverse(text, p.Mode) }

func init() {
	mustRegister(&reverseCodec{BaseCodec{
		SchemeValue:      SchemeReverse,
		NameValue:        "Reverse Text",
		DescriptionValue: "Reverse characters, each word, or word order",
		TraitsValue: Traits{
			Involution: true,
			Parameters: []Parameter{ParamMode},
		},
	}})
}
