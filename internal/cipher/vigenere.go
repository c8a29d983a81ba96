package cipher

import "strings"

// vigenereShifts reduces a key to per-letter shifts. Non-letters in the key
// are ignored.
func vigenereShifts(key string) []int {
	shifts := make([]int, 0, len(key))
	for _, r := range strings.ToUpper(key) {
		if isASCIIUpper(r) {
			shifts = append(shifts, int(r-'A'))
		}
	}
	return shifts
}

func vigenere(text, key string, sign int) string {
	shifts := vigenereShifts(key)
	if len(shifts) == 0 {
		return text
	}
	i := 0
	return strings.Map(func(r rune) rune {
		if !isASCIILetter(r) {
			return r
		}
		out := shiftLetter(r, sign*shifts[i%len(shifts)])
		i++
		return out
	}, text)
}

// EncodeVigenere shifts each letter by the matching key letter. The key only
// advances on letters, and a key without letters leaves text unchanged.
func EncodeVigenere(text, key string) string { return vigenere(text, key, 1) }

// DecodeVigenere reverses EncodeVigenere.
func DecodeVigenere(text, key string) string { return vigenere(text, key, -1) }

type vigenereCodec struct{ BaseCodec }

func (c *vigenereCodec) Encode(text string, p Params) string { return EncodeVigenere(text, p.Key) }

func (c *vigenereCodec) Decode(text string, p Params) string { return DecodeVigenere(text, p.Key) }

func init() {
	mustRegister(&vigenereCodec{BaseCodec{
		SchemeValue:      SchemeVigenere,
		NameValue:        "Vigenère Cipher",
		DescriptionValue: "Polyalphabetic shift driven by a repeating key",
		TraitsValue:      Traits{Parameters: []Parameter{ParamKey}},
	}})
}
