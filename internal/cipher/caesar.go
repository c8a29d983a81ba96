package cipher

import "strings"

// EncodeCaesar rotates every ASCII letter forward by shift. Any integer is
// accepted and reduced modulo 26.
func EncodeCaesar(text string, shift int) string {
	shift = mod(shift, 26)
	if shift == 0 {
		return text
	}
	return strings.Map(func(r rune) rune { return shiftLetter(r, shift) }, text)
}

// DecodeCaesar undoes EncodeCaesar with the same shift.
func DecodeCaesar(text string, shift int) string {
	return EncodeCaesar(text, -mod(shift, 26))
}

// BruteForce decodes text with every shift from 1 to 25, in ascending order.
func BruteForce(text string) []BruteForceEntry {
	entries := make([]BruteForceEntry, 0, 25)
	for shift := 1; shift <= 25; shift++ {
		entries = append(entries, BruteForceEntry{Shift: shift, Result: DecodeCaesar(text, shift)})
	}
	return entries
}

type caesarCodec struct{ BaseCodec }

func (c *caesarCodec) Encode(text string, p Params) string { return EncodeCaesar(text, p.Shift) }

func (c *caesarCodec) Decode(text string, p Params) string { return DecodeCaesar(text, p.Shift) }

func init() {
	mustRegister(&caesarCodec{BaseCodec{
		SchemeValue:      SchemeCaesar,
		NameValue:        "Caesar Cipher",
		DescriptionValue: "Rotate letters by a fixed shift",
		TraitsValue:      Traits{Parameters: []Parameter{ParamShift}},
	}})
}
