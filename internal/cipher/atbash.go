package cipher

import "strings"

// Atbash mirrors each ASCII letter within its case range (A<->Z, b<->y).
// Applying it twice returns the input.
func Atbash(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case isASCIIUpper(r):
			return 'Z' - (r - 'A')
		case isASCIILower(r):
			return 'z' - (r - 'a')
		}
		return r
	}, text)
}

type atbashCodec struct{ BaseCodec }

func (c *atbashCodec) Encode(text string, _ Params) string { return Atbash(text) }

func (c *atbashCodec) Decode(text string, _ Params) string { return Atbash(text) }

func init() {
	mustRegister(&atbashCodec{BaseCodec{
		SchemeValue:      SchemeAtbash,
		NameValue:        "Atbash",
		DescriptionValue: "Mirror substitution, A becomes Z",
		TraitsValue:      Traits{Involution: true},
	}})
}
