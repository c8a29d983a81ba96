package cipher

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	MinZalgoIntensity = 1
	MaxZalgoIntensity = 10
)

// Mark pools are disjoint and all lie inside the combining diacritical marks
// block, which CleanZalgo removes in full.
var (
	zalgoUp = []rune{
		'\u030d', '\u030e', '\u0304', '\u0305', '\u033f', '\u0311', '\u0306', '\u0310',
		'\u0352', '\u0357', '\u0351', '\u0307', '\u0308', '\u030a', '\u0342', '\u0343',
		'\u0344', '\u034a', '\u034b', '\u034c', '\u0303', '\u0302', '\u030c', '\u0350',
		'\u0300', '\u0301', '\u030b', '\u030f', '\u0312', '\u0313', '\u0314', '\u033d',
		'\u0309', '\u0363', '\u0364', '\u0365', '\u0366', '\u0367', '\u0368', '\u0369',
		'\u036a', '\u036b', '\u036c', '\u036d', '\u036e', '\u036f', '\u033e', '\u035b',
	}
	zalgoDown = []rune{
		'\u0316', '\u0317', '\u0318', '\u0319', '\u031c', '\u031d', '\u031e', '\u031f',
		'\u0320', '\u0324', '\u0325', '\u0326', '\u0329', '\u032a', '\u032b', '\u032c',
		'\u032d', '\u032e', '\u032f', '\u0330', '\u0331', '\u0332', '\u0333', '\u0339',
		'\u033a', '\u033b', '\u033c', '\u0345', '\u0347', '\u0348', '\u0349', '\u034d',
		'\u034e', '\u0353', '\u0354', '\u0355', '\u0356', '\u0359', '\u035a', '\u0323',
	}
	zalgoMiddle = []rune{
		'\u0315', '\u031b', '\u0340', '\u0341', '\u0358', '\u0321', '\u0322', '\u0327',
		'\u0328', '\u0334', '\u0335', '\u0336', '\u034f', '\u035c', '\u035d', '\u035e',
		'\u035f', '\u0360', '\u0362', '\u0338', '\u0337', '\u0361',
	}
)

// combiningMarks is the U+0300..U+036F block.
var combiningMarks = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// pool of decompose-then-strip chains
var cleanPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFD, runes.Remove(runes.In(combiningMarks)))
	},
}

// ClampIntensity limits n to the supported intensity range.
func ClampIntensity(n int) int {
	return max(MinZalgoIntensity, min(MaxZalgoIntensity, n))
}

// EncodeZalgo stacks up to intensity-1 random combining marks on every rune
// except spaces. A nil rng uses the shared process source.
func EncodeZalgo(text string, intensity int, rng RandSource) string {
	if rng == nil {
		rng = globalRand{}
	}
	intensity = ClampIntensity(intensity)

	var b strings.Builder
	b.Grow(len(text) * 2)
	for _, r := range text {
		b.WriteRune(r)
		if r == ' ' {
			continue
		}
		for n := rng.IntN(intensity); n > 0; n-- {
			var pool []rune
			switch p := rng.Float64(); {
			case p < 0.33:
				pool = zalgoUp
			case p < 0.66:
				pool = zalgoDown
			default:
				pool = zalgoMiddle
			}
			b.WriteRune(pool[rng.IntN(len(pool))])
		}
	}
	return b.String()
}

// CleanZalgo decomposes text and strips every combining diacritical mark.
func CleanZalgo(text string) string {
	if text == "" {
		return ""
	}
	tr := cleanPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, text)
	tr.Reset()
	cleanPool.Put(tr)
	if err != nil {
		return text
	}
	return out
}

// CountCombiningMarks reports how many runes of text fall in the combining
// diacritical marks block.
func CountCombiningMarks(text string) int {
	n := 0
	for _, r := range text {
		if unicode.Is(combiningMarks, r) {
			n++
		}
	}
	return n
}

type zalgoCodec struct{ BaseCodec }

func (c *zalgoCodec) Encode(text string, p Params) string {
	return EncodeZalgo(text, p.Intensity, p.Rand)
}

func (c *zalgoCodec) Decode(text string, _ Params) string { return CleanZalgo(text) }

func init() {
	mustRegister(&zalgoCodec{BaseCodec{
		SchemeValue:      SchemeZalgo,
		NameValue:        "Zalgo Text",
		DescriptionValue: "Random stacked combining marks; decode strips them",
		TraitsValue: Traits{
			Nondeterministic: true,
			Parameters:       []Parameter{ParamIntensity},
		},
	}})
}
