package cipher

// railPattern returns the rail index of each of n positions as the pointer
// bounces between rail 0 and rail rails-1.
func railPattern(n, rails int) []int {
	pattern := make([]int, n)
	rail, step := 0, 1
	for i := range pattern {
		pattern[i] = rail
		rail += step
		if rail == 0 || rail == rails-1 {
			step = -step
		}
	}
	return pattern
}

// EncodeRailFence strips whitespace and reads the zigzag off rail by rail.
// Fewer than two rails leaves text untouched. Rails beyond the text length
// never fill, so the count is capped at the number of runes.
func EncodeRailFence(text string, rails int) string {
	if text == "" || rails < 2 {
		return text
	}
	clean := []rune(stripSpace(text))
	if rails = min(rails, len(clean)); rails < 2 {
		return string(clean)
	}
	fence := make([][]rune, rails)
	for i, rail := range railPattern(len(clean), rails) {
		fence[rail] = append(fence[rail], clean[i])
	}
	out := make([]rune, 0, len(clean))
	for _, row := range fence {
		out = append(out, row...)
	}
	return string(out)
}

// DecodeRailFence reverses EncodeRailFence. Whitespace removed on encode is
// not restored.
func DecodeRailFence(text string, rails int) string {
	if text == "" || rails < 2 {
		return text
	}
	clean := []rune(stripSpace(text))
	if rails = min(rails, len(clean)); rails < 2 {
		return string(clean)
	}
	pattern := railPattern(len(clean), rails)

	counts := make([]int, rails)
	for _, rail := range pattern {
		counts[rail]++
	}

	fence := make([][]rune, rails)
	offset := 0
	for rail, n := range counts {
		fence[rail] = clean[offset : offset+n]
		offset += n
	}

	out := make([]rune, len(clean))
	next := make([]int, rails)
	for i, rail := range pattern {
		out[i] = fence[rail][next[rail]]
		next[rail]++
	}
	return string(out)
}

type railFenceCodec struct{ BaseCodec }

func (c *railFenceCodec) Encode(text string, p Params) string { return EncodeRailFence(text, p.Rails) }

func (c *railFenceCodec) Decode(text string, p Params) string { return DecodeRailFence(text, p.Rails) }

func init() {
	mustRegister(&railFenceCodec{BaseCodec{
		SchemeValue:      SchemeRailFence,
		NameValue:        "Rail Fence",
		DescriptionValue: "Zigzag transposition across a number of rails",
		TraitsValue: Traits{
			Lossy:      true,
			Parameters: []Parameter{ParamRails},
		},
	}})
}
