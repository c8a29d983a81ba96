// Package alphabet holds the fixed symbol tables shared by the substitution
// ciphers. Tables are built once during package initialisation and are never
// mutated afterwards; accessors hand out copies.
package alphabet

import (
	"fmt"
	"strconv"
)

// Table is an immutable bidirectional mapping between plain symbols (usually
// upper-case letters) and their cipher representation.
type Table struct {
	name    string
	keys    []string
	forward map[string]string
	inverse map[string]string
}

// newTable builds a Table from alternating key/value pairs. The inverse is
// derived from the forward pairs; a value shared by two keys resolves to the
// first key listed.
func newTable(name string, pairs ...string) *Table {
	if len(pairs)%2 != 0 {
		panic(fmt.Sprintf("alphabet %s: odd number of pair elements", name))
	}
	t := &Table{
		name:    name,
		keys:    make([]string, 0, len(pairs)/2),
		forward: make(map[string]string, len(pairs)/2),
		inverse: make(map[string]string, len(pairs)/2),
	}
	for i := 0; i < len(pairs); i += 2 {
		key, value := pairs[i], pairs[i+1]
		if _, dup := t.forward[key]; dup {
			panic(fmt.Sprintf("alphabet %s: duplicate key %q", name, key))
		}
		t.keys = append(t.keys, key)
		t.forward[key] = value
		if _, taken := t.inverse[value]; !taken {
			t.inverse[value] = key
		}
	}
	return t
}

// withInverse replaces the derived inverse with an explicit one.
func (t *Table) withInverse(pairs ...string) *Table {
	if len(pairs)%2 != 0 {
		panic(fmt.Sprintf("alphabet %s: odd number of inverse elements", t.name))
	}
	t.inverse = make(map[string]string, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		t.inverse[pairs[i]] = pairs[i+1]
	}
	return t
}

// Name returns the table identifier.
func (t *Table) Name() string { return t.name }

// Len returns the number of forward entries.
func (t *Table) Len() int { return len(t.keys) }

// Encode looks up the cipher symbol for key.
func (t *Table) Encode(key string) (string, bool) {
	v, ok := t.forward[key]
	return v, ok
}

// EncodeRune is Encode for a single rune key.
func (t *Table) EncodeRune(r rune) (string, bool) {
	v, ok := t.forward[string(r)]
	return v, ok
}

// Decode looks up the plain symbol for a cipher symbol.
func (t *Table) Decode(symbol string) (string, bool) {
	v, ok := t.inverse[symbol]
	return v, ok
}

// Keys returns the forward keys in table order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Mapping returns a copy of the forward mapping for display purposes.
func (t *Table) Mapping() map[string]string {
	out := make(map[string]string, len(t.forward))
	for k, v := range t.forward {
		out[k] = v
	}
	return out
}

// InverseMapping returns a copy of the inverse mapping.
func (t *Table) InverseMapping() map[string]string {
	out := make(map[string]string, len(t.inverse))
	for k, v := range t.inverse {
		out[k] = v
	}
	return out
}

func letterPositions() []string {
	pairs := make([]string, 0, 52)
	for r := 'A'; r <= 'Z'; r++ {
		pairs = append(pairs, string(r), strconv.Itoa(int(r-'A')+1))
	}
	return pairs
}

var (
	// A1Z26 maps each upper-case letter to its 1-based alphabet position.
	A1Z26 = newTable("a1z26", letterPositions()...)

	// Emoji is the letter to emoji bijection.
	Emoji = newTable("emoji",
		"A", "🍎", "B", "🐝", "C", "🥥", "D", "🐬", "E", "🥚", "F", "🐸", "G", "🍇",
		"H", "🏠", "I", "🍦", "J", "🃏", "K", "🔑", "L", "🦁", "M", "🌝", "N", "🐢",
		"O", "🐙", "P", "🦚", "Q", "👑", "R", "🤖", "S", "🐍", "T", "🌴", "U", "☂",
		"V", "🎻", "W", "🌊", "X", "❌", "Y", "🛳", "Z", "🦓",
	)

	// Morse covers letters, digits and the word gap.
	Morse = newTable("morse",
		"A", ".-", "B", "-...", "C", "-.-.", "D", "-..", "E", ".", "F", "..-.",
		"G", "--.", "H", "....", "I", "..", "J", ".---", "K", "-.-", "L", ".-..",
		"M", "--", "N", "-.", "O", "---", "P", ".--.", "Q", "--.-", "R", ".-.",
		"S", "...", "T", "-", "U", "..-", "V", "...-", "W", ".--", "X", "-..-",
		"Y", "-.--", "Z", "--..", "0", "-----", "1", ".----", "2", "..---",
		"3", "...--", "4", "....-", "5", ".....", "6", "-....", "7", "--...",
		"8", "---..", "9", "----.", " ", "/",
	)

	// Leet substitutes a subset of letters; the rest map to themselves. The
	// inverse is explicit and only covers substituted glyphs, so "1" always
	// reads back as "I" even though "L" also encodes to it.
	Leet = newTable("leet",
		"A", "4", "B", "8", "C", "(", "D", "D", "E", "3", "F", "F", "G", "6",
		"H", "#", "I", "1", "J", "J", "K", "K", "L", "1", "M", "M", "N", "N",
		"O", "0", "P", "P", "Q", "Q", "R", "R", "S", "5", "T", "7", "U", "U",
		"V", "V", "W", "W", "X", "X", "Y", "Y", "Z", "2",
	).withInverse(
		"4", "A", "8", "B", "(", "C", "3", "E", "6", "G", "#", "H",
		"1", "I", "0", "O", "5", "S", "7", "T", "2", "Z",
	)

	// ZeroWidth maps base-4 digits to the reserved invisible code points.
	ZeroWidth = newTable("zero-width",
		"0", "\u200b", // zero width space
		"1", "\u200c", // zero width non-joiner
		"2", "\u200d", // zero width joiner
		"3", "\u2060", // word joiner
	)
)
