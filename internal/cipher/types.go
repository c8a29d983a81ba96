package cipher

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Scheme identifies one of the supported transcoding schemes.
type Scheme string

const (
	SchemeA1Z26     Scheme = "a1z26"
	SchemeEmoji     Scheme = "emoji"
	SchemeBase64    Scheme = "base64"
	SchemeMorse     Scheme = "morse"
	SchemeBinary    Scheme = "binary"
	SchemeHex       Scheme = "hex"
	SchemeCaesar    Scheme = "caesar"
	SchemeURL       Scheme = "url"
	SchemeAtbash    Scheme = "atbash"
	SchemeVigenere  Scheme = "vigenere"
	SchemeRailFence Scheme = "railfence"
	SchemeReverse   Scheme = "reverse"
	SchemeLeet      Scheme = "leet"
	SchemeZalgo     Scheme = "zalgo"
	SchemeInvisible Scheme = "invisible"
)

// Schemes lists every scheme in display order.
func Schemes() []Scheme {
	return []Scheme{
		SchemeA1Z26, SchemeEmoji, SchemeBase64, SchemeMorse, SchemeBinary,
		SchemeHex, SchemeCaesar, SchemeURL, SchemeAtbash, SchemeVigenere,
		SchemeRailFence, SchemeReverse, SchemeLeet, SchemeZalgo, SchemeInvisible,
	}
}

// Direction selects encoding or decoding.
type Direction string

const (
	DirectionEncode Direction = "encode"
	DirectionDecode Direction = "decode"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == DirectionEncode {
		return DirectionDecode
	}
	return DirectionEncode
}

// ReverseMode selects the Reverse sub-transform.
type ReverseMode string

const (
	ReverseFull  ReverseMode = "full"
	ReverseWords ReverseMode = "words"
	ReverseOrder ReverseMode = "order"
)

var (
	ErrUnknownScheme      = errors.New("unknown scheme")
	ErrUnknownDirection   = errors.New("unknown direction")
	ErrUnknownReverseMode = errors.New("unknown reverse mode")
)

// ParseScheme resolves a scheme identifier.
func ParseScheme(name string) (Scheme, error) {
	for _, s := range Schemes() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// ParseDirection resolves "encode" or "decode".
func ParseDirection(name string) (Direction, error) {
	switch Direction(name) {
	case DirectionEncode, DirectionDecode:
		return Direction(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDirection, name)
}

// ParseReverseMode resolves a reverse sub-mode. An empty name means full.
func ParseReverseMode(name string) (ReverseMode, error) {
	switch ReverseMode(name) {
	case "":
		return ReverseFull, nil
	case ReverseFull, ReverseWords, ReverseOrder:
		return ReverseMode(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownReverseMode, name)
}

// Parameter names a scheme-specific input.
type Parameter string

const (
	ParamShift     Parameter = "shift"
	ParamKey       Parameter = "key"
	ParamRails     Parameter = "rails"
	ParamIntensity Parameter = "intensity"
	ParamCover     Parameter = "cover"
	ParamMode      Parameter = "mode"
)

var parameterOrder = []Parameter{ParamShift, ParamKey, ParamRails, ParamIntensity, ParamCover, ParamMode}

// ParamSet is a set of Parameters.
type ParamSet uint8

func parameterBit(p Parameter) ParamSet {
	for i, have := range parameterOrder {
		if have == p {
			return 1 << i
		}
	}
	return 0
}

// With returns the set extended by ps.
func (s ParamSet) With(ps ...Parameter) ParamSet {
	for _, p := range ps {
		s |= parameterBit(p)
	}
	return s
}

// Has reports whether p is in the set.
func (s ParamSet) Has(p Parameter) bool {
	bit := parameterBit(p)
	return bit != 0 && s&bit != 0
}

// AllParams is the set of every Parameter.
func AllParams() ParamSet {
	return ParamSet(0).With(parameterOrder...)
}

// Params carries the scheme-specific inputs. Each scheme reads only the
// fields listed in its Traits.
type Params struct {
	Shift     int         `json:"shift,omitempty" yaml:"shift,omitempty"`
	Key       string      `json:"key,omitempty" yaml:"key,omitempty"`
	Rails     int         `json:"rails,omitempty" yaml:"rails,omitempty"`
	Intensity int         `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	Cover     string      `json:"cover,omitempty" yaml:"cover,omitempty"`
	Mode      ReverseMode `json:"mode,omitempty" yaml:"mode,omitempty"`

	// Explicit marks fields whose zero value is meant literally, such as a
	// shift of 0 or an empty key. Unmarked zero fields take the defaults.
	Explicit ParamSet `json:"-" yaml:"-"`

	// Rand feeds Zalgo generation. Nil means the engine's source.
	Rand RandSource `json:"-" yaml:"-"`
}

type plainParams Params

// UnmarshalYAML marks every parameter present in the mapping as explicit.
func (p *Params) UnmarshalYAML(node *yaml.Node) error {
	if err := node.Decode((*plainParams)(p)); err != nil {
		return err
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		p.Explicit = p.Explicit.With(Parameter(node.Content[i].Value))
	}
	return nil
}

// UnmarshalJSON marks every parameter present in the object as explicit.
func (p *Params) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*plainParams)(p)); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for name := range fields {
		p.Explicit = p.Explicit.With(Parameter(name))
	}
	return nil
}

// Traits is the fixed metadata of a scheme.
type Traits struct {
	// Involution is set when encode and decode are the same transform.
	Involution bool
	// Lossy is set when decode(encode(x)) may differ from x.
	Lossy bool
	// Nondeterministic is set when repeated encodes may differ.
	Nondeterministic bool
	// Parameters lists the Params fields the scheme reads.
	Parameters []Parameter
}

// ValidationResult reports whether input is acceptable for a scheme and
// direction. Suggestion holds the input with inadmissible characters removed.
type ValidationResult struct {
	Valid      bool   `json:"valid"`
	Suggestion string `json:"suggestion,omitempty"`
}

func valid() ValidationResult { return ValidationResult{Valid: true} }

// BruteForceEntry is one candidate decoding of a Caesar ciphertext.
type BruteForceEntry struct {
	Shift  int    `json:"shift"`
	Result string `json:"result"`
}

// Codec is a single transcoding scheme.
type Codec interface {
	// Scheme returns the identifier of this codec.
	Scheme() Scheme

	// Name returns the display name.
	Name() string

	// Description returns a short human-readable summary.
	Description() string

	// Traits returns the fixed scheme metadata.
	Traits() Traits

	// Encode transforms plain text.
	Encode(text string, params Params) string

	// Decode reverses Encode as far as the scheme allows.
	Decode(text string, params Params) string

	// Validate checks raw input for the given direction.
	Validate(text string, dir Direction) ValidationResult
}

// BaseCodec provides the metadata half of a Codec and accepts any input.
type BaseCodec struct {
	SchemeValue      Scheme
	NameValue        string
	DescriptionValue string
	TraitsValue      Traits
}

func (b *BaseCodec) Scheme() Scheme { return b.SchemeValue }

func (b *BaseCodec) Name() string { return b.NameValue }

func (b *BaseCodec) Description() string { return b.DescriptionValue }

func (b *BaseCodec) Traits() Traits {
	t := b.TraitsValue
	t.Parameters = append([]Parameter(nil), b.TraitsValue.Parameters...)
	return t
}

func (b *BaseCodec) Validate(string, Direction) ValidationResult { return valid() }

// Reads reports whether the scheme consumes the given parameter.
func (t Traits) Reads(p Parameter) bool {
	for _, have := range t.Parameters {
		if have == p {
			return true
		}
	}
	return false
}
