package cipher

import (
	"fmt"
)

// DefaultParams returns the parameter values used when a request leaves a
// field at its zero value.
func DefaultParams() Params {
	return Params{
		Shift:     3,
		Key:       "KEY",
		Rails:     3,
		Intensity: 5,
		Cover:     DefaultCover,
		Mode:      ReverseFull,
	}
}

// Request is a single transcoding call.
type Request struct {
	Scheme    Scheme    `json:"scheme" yaml:"scheme"`
	Direction Direction `json:"direction" yaml:"direction"`
	Text      string    `json:"text" yaml:"text"`
	Params    Params    `json:"params" yaml:"params"`
}

// Result is the outcome of a transcoding call. When Valid is false, Output is
// empty and Message and Suggestion describe the rejected input.
type Result struct {
	Valid      bool              `json:"valid"`
	Output     string            `json:"output,omitempty"`
	Message    string            `json:"message,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	BruteForce []BruteForceEntry `json:"brute_force,omitempty"`
}

// Engine dispatches requests to registered codecs.
type Engine struct {
	defaults Params
	rand     RandSource
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandSource sets the randomness used by nondeterministic schemes. The
// source is wrapped so the engine can be used from several goroutines.
func WithRandSource(src RandSource) Option {
	return func(e *Engine) {
		e.rand = NewLockedRand(src)
	}
}

// WithDefaults overrides the fallback parameters. Zero fields in p keep the
// built-in defaults.
func WithDefaults(p Params) Option {
	return func(e *Engine) {
		e.defaults = mergeParams(p, e.defaults)
	}
}

// NewEngine constructs an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		defaults: DefaultParams(),
		rand:     globalRand{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Defaults returns the engine's fallback parameters.
func (e *Engine) Defaults() Params {
	return e.defaults
}

// mergeParams fills zero fields of p from fallback unless p marks them
// explicit. The result carries the union of both explicit sets.
func mergeParams(p, fallback Params) Params {
	if p.Shift == 0 && !p.Explicit.Has(ParamShift) {
		p.Shift = fallback.Shift
	}
	if p.Key == "" && !p.Explicit.Has(ParamKey) {
		p.Key = fallback.Key
	}
	if p.Rails == 0 && !p.Explicit.Has(ParamRails) {
		p.Rails = fallback.Rails
	}
	if p.Intensity == 0 && !p.Explicit.Has(ParamIntensity) {
		p.Intensity = fallback.Intensity
	}
	if p.Cover == "" && !p.Explicit.Has(ParamCover) {
		p.Cover = fallback.Cover
	}
	if p.Mode == "" && !p.Explicit.Has(ParamMode) {
		p.Mode = fallback.Mode
	}
	if p.Rand == nil {
		p.Rand = fallback.Rand
	}
	p.Explicit |= fallback.Explicit
	return p
}

// Resolve validates the request's identifiers and returns the codec together
// with the effective parameters.
func (e *Engine) Resolve(req Request) (Codec, Params, error) {
	codec, ok := GetCodec(req.Scheme)
	if !ok {
		return nil, Params{}, unknownScheme(req.Scheme)
	}
	if _, err := ParseDirection(string(req.Direction)); err != nil {
		return nil, Params{}, err
	}

	params := mergeParams(req.Params, e.defaults)
	mode, err := ParseReverseMode(string(params.Mode))
	if err != nil {
		return nil, Params{}, err
	}
	params.Mode = mode
	if params.Rand == nil {
		params.Rand = e.rand
	}
	return codec, params, nil
}

// Compute validates and transcodes a request. Unknown identifiers are
// reported as errors; rejected input is reported in the Result.
func (e *Engine) Compute(req Request) (Result, error) {
	codec, params, err := e.Resolve(req)
	if err != nil {
		return Result{}, err
	}
	if req.Text == "" {
		return Result{Valid: true}, nil
	}

	if v := codec.Validate(req.Text, req.Direction); !v.Valid {
		return Result{
			Message:    InvalidInputMessage(req.Scheme, req.Direction),
			Suggestion: v.Suggestion,
		}, nil
	}

	res := Result{Valid: true}
	if req.Direction == DirectionEncode {
		res.Output = codec.Encode(req.Text, params)
	} else {
		res.Output = codec.Decode(req.Text, params)
		if req.Scheme == SchemeCaesar {
			res.BruteForce = BruteForce(req.Text)
		}
	}
	return res, nil
}

func unknownScheme(s Scheme) error {
	return fmt.Errorf("%w: %q", ErrUnknownScheme, s)
}
