package cipher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyPipeline = errors.New("pipeline has no steps")
	ErrNotReversible = errors.New("pipeline is not reversible")
	ErrRejectedInput = errors.New("input rejected")
	ErrMalformedStep = errors.New("malformed step")
)

// Step is one transcoding stage of a Pipeline.
type Step struct {
	Scheme    Scheme    `json:"scheme" yaml:"scheme"`
	Direction Direction `json:"direction" yaml:"direction"`
	Params    Params    `json:"params,omitempty" yaml:"params,omitempty"`
}

func (s Step) String() string {
	return string(s.Scheme) + ":" + string(s.Direction)
}

// Pipeline represents a chain of steps applied in order.
type Pipeline struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Steps []Step `json:"steps" yaml:"steps"`
}

// ParseStep reads a "scheme:direction" step. A bare scheme means encode.
func ParseStep(spec string) (Step, error) {
	name, dir, hasDir := strings.Cut(strings.TrimSpace(spec), ":")
	scheme, err := ParseScheme(name)
	if err != nil {
		return Step{}, fmt.Errorf("%w %q: %w", ErrMalformedStep, spec, err)
	}
	step := Step{Scheme: scheme, Direction: DirectionEncode}
	if hasDir {
		d, err := ParseDirection(dir)
		if err != nil {
			return Step{}, fmt.Errorf("%w %q: %w", ErrMalformedStep, spec, err)
		}
		step.Direction = d
	}
	return step, nil
}

// ParsePipeline decodes a YAML (or JSON) pipeline definition and checks that
// every step names a known scheme and direction.
func ParsePipeline(data []byte) (*Pipeline, error) {
	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse pipeline: %w", err)
	}
	if err := p.Check(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Check verifies the step identifiers without running anything.
func (p *Pipeline) Check() error {
	if len(p.Steps) == 0 {
		return ErrEmptyPipeline
	}
	for i, step := range p.Steps {
		if _, ok := GetCodec(step.Scheme); !ok {
			return fmt.Errorf("step %d: %w", i, unknownScheme(step.Scheme))
		}
		if _, err := ParseDirection(string(step.Direction)); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

// Execute runs the pipeline on text through engine. A step whose input is
// rejected stops the run with ErrRejectedInput.
func (p *Pipeline) Execute(ctx context.Context, engine *Engine, text string) (string, error) {
	if len(p.Steps) == 0 {
		return "", ErrEmptyPipeline
	}

	result := text
	for i, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		res, err := engine.Compute(Request{
			Scheme:    step.Scheme,
			Direction: step.Direction,
			Text:      result,
			Params:    step.Params,
		})
		if err != nil {
			return "", fmt.Errorf("step %d (%s): %w", i, step, err)
		}
		if !res.Valid {
			return "", fmt.Errorf("step %d (%s): %w: %s", i, step, ErrRejectedInput, res.Message)
		}
		result = res.Output
	}

	return result, nil
}

// Reverse creates the inverse pipeline: steps in reverse order with each
// direction flipped. It fails if any step cannot be undone.
func (p *Pipeline) Reverse() (*Pipeline, error) {
	reversed := &Pipeline{
		Name:  p.Name,
		Steps: make([]Step, len(p.Steps)),
	}

	for i, step := range p.Steps {
		codec, ok := GetCodec(step.Scheme)
		if !ok {
			return nil, unknownScheme(step.Scheme)
		}
		if !stepReversible(codec, step.Direction) {
			return nil, fmt.Errorf("%w: step %d (%s)", ErrNotReversible, i, step)
		}

		reversed.Steps[len(p.Steps)-1-i] = Step{
			Scheme:    step.Scheme,
			Direction: step.Direction.Flip(),
			Params:    step.Params,
		}
	}

	return reversed, nil
}

// stepReversible reports whether a step's output can be transformed back
// into its input.
func stepReversible(c Codec, dir Direction) bool {
	traits := c.Traits()
	if traits.Lossy {
		return false
	}
	if dir == DirectionDecode {
		switch c.Scheme() {
		case SchemeZalgo, SchemeInvisible:
			// the stripped marks and the cover text cannot be recovered
			return false
		}
	}
	return true
}
