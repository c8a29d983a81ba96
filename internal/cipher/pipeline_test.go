package cipher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineExecution(t *testing.T) {
	tests := []struct {
		name     string
		steps    []Step
		input    string
		expected string
	}{
		{
			name:     "single step",
			steps:    []Step{{Scheme: SchemeBase64, Direction: DirectionEncode}},
			input:    "hello",
			expected: "aGVsbG8=",
		},
		{
			name: "double encoding",
			steps: []Step{
				{Scheme: SchemeBase64, Direction: DirectionEncode},
				{Scheme: SchemeBase64, Direction: DirectionEncode},
			},
			input:    "test",
			expected: "ZEdWemRBPT0=",
		},
		{
			name: "encode then decode",
			steps: []Step{
				{Scheme: SchemeURL, Direction: DirectionEncode},
				{Scheme: SchemeURL, Direction: DirectionDecode},
			},
			input:    "hello world",
			expected: "hello world",
		},
		{
			name: "per step params",
			steps: []Step{
				{Scheme: SchemeCaesar, Direction: DirectionEncode, Params: Params{Shift: 1}},
				{Scheme: SchemeA1Z26, Direction: DirectionEncode},
			},
			input:    "AB",
			expected: "2.3",
		},
	}

	ctx := context.Background()
	engine := NewEngine()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pipeline{Steps: tt.steps}
			got, err := p.Execute(ctx, engine, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPipelineReverse(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine()

	p := &Pipeline{Steps: []Step{
		{Scheme: SchemeVigenere, Direction: DirectionEncode, Params: Params{Key: "LEMON"}},
		{Scheme: SchemeAtbash, Direction: DirectionEncode},
		{Scheme: SchemeMorse, Direction: DirectionEncode},
		{Scheme: SchemeBase64, Direction: DirectionEncode},
	}}

	encoded, err := p.Execute(ctx, engine, "ATTACK AT DAWN")
	require.NoError(t, err)

	reversed, err := p.Reverse()
	require.NoError(t, err)
	require.Len(t, reversed.Steps, 4)
	assert.Equal(t, Step{Scheme: SchemeBase64, Direction: DirectionDecode}, reversed.Steps[0])

	decoded, err := reversed.Execute(ctx, engine, encoded)
	require.NoError(t, err)
	assert.Equal(t, "ATTACK AT DAWN", decoded)
}

func TestPipelineReverseRejectsLossySteps(t *testing.T) {
	for _, step := range []Step{
		{Scheme: SchemeLeet, Direction: DirectionEncode},
		{Scheme: SchemeRailFence, Direction: DirectionEncode},
		{Scheme: SchemeZalgo, Direction: DirectionDecode},
		{Scheme: SchemeInvisible, Direction: DirectionDecode},
	} {
		t.Run(step.String(), func(t *testing.T) {
			p := &Pipeline{Steps: []Step{{Scheme: SchemeBase64, Direction: DirectionEncode}, step}}
			_, err := p.Reverse()
			assert.ErrorIs(t, err, ErrNotReversible)
		})
	}

	p := &Pipeline{Steps: []Step{{Scheme: SchemeZalgo, Direction: DirectionEncode}}}
	_, err := p.Reverse()
	assert.NoError(t, err, "zalgo marks can be cleaned off again")
}

func TestPipelineErrors(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine()

	_, err := (&Pipeline{}).Execute(ctx, engine, "x")
	assert.ErrorIs(t, err, ErrEmptyPipeline)

	p := &Pipeline{Steps: []Step{
		{Scheme: SchemeAtbash, Direction: DirectionEncode},
		{Scheme: SchemeBinary, Direction: DirectionDecode},
	}}
	_, err = p.Execute(ctx, engine, "hello")
	assert.ErrorIs(t, err, ErrRejectedInput)
	assert.Contains(t, err.Error(), "step 1 (binary:decode)")

	_, err = (&Pipeline{Steps: []Step{{Scheme: "nope", Direction: DirectionEncode}}}).Execute(ctx, engine, "x")
	assert.ErrorIs(t, err, ErrUnknownScheme)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = (&Pipeline{Steps: []Step{{Scheme: SchemeAtbash, Direction: DirectionEncode}}}).Execute(cancelled, engine, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseStep(t *testing.T) {
	step, err := ParseStep("caesar:decode")
	require.NoError(t, err)
	assert.Equal(t, Step{Scheme: SchemeCaesar, Direction: DirectionDecode}, step)

	step, err = ParseStep(" morse ")
	require.NoError(t, err)
	assert.Equal(t, DirectionEncode, step.Direction)

	_, err = ParseStep("morse:sideways")
	assert.ErrorIs(t, err, ErrMalformedStep)
	assert.ErrorIs(t, err, ErrUnknownDirection)

	_, err = ParseStep("enigma")
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func TestParsePipeline(t *testing.T) {
	data := []byte(`
name: obscure
steps:
  - scheme: caesar
    direction: encode
    params:
      shift: 13
  - scheme: hex
    direction: encode
`)
	p, err := ParsePipeline(data)
	require.NoError(t, err)
	assert.Equal(t, "obscure", p.Name)
	require.Len(t, p.Steps, 2)
	assert.Equal(t, 13, p.Steps[0].Params.Shift)

	got, err := p.Execute(context.Background(), NewEngine(), "A")
	require.NoError(t, err)
	assert.Equal(t, "4e", got)

	p, err = ParsePipeline([]byte(`
steps:
  - scheme: caesar
    direction: encode
    params: {shift: 0}
  - scheme: vigenere
    direction: encode
    params: {key: ""}
`))
	require.NoError(t, err)
	got, err = p.Execute(context.Background(), NewEngine(), "HELLO")
	require.NoError(t, err)
	assert.Equal(t, "HELLO", got, "explicit zero params are not replaced by defaults")

	_, err = ParsePipeline([]byte("steps: []"))
	assert.ErrorIs(t, err, ErrEmptyPipeline)

	_, err = ParsePipeline([]byte("steps:\n  - scheme: nope\n    direction: encode\n"))
	assert.ErrorIs(t, err, ErrUnknownScheme)

	_, err = ParsePipeline([]byte("steps: [unterminated"))
	assert.Error(t, err)
}
