package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RowanDark/cipherdeck/internal/cipher"
	"github.com/RowanDark/cipherdeck/internal/logging"
)

func TestProcessA1Z26Encode(t *testing.T) {
	engine := cipher.NewEngine()
	report, err := Process(context.Background(), engine, Job{
		Scheme:    cipher.SchemeA1Z26,
		Direction: cipher.DirectionEncode,
	}, "  abc\nhi there \n")
	require.NoError(t, err)

	assert.NotEmpty(t, report.JobID)
	require.Len(t, report.Lines, 3)
	assert.Equal(t, "1.2.3\n8.9.0.20.8.5.18.5\n", report.Output())
	assert.Empty(t, report.Failures())
	assert.Equal(t, "abc", report.Lines[0].Input)
	assert.Equal(t, 2, report.Lines[1].Number)
}

func TestProcessPreservesOrderUnderConcurrency(t *testing.T) {
	var input, want []string
	for i := 0; i < 200; i++ {
		line := fmt.Sprintf("line %d", i)
		input = append(input, line)
		want = append(want, cipher.EncodeCaesar(line, 5))
	}

	report, err := Process(context.Background(), cipher.NewEngine(), Job{
		Scheme:    cipher.SchemeCaesar,
		Direction: cipher.DirectionEncode,
		Params:    cipher.Params{Shift: 5},
		Workers:   16,
	}, strings.Join(input, "\n"))
	require.NoError(t, err)
	assert.Equal(t, strings.Join(want, "\n"), report.Output())
}

func TestProcessRecordsRejectedLines(t *testing.T) {
	report, err := Process(context.Background(), cipher.NewEngine(), Job{
		Scheme:    cipher.SchemeBinary,
		Direction: cipher.DirectionDecode,
	}, "01101000 01101001\nnot binary\n01101111")
	require.NoError(t, err)

	assert.Equal(t, "hi\n\no", report.Output())
	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, 2, failures[0].Number)
	assert.Equal(t, "Please enter valid binary (0s and 1s)", failures[0].Result.Message)
}

func TestProcessZalgoWithSharedRand(t *testing.T) {
	engine := cipher.NewEngine(cipher.WithRandSource(rand.New(rand.NewPCG(1, 2))))
	report, err := Process(context.Background(), engine, Job{
		Scheme:    cipher.SchemeZalgo,
		Direction: cipher.DirectionEncode,
		Workers:   8,
	}, strings.Repeat("spooky\n", 50))
	require.NoError(t, err)

	for _, l := range report.Lines {
		assert.Equal(t, l.Input, cipher.CleanZalgo(l.Result.Output))
	}
}

func TestProcessBlankInput(t *testing.T) {
	report, err := Process(context.Background(), cipher.NewEngine(), Job{
		Scheme:    cipher.SchemeEmoji,
		Direction: cipher.DirectionEncode,
	}, " \n\t ")
	require.NoError(t, err)
	assert.Empty(t, report.Lines)
	assert.Equal(t, "", report.Output())
}

func TestProcessUnknownScheme(t *testing.T) {
	_, err := Process(context.Background(), cipher.NewEngine(), Job{
		Scheme:    "rot47",
		Direction: cipher.DirectionEncode,
	}, "abc")
	assert.ErrorIs(t, err, cipher.ErrUnknownScheme)

	_, err = Process(context.Background(), nil, Job{}, "abc")
	assert.ErrorIs(t, err, ErrNilEngine)
}

func TestProcessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Process(ctx, cipher.NewEngine(), Job{
		Scheme:    cipher.SchemeAtbash,
		Direction: cipher.DirectionEncode,
	}, "a\nb\nc")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessLogsRedactedEvents(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.MustNew("batch", logging.WithoutStderr(), logging.WithWriter(buf))

	_, err := Process(context.Background(), cipher.NewEngine(), Job{
		ID:        "job-1",
		Scheme:    cipher.SchemeMorse,
		Direction: cipher.DirectionEncode,
	}, "sos\nhelp", WithLogger(logger))
	require.NoError(t, err)

	var types []logging.EventType
	for _, raw := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var e logging.Event
		require.NoError(t, json.Unmarshal(raw, &e))
		assert.Equal(t, "job-1", e.RequestID)
		types = append(types, e.EventType)
	}
	assert.ElementsMatch(t, []logging.EventType{
		logging.EventBatchLine, logging.EventBatchLine, logging.EventBatchComplete,
	}, types)
	assert.Equal(t, logging.EventBatchComplete, types[len(types)-1])
	assert.NotContains(t, buf.String(), "help")
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines(" a \n\n b"))
}
