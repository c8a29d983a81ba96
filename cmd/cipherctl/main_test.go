package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RowanDark/cipherdeck/internal/testutil"
)

func execute(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	var in io.Reader = strings.NewReader(stdin)
	code = run(args, in, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestEncodeDecode(t *testing.T) {
	testutil.Isolate(t)

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"caesar default shift", "", []string{"encode", "caesar", "hello"}, "khoor\n"},
		{"caesar explicit shift", "", []string{"encode", "caesar", "--shift", "13", "hello"}, "uryyb\n"},
		{"caesar zero shift", "", []string{"encode", "caesar", "--shift", "0", "hello"}, "hello\n"},
		{"vigenere empty key", "", []string{"encode", "vigenere", "--key", "", "hello"}, "hello\n"},
		{"morse", "", []string{"encode", "morse", "sos"}, "... --- ...\n"},
		{"a1z26 from stdin", "8.5.12.12.15\n", []string{"decode", "a1z26"}, "HELLO\n"},
		{"joined args", "", []string{"encode", "a1z26", "hi", "there"}, "8.9.0.20.8.5.18.5\n"},
		{"vigenere key", "", []string{"encode", "vigenere", "--key", "LEMON", "ATTACKATDAWN"}, "LXFOPVEFRNHR\n"},
		{"reverse words", "", []string{"encode", "reverse", "--mode", "words", "hello world"}, "olleh dlrow\n"},
		{"base64", "", []string{"decode", "base64", "aGVsbG8="}, "hello\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := execute(t, tt.stdin, tt.args...)
			require.Equal(t, exitOK, code, stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestRejectedInput(t *testing.T) {
	testutil.Isolate(t)

	code, stdout, stderr := execute(t, "", "decode", "binary", "0101", "2")
	assert.Equal(t, exitFailure, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Please enter valid binary (0s and 1s)")
	assert.Contains(t, stderr, "suggestion: 0101 ")
	assert.NotContains(t, stderr, "cipherctl:")
}

func TestUsageErrors(t *testing.T) {
	testutil.Isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown scheme", []string{"encode", "rot47", "abc"}},
		{"missing scheme", []string{"encode"}},
		{"unknown command", []string{"scramble"}},
		{"unknown flag", []string{"encode", "caesar", "--nope", "abc"}},
		{"bad direction", []string{"validate", "morse", "sideways", "..."}},
		{"intensity out of range", []string{"encode", "zalgo", "--intensity", "11", "abc"}},
		{"bad reverse mode", []string{"encode", "reverse", "--mode", "backwards", "abc"}},
		{"chain without steps", []string{"chain", "abc"}},
		{"chain bad step", []string{"chain", "--step", "caesar:sideways", "abc"}},
		{"table without lookup", []string{"table", "caesar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := execute(t, "", tt.args...)
			assert.Equal(t, exitUsage, code, stderr)
		})
	}
}

func TestValidate(t *testing.T) {
	testutil.Isolate(t)

	code, stdout, _ := execute(t, "", "validate", "morse", "decode", "... ---")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "valid\n", stdout)

	code, _, stderr := execute(t, "", "validate", "a1z26", "encode", "abc1")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "Please enter letters only (A-Z)")
	assert.Contains(t, stderr, "suggestion: abc")
}

func TestBruteForce(t *testing.T) {
	testutil.Isolate(t)

	code, stdout, _ := execute(t, "", "bruteforce", "khoor")
	require.Equal(t, exitOK, code)
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 25)
	assert.Equal(t, " 3  hello", lines[2])

	code, stdout, _ = execute(t, "", "decode", "caesar", "--brute-force", "khoor")
	require.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(stdout, "hello\n\n 1  jgnnq\n"))
}

func TestChain(t *testing.T) {
	testutil.Isolate(t)

	code, stdout, stderr := execute(t, "", "chain", "--step", "caesar:encode", "--step", "base64", "hello")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "a2hvb3I=\n", stdout)

	code, stdout, stderr = execute(t, "", "chain", "--reverse", "--step", "caesar:encode", "--step", "base64", "a2hvb3I=")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "hello\n", stdout)

	code, _, stderr = execute(t, "", "chain", "--reverse", "--step", "leet", "h3ll0")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "not reversible")
}

func TestChainFile(t *testing.T) {
	work := testutil.Isolate(t)
	path := filepath.Join(work, "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`name: double
steps:
  - scheme: caesar
    direction: encode
    params: {shift: 1}
  - scheme: hex
    direction: encode
`), 0o644))

	code, stdout, stderr := execute(t, "", "chain", "--file", path, "ab")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "62 63\n", stdout)
}

func TestBatch(t *testing.T) {
	testutil.Isolate(t)

	code, stdout, stderr := execute(t, "ab\n cd \n", "batch", "a1z26", "encode", "--workers", "3")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "1.2\n3.4\n\n", stdout)

	code, stdout, stderr = execute(t, "01101000\nnope", "batch", "binary", "decode")
	assert.Equal(t, exitFailure, code)
	assert.Equal(t, "h\n\n", stdout)
	assert.Contains(t, stderr, "line 2: Please enter valid binary")
}

func TestBatchFile(t *testing.T) {
	work := testutil.Isolate(t)
	path := filepath.Join(work, "lines.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc\nxyz"), 0o644))

	code, stdout, stderr := execute(t, "", "batch", "atbash", "encode", "--file", path)
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "zyx\ncba\n", stdout)
}

func TestDetect(t *testing.T) {
	testutil.Isolate(t)

	code, stdout, stderr := execute(t, "", "detect", "01101000", "01101001")
	require.Equal(t, exitOK, code, stderr)
	lines := strings.Split(stdout, "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[0], "SCHEME"))
	assert.True(t, strings.HasPrefix(lines[1], "binary"))

	code, stdout, _ = execute(t, "", "detect", "--decode", "01101000", "01101001")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "hi")
}

func TestSchemesAndTable(t *testing.T) {
	testutil.Isolate(t)

	code, stdout, _ := execute(t, "", "schemes")
	require.Equal(t, exitOK, code)
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	assert.Len(t, lines, 16)
	assert.Contains(t, stdout, "vigenere")
	assert.Contains(t, stdout, "lossy")

	code, stdout, _ = execute(t, "", "table", "emoji", "--columns", "2")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "A \U0001F34E")
	assert.Len(t, strings.Split(strings.TrimSuffix(stdout, "\n"), "\n"), 13)

	code, stdout, _ = execute(t, "", "table", "invisible")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "0 U+200B")
}

func TestAsk(t *testing.T) {
	testutil.Isolate(t)

	code, stdout, _ := execute(t, "", "ask", "what", "is", "morse?")
	require.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(stdout, "Morse code uses dots and dashes!"))
}

func TestZalgoSeedIsReproducible(t *testing.T) {
	testutil.Isolate(t)

	_, first, _ := execute(t, "", "encode", "zalgo", "--seed", "42", "spooky")
	_, second, _ := execute(t, "", "encode", "zalgo", "--seed", "42", "spooky")
	assert.Equal(t, first, second)

	code, cleaned, _ := execute(t, "", "decode", "zalgo", strings.TrimSuffix(first, "\n"))
	require.Equal(t, exitOK, code)
	assert.Equal(t, "spooky\n", cleaned)
}

func TestInvisibleRoundTrip(t *testing.T) {
	testutil.Isolate(t)

	code, stdout, _ := execute(t, "", "encode", "invisible", "--cover", "nothing here", "secret")
	require.Equal(t, exitOK, code)
	hidden := strings.TrimSuffix(stdout, "\n")
	assert.NotEqual(t, "nothing here", hidden)

	code, stdout, _ = execute(t, hidden, "decode", "invisible")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "secret\n", stdout)
}

func TestConfigDefaults(t *testing.T) {
	work := testutil.Isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(work, "cipherdeck.yml"), []byte("defaults:\n  shift: 1\n"), 0o644))

	code, stdout, _ := execute(t, "", "encode", "caesar", "abc")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "bcd\n", stdout)

	custom := filepath.Join(work, "custom.yaml")
	require.NoError(t, os.WriteFile(custom, []byte("defaults:\n  key: B\n"), 0o644))
	code, stdout, _ = execute(t, "", "--config", custom, "encode", "vigenere", "abc")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "bcd\n", stdout)

	code, _, stderr := execute(t, "", "--config", filepath.Join(work, "missing.yaml"), "schemes")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "load config")
}

func TestVerboseLogsRedactedEvents(t *testing.T) {
	testutil.Isolate(t)

	code, stdout, stderr := execute(t, "", "--verbose", "encode", "vigenere", "--key", "LEMON", "attack at dawn")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "lxfopv ef rnhr\n", stdout)

	var event map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(stderr)), &event))
	assert.Equal(t, "transcode", event["event_type"])
	assert.Equal(t, "vigenere", event["scheme"])
	assert.NotContains(t, stderr, "attack at dawn")
	assert.NotContains(t, stderr, "LEMON")
}

func TestLogFile(t *testing.T) {
	work := testutil.Isolate(t)
	path := filepath.Join(work, "events.jsonl")

	code, _, stderr := execute(t, "", "--log-file", path, "encode", "hex", "hi")
	require.Equal(t, exitOK, code)
	assert.Empty(t, stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"event_type":"transcode"`)
}
