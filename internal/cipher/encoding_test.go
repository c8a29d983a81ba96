package cipher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBase64(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple text", "Hello, World!", "SGVsbG8sIFdvcmxkIQ=="},
		{"special chars", "Test@123!#$", "VGVzdEAxMjMhIyQ="},
		{"empty string", "", ""},
		{"unicode", "Hello 世界", "SGVsbG8g5LiW55WM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeBase64(tt.input)
			assert.Equal(t, tt.expected, encoded)
			assert.Equal(t, tt.input, DecodeBase64(encoded))
		})
	}
}

func TestDecodeBase64Malformed(t *testing.T) {
	assert.Equal(t, "hello", DecodeBase64("aGVsbG8"), "unpadded input is accepted")
	assert.Equal(t, InvalidBase64, DecodeBase64("!!!"))
	assert.Equal(t, InvalidBase64, DecodeBase64("/w=="), "non UTF-8 payload")
}

func TestBinary(t *testing.T) {
	assert.Equal(t, "01001000 01101001", EncodeBinary("Hi"))
	assert.Equal(t, "11101001", EncodeBinary("é"))
	assert.Equal(t, "10000010101100", EncodeBinary("€"))

	for _, s := range []string{"Hi", "Hello, World!", "é€"} {
		assert.Equal(t, s, DecodeBinary(EncodeBinary(s)))
	}

	t.Run("whitespace runs", func(t *testing.T) {
		assert.Equal(t, "Hi", DecodeBinary("  01001000 \n\t01101001  "))
	})

	t.Run("bad tokens dropped", func(t *testing.T) {
		assert.Equal(t, "Hi", DecodeBinary("01001000 2 01101001"))
	})
}

func TestHex(t *testing.T) {
	assert.Equal(t, "48 69", EncodeHex("Hi"))
	assert.Equal(t, "20ac", EncodeHex("€"))
	assert.Equal(t, "0a", EncodeHex("\n"))

	for _, s := range []string{"Hi", "Hello, World!", "é€"} {
		assert.Equal(t, s, DecodeHex(EncodeHex(s)))
	}

	assert.Equal(t, "Hi", DecodeHex("48 ZZ 69"))
	assert.Equal(t, "Hi", DecodeHex("48 69"))
	assert.Equal(t, "J", DecodeHex("4A"))
}

func TestURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"space", "hello world", "hello%20world"},
		{"reserved", "a+b=c&d", "a%2Bb%3Dc%26d"},
		{"unreserved untouched", "AZaz09-_.!~*'()", "AZaz09-_.!~*'()"},
		{"multi byte", "é", "%C3%A9"},
		{"slash", "a/b?c", "a%2Fb%3Fc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeURL(tt.input)
			assert.Equal(t, tt.expected, encoded)
			assert.Equal(t, tt.input, DecodeURL(encoded))
		})
	}
}

func TestDecodeURLMalformed(t *testing.T) {
	assert.Equal(t, "a+b", DecodeURL("a+b"), "plus is not a space")
	assert.Equal(t, InvalidURLEncoding, DecodeURL("%E0%A4%A"))
	assert.Equal(t, InvalidURLEncoding, DecodeURL("%zz"))
	assert.Equal(t, InvalidURLEncoding, DecodeURL("%FF"))
	assert.Equal(t, "", DecodeURL(""))
}
