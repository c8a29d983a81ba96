package cipher

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestInvisibleRoundTrip(t *testing.T) {
	for _, msg := range []string{"Hi", "meet at noon", "~!@#"} {
		encoded := EncodeInvisible(msg, DefaultCover)
		assert.Equal(t, msg, DecodeInvisible(encoded))
		assert.Equal(t, DefaultCover, ExtractCover(encoded))
		assert.True(t, HasHiddenPayload(encoded))
	}
}

func TestEncodeInvisibleLayout(t *testing.T) {
	encoded := EncodeInvisible("A", "ab")
	// 'A' = 0x41 = 01 00 00 01
	assert.Equal(t, "a\u200c\u200b\u200b\u200cb", encoded)

	t.Run("payload spliced at rune midpoint", func(t *testing.T) {
		cover := "ñandú"
		encoded := EncodeInvisible("x", cover)
		assert.True(t, strings.HasPrefix(encoded, "ña"))
		assert.True(t, strings.HasSuffix(encoded, "ndú"))
		assert.Equal(t, utf8.RuneCountInString(cover)+4, utf8.RuneCountInString(encoded))
	})

	t.Run("empty message keeps cover", func(t *testing.T) {
		assert.Equal(t, "cover", EncodeInvisible("", "cover"))
	})

	t.Run("empty cover", func(t *testing.T) {
		assert.Equal(t, "A", DecodeInvisible(EncodeInvisible("A", "")))
	})
}

func TestDecodeInvisibleSentinels(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"no payload", "plain text", NoHiddenMessage},
		{"only zero byte", "\u200b\u200b\u200b\u200b", UndecodableHiddenMessage},
		{"partial group", "x\u200c\u200b\u200by", UndecodableHiddenMessage},
		{"non ascii bytes dropped", EncodeInvisible("é", "c"), UndecodableHiddenMessage},
		{"mixed keeps ascii", EncodeInvisible("aé", "c"), "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeInvisible(tt.input))
		})
	}
}

func TestHasHiddenPayload(t *testing.T) {
	assert.False(t, HasHiddenPayload("nothing here"))
	assert.True(t, HasHiddenPayload("one\u2060joiner"))
	assert.False(t, HasHiddenPayload("\ufeffbom is not reserved"))
}
