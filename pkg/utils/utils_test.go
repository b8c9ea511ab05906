package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exactly at limit", "hello", 5, "hello"},
		{"truncated", "hello world", 5, "hello"},
		{"multibyte runes counted as one", "héllo wörld", 5, "héllo"},
		{"zero limit", "hello", 0, ""},
		{"negative limit", "hello", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateRunes(tt.input, tt.n))
		})
	}
}

func TestTruncateRunes_LongInput(t *testing.T) {
	long := strings.Repeat("é", 1000)
	assert.Equal(t, 512, len([]rune(TruncateRunes(long, 512))))
}

func TestCleanToValidUTF8(t *testing.T) {
	assert.Equal(t, "hello", CleanToValidUTF8("hello"))
	assert.Equal(t, "ab", CleanToValidUTF8("a\xffb"))
}
