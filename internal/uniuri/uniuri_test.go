package uniuri

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New()
	assert.Len(t, s, StdLen)

	for i := 0; i < len(s); i++ {
		assert.True(t, bytes.ContainsRune(StdChars, rune(s[i])), "unexpected character %q", s[i])
	}
}

func TestNewLen(t *testing.T) {
	for _, length := range []int{0, 1, 8, 16, 64} {
		s := NewLen(length)
		assert.Len(t, s, length)
	}
}

func TestNewLenChars(t *testing.T) {
	chars := []byte("ab")
	s := NewLenChars(32, chars)
	require.Len(t, s, 32)

	for i := 0; i < len(s); i++ {
		assert.Contains(t, []byte("ab"), s[i])
	}
}

func TestNewLenCharsBadCharset(t *testing.T) {
	assert.Panics(t, func() {
		NewLenChars(8, []byte("a"))
	})
}

func TestNewIsNotConstant(t *testing.T) {
	// Two draws colliding by chance is a ~2^-95 event.
	assert.NotEqual(t, New(), New())
}
