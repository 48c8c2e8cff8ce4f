package stringsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want string
	}{
		{name: "shorter than limit", s: "abc", n: 10, want: "abc"},
		{name: "exact limit", s: "abc", n: 3, want: "abc"},
		{name: "cut", s: "abcdef", n: 2, want: "ab"},
		{name: "zero", s: "abc", n: 0, want: ""},
		{name: "negative keeps all", s: "abc", n: -1, want: "abc"},
		{name: "multibyte runes", s: "héllo•x", n: 6, want: "héllo•"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.s, tt.n))
		})
	}
}

func TestReduceNewlines(t *testing.T) {
	assert.Equal(t, "a\n\nb", ReduceNewlines("a\n\n\n \n\t\nb", 2))
	assert.Equal(t, "a\nb", ReduceNewlines("a\nb", 2))
	assert.Equal(t, "a\n\n\nb", ReduceNewlines("a\n\n\nb", 0))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "CLICK 4", FirstLine("CLICK 4\nbecause it is the search box"))
	assert.Equal(t, "SCROLL UP", FirstLine("SCROLL UP"))
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want []string
	}{
		{name: "fits", s: "abc", n: 3, want: []string{"abc"}},
		{name: "empty", s: "", n: 3, want: []string{""}},
		{name: "even split", s: "abcd", n: 2, want: []string{"ab", "cd"}},
		{name: "remainder", s: "abcde", n: 2, want: []string{"ab", "cd", "e"}},
		{name: "multibyte runes", s: "é•é•é", n: 2, want: []string{"é•", "é•", "é"}},
		{name: "non-positive size keeps all", s: "abc", n: 0, want: []string{"abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Chunk(tt.s, tt.n))
		})
	}
}
