package stringsx

import (
	"fmt"
	"regexp"
	"strings"
)

func ReduceNewlines(s string, maxNewlines int) string {
	if maxNewlines < 1 {
		return s
	}

	replacement := strings.Repeat("\n", maxNewlines)

	// matches runs of more than maxNewlines newlines, with spaces or tabs in between
	pattern := regexp.MustCompile(fmt.Sprintf(`(\n[ \t]*){%d,}`, maxNewlines+1))
	return pattern.ReplaceAllString(s, replacement)
}

// Truncate keeps at most n runes of s.
func Truncate(s string, n int) string {
	if n < 0 {
		return s
	}
	count := 0
	for idx := range s {
		if count == n {
			return s[:idx]
		}
		count++
	}
	return s
}

// FirstLine returns s up to its first newline.
func FirstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// Chunk splits s into consecutive pieces of at most n runes. A string that
// already fits, including the empty string, is returned as a single piece.
func Chunk(s string, n int) []string {
	if n <= 0 {
		return []string{s}
	}
	var chunks []string
	start, count := 0, 0
	for idx := range s {
		if count == n {
			chunks = append(chunks, s[start:idx])
			start, count = idx, 0
		}
		count++
	}
	return append(chunks, s[start:])
}
