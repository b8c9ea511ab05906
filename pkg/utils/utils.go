package utils

import (
	"log"
	"runtime/debug"
	"strings"
	"unicode/utf8"
)

// GoSafe runs fn in a new goroutine and recovers from panics so a single
// misbehaving task cannot take the process down.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("recovered from panic: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}

// CleanToValidUTF8 drops invalid UTF-8 sequences from s.
func CleanToValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "")
}

// TruncateRunes returns s truncated to at most n runes.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
