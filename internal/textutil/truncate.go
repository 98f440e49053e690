// Package textutil holds small text helpers for preparing LLM prompts and
// reading LLM responses.
package textutil

import "unicode/utf8"

// Truncate limits s to maxLen bytes, never splitting a UTF-8 sequence, and
// appends suffix when anything was cut. It suits log snippets where the
// byte size matters.
func Truncate(s string, maxLen int, suffix string) string {
	if len(s) <= maxLen {
		return s
	}
	cut := max(maxLen, 0)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + suffix
}

// TruncateRunes keeps the first n characters of s.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
