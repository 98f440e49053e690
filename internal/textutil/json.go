package textutil

import "strings"

// StripCodeFence returns the body of the first markdown code fence in s, or
// s itself when it already starts with a JSON object. A fence inside a JSON
// string value is left alone.
func StripCodeFence(s string) string {
	text := strings.TrimSpace(s)
	if text == "" || text[0] == '{' {
		return text
	}
	idx := strings.Index(text, "```")
	if idx < 0 {
		return text
	}
	text = text[idx+3:]
	text = strings.TrimPrefix(text, "json")
	if end := strings.LastIndex(text, "```"); end >= 0 {
		text = text[:end]
	}
	return strings.TrimSpace(text)
}

// SanitizeJSON escapes raw control characters that appear inside JSON
// string literals. LLMs often emit literal newlines in long string values.
func SanitizeJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false
	for _, r := range s {
		if !inString {
			if r == '"' {
				inString = true
			}
			b.WriteRune(r)
			continue
		}
		switch {
		case escaped:
			escaped = false
			b.WriteRune(r)
		case r == '\\':
			escaped = true
			b.WriteRune(r)
		case r == '"':
			inString = false
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
