package services

import "strings"

// CanonicalName reduces a free-text item name to a stable lookup key:
// lowercase, every character that is not an ASCII letter, digit, or
// whitespace stripped, runs of whitespace collapsed to one space, trimmed.
// No locale folding, stemming, or pluralization handling. A blank input
// yields an empty key, which callers must reject before persisting.
func CanonicalName(raw string) string {
	lowered := strings.ToLower(raw)

	var builder strings.Builder
	builder.Grow(len(lowered))
	for _, char := range lowered {
		switch {
		case char >= 'a' && char <= 'z',
			char >= '0' && char <= '9',
			char == ' ', char == '\t', char == '\n', char == '\r':
			builder.WriteRune(char)
		}
	}

	return strings.Join(strings.Fields(builder.String()), " ")
}
