package clarity

import "strings"

// Normalize prepares free text for phrase matching. It only lower-cases:
// punctuation, apostrophes and whitespace are left alone.
func Normalize(text string) string {
	return strings.ToLower(text)
}
