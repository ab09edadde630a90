// Package quiz grades answers and runs a single quiz round.
package quiz

import "strings"

// Alternatives splits a comma-separated meaning into its accepted answers.
func Alternatives(meaning string) []string {
	parts := strings.Split(meaning, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = normalize(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// Grade reports whether answer matches any accepted meaning, ignoring case
// and surrounding whitespace.
func Grade(meaning, answer string) bool {
	answer = normalize(answer)
	if answer == "" {
		return false
	}
	for _, alt := range Alternatives(meaning) {
		if strings.EqualFold(alt, answer) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
