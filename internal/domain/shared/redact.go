package shared

import "strings"

// Redact masks a sensitive value for display and export, replacing every
// character except the last four with 'X'. A value shorter than four
// characters is fully masked.
func Redact(value string) string {
	if value == "" {
		return ""
	}
	runes := []rune(value)
	if len(runes) < 4 {
		return strings.Repeat("X", len(runes))
	}
	masked := make([]rune, len(runes))
	for i := range runes {
		if i < len(runes)-4 {
			masked[i] = 'X'
		} else {
			masked[i] = runes[i]
		}
	}
	return string(masked)
}
