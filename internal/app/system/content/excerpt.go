package content

import "strings"

// Ellipsis is appended to every truncated excerpt.
const Ellipsis = "..."

// Excerpt truncates text to at most maxLen runes plus Ellipsis.
//
// It prefers ending on a sentence terminator found in the last 40% of the
// window, then on a word boundary in the last 20%, and otherwise cuts hard
// at maxLen. Text that already fits is returned unchanged.
func Excerpt(text string, maxLen int) string {
	runes := []rune(text)
	if maxLen <= 0 || len(runes) <= maxLen {
		return text
	}
	window := runes[:maxLen]

	sentenceMin := maxLen * 6 / 10
	for i := len(window) - 1; i >= sentenceMin; i-- {
		if strings.ContainsRune(".!?", window[i]) {
			return string(window[:i+1]) + Ellipsis
		}
	}

	wordMin := maxLen * 8 / 10
	for i := len(window) - 1; i >= wordMin; i-- {
		if window[i] == ' ' {
			return string(window[:i]) + Ellipsis
		}
	}

	return string(window) + Ellipsis
}
