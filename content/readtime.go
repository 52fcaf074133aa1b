package content

import "strings"

const wordsPerMinute = 200

// ReadingTime estimates reading time in whole minutes from a content
// string: ceiling of word count over 200 words per minute.
//
// Empty or whitespace-only content is treated as a one-minute read, so the
// editor always has a value to display for stub drafts.
func ReadingTime(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 1
	}
	words := len(strings.Fields(trimmed))
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
