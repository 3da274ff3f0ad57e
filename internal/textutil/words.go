package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordCount returns the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// CaptionText normalizes a transcript word for on-screen display: trimmed and
// upper-cased with Unicode case rules ("straße" becomes "STRASSE").
func CaptionText(word string) string {
	// Casers carry state, so each call gets its own.
	return cases.Upper(language.Und).String(strings.TrimSpace(word))
}
