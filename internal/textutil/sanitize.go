package textutil

import "strings"

// titleReplacer maps a script title onto the token used for every artifact
// path. Spaces become underscores; colons and slashes are dropped so the title
// never introduces a path separator.
var titleReplacer = strings.NewReplacer(
	" ", "_",
	":", "",
	"/", "",
	"\\", "",
)

// SanitizeTitle converts a script title into the directory and file stem used
// beneath the data directory. Surrounding whitespace is trimmed first.
func SanitizeTitle(title string) string {
	return titleReplacer.Replace(strings.TrimSpace(title))
}
