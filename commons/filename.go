package commons

import (
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	multiUnder   = regexp.MustCompile(`_+`)
)

// CleanFilename makes a string safe to use as a file or directory name.
func CleanFilename(name string) string {
	cleaned := invalidChars.ReplaceAllString(name, "_")
	cleaned = multiUnder.ReplaceAllString(cleaned, "_")
	cleaned = strings.Trim(cleaned, "_ ")

	if len(cleaned) > 100 {
		cleaned = cleaned[:100]
	}
	return cleaned
}
