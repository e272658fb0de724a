package sentiment

import (
	"regexp"
	"strings"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern    = regexp.MustCompile(`<.*?>`)
	nonWordPattern    = regexp.MustCompile(`[^\w\s]`)
	digitPattern      = regexp.MustCompile(`\d+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize maps raw free text to the canonical cleaned form used when
// preparing training data: lowercase, no URLs, no HTML tags, no
// punctuation or digits, single-spaced. Non-string input yields "" so
// the function is total over anything a dataset loader hands it.
// Idempotent on already-clean text.
func Normalize(input any) string {
	text, ok := input.(string)
	if !ok {
		return ""
	}

	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = htmlTagPattern.ReplaceAllString(text, "")
	text = nonWordPattern.ReplaceAllString(text, "")
	text = digitPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
