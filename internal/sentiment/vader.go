package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

var (
	analyzer            = govader.NewSentimentIntensityAnalyzer()
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
)

// RemoveLinks strips markdown links (keeping the anchor text) and bare
// URLs. Reddit comment bodies are full of both.
func RemoveLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")

	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText flattens a markdown comment body to plain text.
func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := strings.Join(strings.Fields(string(output)), " ")

	return RemoveLinks(plainText)
}

// AnalyzeWithVADER scores free text with the VADER lexicon and buckets
// the compound score into the canonical 3-class vocabulary. Used by the
// dataset fetcher to label scraped comments.
func AnalyzeWithVADER(text string) (float64, Sentiment) {
	plainText := ConvertMarkdownToText(text)

	scores := analyzer.PolarityScores(plainText)
	compound := scores.Compound

	switch {
	case compound >= 0.20:
		return compound, Positive
	case compound <= -0.20:
		return compound, Negative
	default:
		return compound, Neutral
	}
}

// CategoryCode returns the {-1,0,1} encoding the training CSVs use for
// a canonical sentiment. Unify inverts it.
func CategoryCode(s Sentiment) string {
	switch s {
	case Negative:
		return "-1"
	case Positive:
		return "1"
	default:
		return "0"
	}
}
