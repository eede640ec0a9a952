package analytics

import (
	"strings"
	"unicode/utf8"

	"surveypulse/internal/model"
)

const sampleSize = 3

// Text summarizes free-text answers
func Text(answers []any) model.Summary {
	texts := make([]string, 0, len(answers))
	for _, a := range answers {
		if t := trimmed(a); t != "" {
			texts = append(texts, t)
		}
	}

	out := model.TextSummary{
		TotalResponses:  len(texts),
		SampleResponses: texts[:min(sampleSize, len(texts))],
	}
	if len(texts) == 0 {
		return out
	}

	words := 0
	longest, shortest := texts[0], texts[0]
	for _, t := range texts {
		words += len(strings.Fields(t))
		if utf8.RuneCountInString(t) > utf8.RuneCountInString(longest) {
			longest = t
		}
		if utf8.RuneCountInString(t) < utf8.RuneCountInString(shortest) {
			shortest = t
		}
	}
	out.AverageWordCount = Round(float64(words)/float64(len(texts)), 1)
	out.LongestResponse = longest
	out.ShortestResponse = shortest
	return out
}
