package text

import (
	"regexp"
	"strings"
)

var (
	wordPunctPattern = regexp.MustCompile(`[\p{L}\p{N}\p{M}_]+|[^\p{L}\p{N}\p{M}_\s]+`)
	sentenceEnd      = regexp.MustCompile(`[.!?]+["'’”)\]]*\s+`)
)

// TokenizeWords splits text into runs of word characters and runs of
// punctuation, so "don't." yields "don", "'", "t", ".".
func TokenizeWords(s string) []string {
	return wordPunctPattern.FindAllString(s, -1)
}

// SplitSentences splits text after terminal punctuation followed by
// whitespace. Blank sentences are dropped.
func SplitSentences(s string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(s, -1) {
		if sentence := strings.TrimSpace(s[start:loc[1]]); sentence != "" {
			out = append(out, sentence)
		}
		start = loc[1]
	}
	if sentence := strings.TrimSpace(s[start:]); sentence != "" {
		out = append(out, sentence)
	}
	return out
}
