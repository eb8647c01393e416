package textutil

import (
	"regexp"
	"strings"
)

var sentenceEnd = regexp.MustCompile(`[。！？.!?]+`)

// SplitSentences splits text on Latin and CJK sentence-ending punctuation,
// dropping empty fragments.
func SplitSentences(text string) []string {
	parts := sentenceEnd.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// SimpleSummary extracts the first maxSentences sentences as a summary,
// joined back with the CJK full stop. Used when the LLM is disabled; must
// stay deterministic.
func SimpleSummary(text string, maxSentences int) string {
	if text == "" {
		return ""
	}
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return Truncate(text, 200)
	}
	if len(sentences) > maxSentences {
		sentences = sentences[:maxSentences]
	}
	return strings.Join(sentences, "。") + "。"
}

// Truncate cuts text to at most maxLen runes including the trailing
// ellipsis, breaking at the last space when possible.
func Truncate(text string, maxLen int) string {
	const ellipsis = "..."
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= len(ellipsis) {
		return string(runes[:maxLen])
	}
	// The ellipsis counts against maxLen so the result never exceeds it.
	cut := string(runes[:maxLen-len(ellipsis)])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + ellipsis
}

// EstimateTokens gives a rough token count for mixed Japanese/English text.
// Japanese runs ~0.5-1 tokens per character, English ~0.25; 0.7 is a middle
// ground good enough for audit records.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return int(float64(len([]rune(text))) * 0.7)
}
