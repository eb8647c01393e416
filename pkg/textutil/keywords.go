package textutil

import (
	"regexp"
	"sort"
	"strings"
)

// Stopwords span Japanese particles/function words and English function
// words so frequency extraction works on mixed-language logs.
var stopwords = map[string]struct{}{}

func init() {
	list := []string{
		"の", "は", "が", "を", "に", "で", "と", "も", "や", "へ", "から", "まで",
		"より", "など", "か", "て", "た", "だ", "です", "ます", "する", "ある", "いる",
		"これ", "それ", "あれ", "この", "その", "あの", "こと", "もの", "ため",
		"the", "a", "an", "is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "do", "does", "did", "will", "would", "could", "should",
		"may", "might", "can", "of", "in", "to", "for", "with", "on", "at", "by",
		"from", "as", "into", "through", "during", "before", "after", "above", "below",
		"and", "or", "but", "if", "then", "else", "when", "up", "down", "out", "off",
	}
	for _, w := range list {
		stopwords[w] = struct{}{}
	}
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]{2,}`)
var numericOnly = regexp.MustCompile(`^[\p{N}]+$`)

// ExtractKeywords returns the top maxKeywords non-stopword tokens by
// frequency. Numeric-only tokens are excluded. Deterministic: ties break
// alphabetically so the fallback digest is stable for a given input.
func ExtractKeywords(text string, maxKeywords int) []string {
	if text == "" {
		return []string{}
	}

	counts := map[string]int{}
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if _, skip := stopwords[w]; skip {
			continue
		}
		if numericOnly.MatchString(w) {
			continue
		}
		counts[w]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > maxKeywords {
		words = words[:maxKeywords]
	}
	return words
}
