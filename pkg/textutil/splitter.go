package textutil

import "strings"

// Break points tried in order when a chunk boundary falls mid-sentence.
var chunkSeparators = []string{"\n\n", "。", ".", "\n", " "}

// SplitText splits a long string into chunks of approximately chunkSize
// runes with an overlap to preserve context at boundaries. Chunks prefer to
// break at a paragraph, sentence, or word boundary when one exists past the
// midpoint of the chunk.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= chunkSize {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{strings.TrimSpace(text)}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	totalLen := len(runes)

	for start := 0; start < totalLen; {
		end := start + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunk := string(runes[start:end])
		if end < totalLen {
			for _, sep := range chunkSeparators {
				if idx := strings.LastIndex(chunk, sep); idx > 0 {
					cutRunes := len([]rune(chunk[:idx+len(sep)]))
					if cutRunes > chunkSize/2 {
						chunk = chunk[:idx+len(sep)]
						end = start + cutRunes
						break
					}
				}
			}
		}

		if trimmed := strings.TrimSpace(chunk); trimmed != "" {
			chunks = append(chunks, trimmed)
		}

		if end == totalLen {
			break
		}
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}
