package generation

import (
	"strconv"
	"strings"

	"memoscribe-be/internal/pkg/logger"
	"memoscribe-be/pkg/llm"
)

// ContextItem is an ephemeral, privacy-filtered excerpt of stored content
// supplied to a generation call. Produced fresh per retrieval, never
// persisted.
type ContextItem struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PreferenceKV is a user preference passed into prompt assembly.
type PreferenceKV struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Citation references a context item by its 1-indexed position in the
// prompt's context block.
type Citation struct {
	Ref   int    `json:"ref"`
	Kind  string `json:"type"`
	Title string `json:"title"`
	Quote string `json:"quote"`
}

// Digest is the derived artifact for a raw log or document.
type Digest struct {
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
	Topics  []string `json:"topics"`
	Actions []string `json:"actions"`
}

// Answer is the structured result of an assistant question.
type Answer struct {
	Answer        string     `json:"answer"`
	NextQuestions []string   `json:"next_questions"`
	Citations     []Citation `json:"citations"`
}

// Writing is the structured result of a writing-template request.
type Writing struct {
	Output      string     `json:"output"`
	Citations   []Citation `json:"citations"`
	MissingInfo []string   `json:"missing_info"`
}

// Generator builds role-structured prompts, calls the LLM provider, and
// validates structured JSON output. Every failure path returns a
// deterministic fallback object; callers branch on returned fields, never
// on errors.
type Generator struct {
	provider llm.Provider
	log      logger.ILogger
}

func NewGenerator(provider llm.Provider, log logger.ILogger) *Generator {
	return &Generator{
		provider: provider,
		log:      log,
	}
}

// IsAvailable reports whether the underlying provider can serve calls.
func (g *Generator) IsAvailable() bool {
	return g.provider.IsAvailable()
}

// stripFence removes a Markdown code-fence wrapper from a model response
// before JSON parsing.
func stripFence(response string) string {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```") {
		lines := strings.Split(cleaned, "\n")
		if len(lines) >= 2 {
			cleaned = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}
	return strings.TrimSpace(cleaned)
}

// capRunes limits s to max runes.
func capRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// buildContextBlock renders the numbered context list. Reference numbers in
// citations correlate positionally with this block (1-indexed).
func buildContextBlock(items []ContextItem, contentCap int) string {
	var b strings.Builder
	for i, item := range items {
		b.WriteString("\n[")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("] (")
		b.WriteString(item.Kind)
		b.WriteString(") ")
		b.WriteString(item.Title)
		b.WriteString(":\n")
		b.WriteString(capRunes(item.Content, contentCap))
		b.WriteString("\n")
	}
	return b.String()
}

func buildPreferenceBlock(preferences []PreferenceKV) string {
	if len(preferences) == 0 {
		return ""
	}
	var b strings.Builder
	for _, pref := range preferences {
		b.WriteString("- ")
		b.WriteString(pref.Key)
		b.WriteString(": ")
		b.WriteString(pref.Value)
		b.WriteString("\n")
	}
	return b.String()
}
