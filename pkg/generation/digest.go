package generation

import (
	"context"
	"encoding/json"

	"memoscribe-be/pkg/llm"
	"memoscribe-be/pkg/textutil"
)

const digestSystemPrompt = `あなたは個人の記録を整理する秘書です。
与えられたテキストから以下を抽出してJSON形式で返してください：

{
    "summary": "2-3文の要約",
    "tags": ["タグ1", "タグ2", "タグ3"],
    "topics": ["主要トピック1", "主要トピック2"],
    "actions": ["アクション1", "アクション2"]（もしあれば）
}

- 要約は事実のみを含め、推測しないこと
- タグは3-5個程度
- アクションは明示的に書かれているものだけ抽出
`

// Caps for the deterministic extractive fallback.
const (
	fallbackSummarySentences = 3
	fallbackTagCount         = 5
	fallbackTopicCount       = 3
)

// ExtractiveDigest is the deterministic fallback used when the LLM is
// unavailable: leading sentences as summary, top-frequency keywords as tags
// and topics, no actions. Pure function; same input always yields the same
// digest.
func ExtractiveDigest(text string, maxSentences int) Digest {
	return Digest{
		Summary: textutil.SimpleSummary(text, maxSentences),
		Tags:    textutil.ExtractKeywords(text, fallbackTagCount),
		Topics:  textutil.ExtractKeywords(text, fallbackTopicCount),
		Actions: []string{},
	}
}

// GenerateDigest turns raw text into {summary, tags, topics, actions}. Any
// failure (unavailable, transport error, malformed JSON) yields the
// extractive fallback instead of an error.
func (g *Generator) GenerateDigest(ctx context.Context, text string) Digest {
	if !g.provider.IsAvailable() {
		return ExtractiveDigest(text, fallbackSummarySentences)
	}

	response, err := g.provider.Chat(ctx,
		[]llm.Message{
			{Role: "system", Content: digestSystemPrompt},
			{Role: "user", Content: capRunes(text, 4000)},
		},
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(500),
	)
	if err != nil {
		g.log.Error("generation", "digest generation failed", map[string]interface{}{"error": err.Error()})
		return ExtractiveDigest(text, fallbackSummarySentences)
	}

	var digest Digest
	if err := json.Unmarshal([]byte(stripFence(response)), &digest); err != nil {
		g.log.Error("generation", "digest response was not valid JSON", map[string]interface{}{"error": err.Error()})
		return ExtractiveDigest(text, fallbackSummarySentences)
	}

	// Default-fill missing keys; the response shape is untrusted input.
	if digest.Tags == nil {
		digest.Tags = []string{}
	}
	if digest.Topics == nil {
		digest.Topics = []string{}
	}
	if digest.Actions == nil {
		digest.Actions = []string{}
	}
	return digest
}
