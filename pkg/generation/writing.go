package generation

import (
	"context"
	"encoding/json"
	"fmt"

	"memoscribe-be/pkg/llm"
)

const (
	writingUnavailableMessage = "LLMが有効化されていないため、文章を生成できません。"
	writingErrorMessage       = "文章の生成中にエラーが発生しました。"
)

// Template kinds map to fixed instruction strings. Unknown kinds fall back
// to the generic instruction rather than failing.
var templateInstructions = map[string]string{
	"email_polite":    "丁寧なビジネスメールを作成してください。敬語を使用し、失礼のない文面にしてください。",
	"email_casual":    "カジュアルなメールを作成してください。親しみやすいトーンで書いてください。",
	"rewrite_short":   "以下の文章を簡潔に短くリライトしてください。要点を残しつつ、冗長な部分を削除してください。",
	"rewrite_polite":  "以下の文章を丁寧な表現にリライトしてください。敬語を適切に使用してください。",
	"rewrite_logical": "以下の文章を論理的に整理してリライトしてください。構成を明確にしてください。",
	"daily_plan":      "タスクとログから今日やるべきこと3つを提案してください。優先度と理由を添えてください。",
}

const genericInstruction = "以下の依頼に沿って文章を作成してください。"

const writingSystemPromptFormat = `あなたは文章作成をサポートする秘書です。

ルール：
1. 根拠にない事実は書かない（盛り禁止）
2. 必要な情報が不足している場合は、その旨を明示する
3. ユーザーの好みに沿った文体で書く
%s

タスク: %s

回答はJSON形式で：
{
    "output": "生成した文章",
    "citations": [{"ref": 1, "quote": "参照した部分"}],
    "missing_info": ["不足している情報"]
}`

// UnavailableWriting is the fixed payload returned when generation is
// disabled.
func UnavailableWriting() Writing {
	return Writing{
		Output:      writingUnavailableMessage,
		Citations:   []Citation{},
		MissingInfo: []string{},
	}
}

// GenerateWriting drafts text for a template kind grounded in the retrieved
// context. Missing required information is surfaced through MissingInfo so
// the caller can append it to the rendered output.
func (g *Generator) GenerateWriting(ctx context.Context, templateKind, input string, items []ContextItem, preferences []PreferenceKV) Writing {
	if !g.provider.IsAvailable() {
		return UnavailableWriting()
	}

	instruction, ok := templateInstructions[templateKind]
	if !ok {
		instruction = genericInstruction
	}

	prefBlock := ""
	if block := buildPreferenceBlock(preferences); block != "" {
		prefBlock = "ユーザーの好み: " + block
	}

	contextBlock := buildContextBlock(items, 300)
	if contextBlock == "" {
		contextBlock = "（参照情報なし）"
	}

	userPrompt := fmt.Sprintf("依頼: %s\n\n参照情報:\n%s", input, contextBlock)

	response, err := g.provider.Chat(ctx,
		[]llm.Message{
			{Role: "system", Content: fmt.Sprintf(writingSystemPromptFormat, prefBlock, instruction)},
			{Role: "user", Content: userPrompt},
		},
		llm.WithTemperature(0.6),
		llm.WithMaxTokens(1500),
	)
	if err != nil {
		g.log.Error("generation", "writing generation failed", map[string]interface{}{"error": err.Error(), "template": templateKind})
		return Writing{Output: writingErrorMessage, Citations: []Citation{}, MissingInfo: []string{}}
	}

	var writing Writing
	if err := json.Unmarshal([]byte(stripFence(response)), &writing); err != nil {
		g.log.Warn("generation", "writing response was not valid JSON", map[string]interface{}{"error": err.Error()})
		return Writing{Output: writingErrorMessage, Citations: []Citation{}, MissingInfo: []string{}}
	}

	if writing.Output == "" {
		writing.Output = writingErrorMessage
	}
	if writing.Citations == nil {
		writing.Citations = []Citation{}
	}
	if writing.MissingInfo == nil {
		writing.MissingInfo = []string{}
	}
	return writing
}
