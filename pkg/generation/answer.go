package generation

import (
	"context"
	"encoding/json"
	"fmt"

	"memoscribe-be/pkg/llm"
)

// Fixed user-visible messages for the unavailable and error paths.
const (
	answerUnavailableMessage = "LLMが有効化されていないため、回答を生成できません。設定からLLMを有効化してください。"
	answerErrorMessage       = "申し訳ありません。回答の生成中にエラーが発生しました。"
)

const answerSystemPromptFormat = `あなたは個人専用の秘書です。以下のルールを厳守してください：

1. 根拠のない断定は禁止。提供されたコンテキストに基づいてのみ回答する。
2. コンテキストにない情報は創作しない。不明な点は明示する。
3. 情報が不足している場合は、追加質問を列挙する。
4. 丁寧で現実的な回答を心がける。
%s

回答は以下のJSON形式で返してください：
{
    "answer": "回答本文（根拠を[1][2]のように引用番号で示す）",
    "next_questions": ["追加で必要な質問1", "追加で必要な質問2"],
    "citations": [
        {"ref": 1, "type": "種類", "title": "タイトル", "quote": "引用部分"}
    ]
}

- answerでは、根拠となる情報源を[1]のように番号で参照する
- 根拠が不足している場合は「情報が不足しています」と明示
- citationsには実際に参照した情報のみを含める`

// UnavailableAnswer is the fixed payload returned when generation is
// disabled for the user or the process.
func UnavailableAnswer() Answer {
	return Answer{
		Answer:        answerUnavailableMessage,
		NextQuestions: []string{},
		Citations:     []Citation{},
	}
}

// GenerateAnswer answers a question grounded in the retrieved context
// items. Citations reference context items by their 1-indexed position in
// the prompt. Interactive path: a single failure returns the error payload
// immediately, no retry.
func (g *Generator) GenerateAnswer(ctx context.Context, question string, items []ContextItem, preferences []PreferenceKV) Answer {
	if !g.provider.IsAvailable() {
		return UnavailableAnswer()
	}

	prefBlock := ""
	if block := buildPreferenceBlock(preferences); block != "" {
		prefBlock = "\nユーザーの好み/ポリシー:\n" + block
	}

	contextBlock := buildContextBlock(items, 500)
	if contextBlock == "" {
		contextBlock = "（参照可能な情報がありません）"
	}

	userPrompt := fmt.Sprintf("質問: %s\n\n参照可能なコンテキスト:\n%s\n", question, contextBlock)

	response, err := g.provider.Chat(ctx,
		[]llm.Message{
			{Role: "system", Content: fmt.Sprintf(answerSystemPromptFormat, prefBlock)},
			{Role: "user", Content: userPrompt},
		},
		llm.WithTemperature(0.5),
		llm.WithMaxTokens(1500),
	)
	if err != nil {
		g.log.Error("generation", "answer generation failed", map[string]interface{}{"error": err.Error()})
		return Answer{Answer: answerErrorMessage, NextQuestions: []string{}, Citations: []Citation{}}
	}

	cleaned := stripFence(response)

	var answer Answer
	if err := json.Unmarshal([]byte(cleaned), &answer); err != nil {
		// Malformed JSON: surface the raw text as the answer rather than
		// failing the interaction.
		g.log.Warn("generation", "answer response was not valid JSON, using raw text", map[string]interface{}{"error": err.Error()})
		return Answer{Answer: cleaned, NextQuestions: []string{}, Citations: []Citation{}}
	}

	if answer.Answer == "" {
		answer.Answer = cleaned
	}
	if answer.NextQuestions == nil {
		answer.NextQuestions = []string{}
	}
	if answer.Citations == nil {
		answer.Citations = []Citation{}
	}
	return answer
}
