package generation

import (
	"context"
	"errors"
	"testing"

	"memoscribe-be/internal/pkg/logger"
	"memoscribe-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

type fakeProvider struct {
	available bool
	response  string
	err       error
	messages  []llm.Message
}

func (f *fakeProvider) IsAvailable() bool {
	return f.available
}

func (f *fakeProvider) Chat(_ context.Context, messages []llm.Message, _ ...llm.Option) (string, error) {
	f.messages = messages
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeProvider) Embed(_ context.Context, _ string) ([]float32, error) {
	return nil, nil
}

func newTestGenerator(provider llm.Provider) *Generator {
	return NewGenerator(provider, logger.NewNop())
}

func TestGenerateDigestFallbackWhenUnavailable(t *testing.T) {
	g := newTestGenerator(&fakeProvider{available: false})

	text := "朝は散歩した。昼は会議だった。夜は読書した。明日も続ける。"
	digest := g.GenerateDigest(context.Background(), text)

	assert.Equal(t, "朝は散歩した。昼は会議だった。夜は読書した。", digest.Summary)
	assert.NotNil(t, digest.Tags)
	assert.NotNil(t, digest.Topics)
	assert.Empty(t, digest.Actions)

	// Deterministic: the same text always produces the same digest.
	again := g.GenerateDigest(context.Background(), text)
	assert.Equal(t, digest, again)
}

func TestGenerateDigestParsesResponse(t *testing.T) {
	provider := &fakeProvider{
		available: true,
		response:  `{"summary": "散歩と会議の一日。", "tags": ["散歩", "会議"], "topics": ["日常"], "actions": ["明日も散歩する"]}`,
	}
	g := newTestGenerator(provider)

	digest := g.GenerateDigest(context.Background(), "朝は散歩した。昼は会議だった。")

	assert.Equal(t, "散歩と会議の一日。", digest.Summary)
	assert.Equal(t, []string{"散歩", "会議"}, digest.Tags)
	assert.Equal(t, []string{"日常"}, digest.Topics)
	assert.Equal(t, []string{"明日も散歩する"}, digest.Actions)
}

func TestGenerateDigestFallbackOnMalformedJSON(t *testing.T) {
	provider := &fakeProvider{available: true, response: "これはJSONではありません"}
	g := newTestGenerator(provider)

	digest := g.GenerateDigest(context.Background(), "朝は散歩した。昼は会議だった。")

	assert.Equal(t, "朝は散歩した。昼は会議だった。", digest.Summary)
	assert.Empty(t, digest.Actions)
}

func TestGenerateDigestStripsCodeFence(t *testing.T) {
	provider := &fakeProvider{
		available: true,
		response:  "```json\n{\"summary\": \"要約。\", \"tags\": [], \"topics\": [], \"actions\": []}\n```",
	}
	g := newTestGenerator(provider)

	digest := g.GenerateDigest(context.Background(), "何か書いた。")
	assert.Equal(t, "要約。", digest.Summary)
}

func TestGenerateDigestDefaultFillsMissingKeys(t *testing.T) {
	provider := &fakeProvider{available: true, response: `{"summary": "要約のみ。"}`}
	g := newTestGenerator(provider)

	digest := g.GenerateDigest(context.Background(), "テキスト。")

	assert.Equal(t, "要約のみ。", digest.Summary)
	assert.NotNil(t, digest.Tags)
	assert.NotNil(t, digest.Topics)
	assert.NotNil(t, digest.Actions)
}

func TestGenerateAnswerUnavailable(t *testing.T) {
	g := newTestGenerator(&fakeProvider{available: false})

	answer := g.GenerateAnswer(context.Background(), "質問", nil, nil)

	assert.Equal(t, answerUnavailableMessage, answer.Answer)
	assert.Empty(t, answer.Citations)
	assert.Empty(t, answer.NextQuestions)
}

func TestGenerateAnswerParsesCitations(t *testing.T) {
	provider := &fakeProvider{
		available: true,
		response:  `{"answer": "散歩が好きです[1]", "next_questions": ["他には？"], "citations": [{"ref": 1, "type": "note", "title": "日記", "quote": "散歩した"}]}`,
	}
	g := newTestGenerator(provider)

	items := []ContextItem{{ID: "a", Kind: "note", Title: "日記", Content: "散歩した"}}
	answer := g.GenerateAnswer(context.Background(), "趣味は？", items, nil)

	assert.Equal(t, "散歩が好きです[1]", answer.Answer)
	assert.Len(t, answer.Citations, 1)
	assert.Equal(t, 1, answer.Citations[0].Ref)
	assert.Equal(t, "note", answer.Citations[0].Kind)
	assert.Equal(t, []string{"他には？"}, answer.NextQuestions)
}

func TestGenerateAnswerErrorPath(t *testing.T) {
	provider := &fakeProvider{available: true, err: errors.New("boom")}
	g := newTestGenerator(provider)

	answer := g.GenerateAnswer(context.Background(), "質問", nil, nil)
	assert.Equal(t, answerErrorMessage, answer.Answer)
}

func TestGenerateAnswerRawTextOnMalformedJSON(t *testing.T) {
	provider := &fakeProvider{available: true, response: "自由形式の回答です"}
	g := newTestGenerator(provider)

	answer := g.GenerateAnswer(context.Background(), "質問", nil, nil)
	assert.Equal(t, "自由形式の回答です", answer.Answer)
	assert.Empty(t, answer.Citations)
}

func TestGenerateAnswerEmptyContextMarker(t *testing.T) {
	provider := &fakeProvider{available: true, response: `{"answer": "ok"}`}
	g := newTestGenerator(provider)

	g.GenerateAnswer(context.Background(), "質問", nil, nil)

	assert.Len(t, provider.messages, 2)
	assert.Contains(t, provider.messages[1].Content, "（参照可能な情報がありません）")
}

func TestGenerateAnswerContextIsCapped(t *testing.T) {
	provider := &fakeProvider{available: true, response: `{"answer": "ok"}`}
	g := newTestGenerator(provider)

	long := make([]rune, 2000)
	for i := range long {
		long[i] = 'x'
	}
	items := []ContextItem{{ID: "a", Kind: "note", Title: "長文", Content: string(long)}}

	g.GenerateAnswer(context.Background(), "質問", items, nil)

	// 500-rune cap per item; the 2000-rune source must not appear whole.
	assert.NotContains(t, provider.messages[1].Content, string(long))
}

func TestGenerateWritingUnavailable(t *testing.T) {
	g := newTestGenerator(&fakeProvider{available: false})

	writing := g.GenerateWriting(context.Background(), "email_polite", "挨拶メール", nil, nil)
	assert.Equal(t, writingUnavailableMessage, writing.Output)
}

func TestGenerateWritingUsesTemplateInstruction(t *testing.T) {
	provider := &fakeProvider{available: true, response: `{"output": "本文", "citations": [], "missing_info": []}`}
	g := newTestGenerator(provider)

	g.GenerateWriting(context.Background(), "email_polite", "挨拶メール", nil, nil)
	assert.Contains(t, provider.messages[0].Content, templateInstructions["email_polite"])

	// Unknown kinds fall back to the generic instruction.
	g.GenerateWriting(context.Background(), "unknown_kind", "何か", nil, nil)
	assert.Contains(t, provider.messages[0].Content, genericInstruction)
}

func TestGenerateWritingMissingInfo(t *testing.T) {
	provider := &fakeProvider{
		available: true,
		response:  `{"output": "宛先不明のメール", "citations": [], "missing_info": ["宛先の名前"]}`,
	}
	g := newTestGenerator(provider)

	writing := g.GenerateWriting(context.Background(), "email_polite", "メール", nil, nil)
	assert.Equal(t, []string{"宛先の名前"}, writing.MissingInfo)
}

func TestGenerateWritingErrorOnMalformedJSON(t *testing.T) {
	provider := &fakeProvider{available: true, response: "not json"}
	g := newTestGenerator(provider)

	writing := g.GenerateWriting(context.Background(), "rewrite_short", "文章", nil, nil)
	assert.Equal(t, writingErrorMessage, writing.Output)
}

func TestBuildContextBlockNumbering(t *testing.T) {
	items := []ContextItem{
		{Kind: "note", Title: "一", Content: "あ"},
		{Kind: "task", Title: "二", Content: "い"},
	}
	block := buildContextBlock(items, 500)

	assert.Contains(t, block, "[1] (note) 一:")
	assert.Contains(t, block, "[2] (task) 二:")
}

func TestStripFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFence(`{"a":1}`))
}
