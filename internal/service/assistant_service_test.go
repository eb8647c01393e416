package service

import (
	"context"
	"testing"

	"memoscribe-be/internal/dto"
	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/pkg/logger"
	"memoscribe-be/internal/repository/specification"
	"memoscribe-be/pkg/generation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatRepo struct {
	sessions []*entity.ChatSession
	messages []*entity.ChatMessage

	findSession func(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	deleted     []uuid.UUID
}

func (f *fakeChatRepo) CreateSession(_ context.Context, session *entity.ChatSession) error {
	f.sessions = append(f.sessions, session)
	return nil
}
func (f *fakeChatRepo) UpdateSession(context.Context, *entity.ChatSession) error { return nil }
func (f *fakeChatRepo) DeleteSession(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}
func (f *fakeChatRepo) FindSession(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	if f.findSession != nil {
		return f.findSession(ctx, specs...)
	}
	return nil, nil
}
func (f *fakeChatRepo) FindSessions(context.Context, uuid.UUID) ([]*entity.ChatSession, error) {
	return f.sessions, nil
}
func (f *fakeChatRepo) CreateMessage(_ context.Context, message *entity.ChatMessage) error {
	f.messages = append(f.messages, message)
	return nil
}
func (f *fakeChatRepo) FindMessages(context.Context, uuid.UUID) ([]*entity.ChatMessage, error) {
	return f.messages, nil
}
func (f *fakeChatRepo) CountMessages(context.Context, uuid.UUID) (int64, error) {
	return int64(len(f.messages)), nil
}

func newTestAssistantService(retrieval IRetrievalService, chatRepo *fakeChatRepo, provider *fakeLLMProvider) IAssistantService {
	return NewAssistantService(retrieval, generation.NewGenerator(provider, logger.NewNop()), chatRepo, nil, logger.NewNop())
}

func TestAskCreatesSessionWithTruncatedTitle(t *testing.T) {
	chatRepo := &fakeChatRepo{}
	retrieval := &fakeRetrievalService{settings: &entity.UserSettings{LLMEnabled: false}}
	svc := newTestAssistantService(retrieval, chatRepo, &fakeLLMProvider{available: false})

	question := "今週のタスクの中で一番優先度が高いものはどれですか、理由も含めて教えてください"
	res, err := svc.Ask(context.Background(), uuid.New(), &dto.AskRequest{Question: question})
	require.NoError(t, err)

	require.Len(t, chatRepo.sessions, 1)
	assert.LessOrEqual(t, len([]rune(chatRepo.sessions[0].Title)), sessionTitleLimit+len([]rune("...")))
	assert.Equal(t, chatRepo.sessions[0].Id, res.SessionId)
}

func TestAskUnavailablePersistsBothMessages(t *testing.T) {
	chatRepo := &fakeChatRepo{}
	retrieval := &fakeRetrievalService{settings: &entity.UserSettings{LLMEnabled: false}}
	svc := newTestAssistantService(retrieval, chatRepo, &fakeLLMProvider{available: false})

	res, err := svc.Ask(context.Background(), uuid.New(), &dto.AskRequest{Question: "今日の予定は？"})
	require.NoError(t, err)

	assert.Equal(t, generation.UnavailableAnswer().Answer, res.Answer)
	assert.Zero(t, res.ContextUsed)
	require.Len(t, chatRepo.messages, 2)
	assert.Equal(t, "user", chatRepo.messages[0].Role)
	assert.Equal(t, "今日の予定は？", chatRepo.messages[0].Content)
	assert.Equal(t, "assistant", chatRepo.messages[1].Role)
}

func TestAskUnknownSessionReturnsNotFound(t *testing.T) {
	chatRepo := &fakeChatRepo{}
	retrieval := &fakeRetrievalService{settings: &entity.UserSettings{LLMEnabled: false}}
	svc := newTestAssistantService(retrieval, chatRepo, &fakeLLMProvider{available: false})

	sessionId := uuid.New()
	_, err := svc.Ask(context.Background(), uuid.New(), &dto.AskRequest{Question: "q", SessionId: &sessionId})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAskGeneratesAnswerFromContext(t *testing.T) {
	chatRepo := &fakeChatRepo{}
	retrieval := &fakeRetrievalService{
		settings: &entity.UserSettings{LLMEnabled: true},
		items: []generation.ContextItem{
			{ID: uuid.New().String(), Kind: "note", Title: "会議メモ", Content: "金曜までにレポート提出"},
		},
	}
	provider := &fakeLLMProvider{
		available: true,
		response:  `{"answer": "金曜までにレポートを提出してください [1]", "next_questions": ["リマインダーを設定しますか？"], "citations": [{"ref": 1, "type": "note", "title": "会議メモ", "quote": "金曜までにレポート提出"}]}`,
	}
	svc := newTestAssistantService(retrieval, chatRepo, provider)

	res, err := svc.Ask(context.Background(), uuid.New(), &dto.AskRequest{Question: "締切はいつ？"})
	require.NoError(t, err)

	assert.Contains(t, res.Answer, "金曜までに")
	assert.Equal(t, 1, res.ContextUsed)
	require.Len(t, res.Citations, 1)
	assert.Equal(t, 1, res.Citations[0].Ref)
	assert.Equal(t, []string{"リマインダーを設定しますか？"}, res.NextQuestions)

	require.Len(t, chatRepo.messages, 2)
	assert.Len(t, chatRepo.messages[1].Citations, 1)
}

func TestWriteAppendsMissingInfoBlock(t *testing.T) {
	retrieval := &fakeRetrievalService{settings: &entity.UserSettings{LLMEnabled: true}}
	provider := &fakeLLMProvider{
		available: true,
		response:  `{"output": "お世話になっております。", "citations": [], "missing_info": ["宛先の名前", "希望日時"]}`,
	}
	svc := newTestAssistantService(retrieval, &fakeChatRepo{}, provider)

	res, err := svc.Write(context.Background(), uuid.New(), &dto.WriteRequest{Instruction: "丁寧なメールを書いて", TemplateKind: "email_polite"})
	require.NoError(t, err)

	assert.Contains(t, res.Output, "お世話になっております。")
	assert.Contains(t, res.Output, "【不足情報】")
	assert.Contains(t, res.Output, "- 宛先の名前")
	assert.Contains(t, res.Output, "- 希望日時")
	assert.Equal(t, []string{"宛先の名前", "希望日時"}, res.MissingInfo)
}

func TestWriteUnavailable(t *testing.T) {
	retrieval := &fakeRetrievalService{settings: &entity.UserSettings{LLMEnabled: false}}
	svc := newTestAssistantService(retrieval, &fakeChatRepo{}, &fakeLLMProvider{available: false})

	res, err := svc.Write(context.Background(), uuid.New(), &dto.WriteRequest{Instruction: "メールを書いて"})
	require.NoError(t, err)
	assert.Equal(t, generation.UnavailableWriting().Output, res.Output)
	assert.NotContains(t, res.Output, "【不足情報】")
}

func TestSearchTruncatesSnippets(t *testing.T) {
	long := make([]rune, 0, 600)
	for i := 0; i < 600; i++ {
		long = append(long, 'あ')
	}
	retrieval := &fakeRetrievalService{
		settings: &entity.UserSettings{LLMEnabled: true},
		items: []generation.ContextItem{
			{ID: uuid.New().String(), Kind: "chunk", Title: "資料", Content: string(long)},
		},
	}
	svc := newTestAssistantService(retrieval, &fakeChatRepo{}, &fakeLLMProvider{available: false})

	results, err := svc.Search(context.Background(), uuid.New(), &dto.SearchRequest{Query: "検索"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.LessOrEqual(t, len([]rune(results[0].Snippet)), 200+len([]rune("...")))
	assert.Equal(t, "chunk", results[0].ContentKind)
}

func TestDeleteSessionScopedToUser(t *testing.T) {
	chatRepo := &fakeChatRepo{}
	retrieval := &fakeRetrievalService{settings: &entity.UserSettings{}}
	svc := newTestAssistantService(retrieval, chatRepo, &fakeLLMProvider{})

	err := svc.DeleteSession(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, chatRepo.deleted)

	sessionId := uuid.New()
	chatRepo.findSession = func(_ context.Context, _ ...specification.Specification) (*entity.ChatSession, error) {
		return &entity.ChatSession{Id: sessionId}, nil
	}
	require.NoError(t, svc.DeleteSession(context.Background(), uuid.New(), sessionId))
	assert.Equal(t, []uuid.UUID{sessionId}, chatRepo.deleted)
}
