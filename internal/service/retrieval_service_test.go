package service

import (
	"context"
	"strings"
	"testing"

	"memoscribe-be/internal/config"
	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRetrievalService(index IIndexService, noteRepo *fakeNoteRepo, logRepo *fakeLogRepo, docRepo *fakeDocumentRepo, taskRepo *fakeTaskRepo, prefRepo *fakePreferenceRepo) IRetrievalService {
	if noteRepo == nil {
		noteRepo = &fakeNoteRepo{}
	}
	if logRepo == nil {
		logRepo = &fakeLogRepo{}
	}
	if docRepo == nil {
		docRepo = &fakeDocumentRepo{}
	}
	if taskRepo == nil {
		taskRepo = &fakeTaskRepo{}
	}
	if prefRepo == nil {
		prefRepo = &fakePreferenceRepo{}
	}
	defaults := config.PrivacyConfig{
		SendNotes:   true,
		SendDigests: true,
		SendDocs:    true,
		SendRawLogs: false,
		PIIMasking:  true,
	}
	return NewRetrievalService(index, noteRepo, logRepo, docRepo, taskRepo, prefRepo, defaults, true, logger.NewNop())
}

func TestResolveSettingsFallsBackToDefaults(t *testing.T) {
	svc := newTestRetrievalService(&fakeIndexService{}, nil, nil, nil, nil, nil)

	settings, err := svc.ResolveSettings(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, settings.SendNotes)
	assert.True(t, settings.SendDigests)
	assert.True(t, settings.SendDocs)
	assert.False(t, settings.SendRawLogs)
	assert.True(t, settings.PIIMasking)
	assert.True(t, settings.LLMEnabled)
}

func TestResolveSettingsUsesStoredRow(t *testing.T) {
	userId := uuid.New()
	prefRepo := &fakePreferenceRepo{
		findSettings: func(_ context.Context, _ uuid.UUID) (*entity.UserSettings, error) {
			return &entity.UserSettings{UserId: userId, SendNotes: false, PIIMasking: false, LLMEnabled: true}, nil
		},
	}
	svc := newTestRetrievalService(&fakeIndexService{}, nil, nil, nil, nil, prefRepo)

	settings, err := svc.ResolveSettings(context.Background(), userId)
	require.NoError(t, err)
	assert.False(t, settings.SendNotes)
	assert.False(t, settings.PIIMasking)
}

func TestResolveSettingsCachesUntilInvalidated(t *testing.T) {
	prefRepo := &fakePreferenceRepo{}
	svc := newTestRetrievalService(&fakeIndexService{}, nil, nil, nil, nil, prefRepo)

	userId := uuid.New()
	_, err := svc.ResolveSettings(context.Background(), userId)
	require.NoError(t, err)
	_, err = svc.ResolveSettings(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, 1, prefRepo.findSettingsCalls)

	svc.InvalidateSettings(userId)
	_, err = svc.ResolveSettings(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, 2, prefRepo.findSettingsCalls)
}

func TestRetrieveVectorPathMapsRecords(t *testing.T) {
	contentId := uuid.New()
	index := &fakeIndexService{
		searchVector: func(_ context.Context, _ uuid.UUID, _ string, kinds []entity.ContentKind, _ int) ([]*entity.EmbeddingRecord, bool, error) {
			return []*entity.EmbeddingRecord{{
				Id:           uuid.New(),
				ContentKind:  entity.KindNote,
				ContentId:    contentId,
				ContentTitle: "会議メモ",
				ContentText:  "来週の計画",
			}}, true, nil
		},
	}
	svc := newTestRetrievalService(index, nil, nil, nil, nil, nil)

	items, err := svc.Retrieve(context.Background(), uuid.New(), "会議", 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, contentId.String(), items[0].ID)
	assert.Equal(t, "note", items[0].Kind)
	assert.Equal(t, "会議メモ", items[0].Title)
	assert.Equal(t, "来週の計画", items[0].Content)
}

func TestRetrieveRestrictsKindsByPrivacySettings(t *testing.T) {
	userId := uuid.New()
	prefRepo := &fakePreferenceRepo{
		findSettings: func(_ context.Context, _ uuid.UUID) (*entity.UserSettings, error) {
			return &entity.UserSettings{UserId: userId, SendNotes: false, SendDigests: true, SendDocs: false, LLMEnabled: true}, nil
		},
	}
	var gotKinds []entity.ContentKind
	index := &fakeIndexService{
		searchVector: func(_ context.Context, _ uuid.UUID, _ string, kinds []entity.ContentKind, _ int) ([]*entity.EmbeddingRecord, bool, error) {
			gotKinds = kinds
			return nil, true, nil
		},
	}
	svc := newTestRetrievalService(index, nil, nil, nil, nil, prefRepo)

	_, err := svc.Retrieve(context.Background(), userId, "query", 5)
	require.NoError(t, err)
	assert.ElementsMatch(t, []entity.ContentKind{entity.KindTask, entity.KindPreference, entity.KindDigest}, gotKinds)
}

func TestRetrieveKeywordFallbackSkipsDisallowedKinds(t *testing.T) {
	userId := uuid.New()
	prefRepo := &fakePreferenceRepo{
		findSettings: func(_ context.Context, _ uuid.UUID) (*entity.UserSettings, error) {
			return &entity.UserSettings{UserId: userId, SendNotes: false, SendDigests: false, SendDocs: false, LLMEnabled: true}, nil
		},
	}
	noteCalled := false
	noteRepo := &fakeNoteRepo{
		searchKeyword: func(_ context.Context, _ uuid.UUID, _ string, _ int) ([]*entity.Note, error) {
			noteCalled = true
			return nil, nil
		},
	}
	taskRepo := &fakeTaskRepo{
		searchKeyword: func(_ context.Context, _ uuid.UUID, _ string, _ int) ([]*entity.Task, error) {
			return []*entity.Task{{Id: uuid.New(), Title: "レポート提出", Status: "todo"}}, nil
		},
	}
	svc := newTestRetrievalService(&fakeIndexService{}, noteRepo, nil, nil, taskRepo, prefRepo)

	items, err := svc.Retrieve(context.Background(), userId, "レポート", 5)
	require.NoError(t, err)
	assert.False(t, noteCalled)
	require.Len(t, items, 1)
	assert.Equal(t, "task", items[0].Kind)
}

func TestRetrieveVectorPathMasksPerCurrentPolicy(t *testing.T) {
	// Indexed while masking was off, retrieved while masking is on.
	index := &fakeIndexService{
		searchVector: func(_ context.Context, _ uuid.UUID, _ string, _ []entity.ContentKind, _ int) ([]*entity.EmbeddingRecord, bool, error) {
			return []*entity.EmbeddingRecord{{
				Id:           uuid.New(),
				ContentKind:  entity.KindNote,
				ContentId:    uuid.New(),
				ContentTitle: "連絡先",
				ContentText:  "メールは taro@example.com です",
			}}, true, nil
		},
	}
	svc := newTestRetrievalService(index, nil, nil, nil, nil, nil)

	items, err := svc.Retrieve(context.Background(), uuid.New(), "連絡", 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotContains(t, items[0].Content, "taro@example.com")
	assert.Contains(t, items[0].Content, "[EMAIL]")
}

func TestRetrieveVectorPathKeepsTextWhenMaskingOff(t *testing.T) {
	prefRepo := &fakePreferenceRepo{
		findSettings: func(_ context.Context, userId uuid.UUID) (*entity.UserSettings, error) {
			return &entity.UserSettings{UserId: userId, SendNotes: true, PIIMasking: false, LLMEnabled: true}, nil
		},
	}
	index := &fakeIndexService{
		searchVector: func(_ context.Context, _ uuid.UUID, _ string, _ []entity.ContentKind, _ int) ([]*entity.EmbeddingRecord, bool, error) {
			return []*entity.EmbeddingRecord{{
				Id:          uuid.New(),
				ContentKind: entity.KindNote,
				ContentId:   uuid.New(),
				ContentText: "メールは taro@example.com です",
			}}, true, nil
		},
	}
	svc := newTestRetrievalService(index, nil, nil, nil, nil, prefRepo)

	items, err := svc.Retrieve(context.Background(), uuid.New(), "連絡", 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Content, "taro@example.com")
}

func TestRetrieveCapsContextItemLength(t *testing.T) {
	long := strings.Repeat("あ", 2000)
	index := &fakeIndexService{
		searchVector: func(_ context.Context, _ uuid.UUID, _ string, _ []entity.ContentKind, _ int) ([]*entity.EmbeddingRecord, bool, error) {
			return []*entity.EmbeddingRecord{{
				Id:          uuid.New(),
				ContentKind: entity.KindNote,
				ContentId:   uuid.New(),
				ContentText: long,
			}}, true, nil
		},
	}
	noteRepo := &fakeNoteRepo{
		searchKeyword: func(_ context.Context, _ uuid.UUID, _ string, _ int) ([]*entity.Note, error) {
			return []*entity.Note{{Id: uuid.New(), Title: "長文メモ", Body: long}}, nil
		},
	}

	vectorSvc := newTestRetrievalService(index, nil, nil, nil, nil, nil)
	items, err := vectorSvc.Retrieve(context.Background(), uuid.New(), "メモ", 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.LessOrEqual(t, len([]rune(items[0].Content)), 500)

	fallbackSvc := newTestRetrievalService(&fakeIndexService{}, noteRepo, nil, nil, nil, nil)
	items, err = fallbackSvc.Retrieve(context.Background(), uuid.New(), "メモ", 5)
	require.NoError(t, err)
	require.NotEmpty(t, items)
	assert.LessOrEqual(t, len([]rune(items[0].Content)), 500)
}

func TestRetrieveKeywordFallbackMasksItems(t *testing.T) {
	noteRepo := &fakeNoteRepo{
		searchKeyword: func(_ context.Context, _ uuid.UUID, _ string, _ int) ([]*entity.Note, error) {
			return []*entity.Note{{Id: uuid.New(), Title: "連絡先", Body: "taro@example.com に送る"}}, nil
		},
	}
	svc := newTestRetrievalService(&fakeIndexService{}, noteRepo, nil, nil, nil, nil)

	items, err := svc.Retrieve(context.Background(), uuid.New(), "連絡", 5)
	require.NoError(t, err)
	require.NotEmpty(t, items)
	for _, item := range items {
		assert.NotContains(t, item.Content, "taro@example.com")
	}
}

func TestRetrieveKeywordFallbackHonorsBudget(t *testing.T) {
	manyNotes := func(_ context.Context, _ uuid.UUID, _ string, limit int) ([]*entity.Note, error) {
		notes := make([]*entity.Note, 0, limit)
		for i := 0; i < limit; i++ {
			notes = append(notes, &entity.Note{Id: uuid.New(), Title: "メモ", Body: "本文"})
		}
		return notes, nil
	}
	manyTasks := func(_ context.Context, _ uuid.UUID, _ string, limit int) ([]*entity.Task, error) {
		tasks := make([]*entity.Task, 0, limit)
		for i := 0; i < limit; i++ {
			tasks = append(tasks, &entity.Task{Id: uuid.New(), Title: "作業", Status: "todo"})
		}
		return tasks, nil
	}
	svc := newTestRetrievalService(&fakeIndexService{},
		&fakeNoteRepo{searchKeyword: manyNotes}, nil, nil,
		&fakeTaskRepo{searchKeyword: manyTasks}, nil)

	items, err := svc.Retrieve(context.Background(), uuid.New(), "メモ", 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(items), 2)
}

func TestGetPreferences(t *testing.T) {
	prefRepo := &fakePreferenceRepo{
		findAllByUser: func(_ context.Context, _ uuid.UUID) ([]*entity.Preference, error) {
			return []*entity.Preference{
				{Id: uuid.New(), Key: "文体", Value: "丁寧語"},
				{Id: uuid.New(), Key: "起床時間", Value: "6時"},
			}, nil
		},
	}
	svc := newTestRetrievalService(&fakeIndexService{}, nil, nil, nil, nil, prefRepo)

	kvs, err := svc.GetPreferences(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, kvs, 2)
	assert.Equal(t, "文体", kvs[0].Key)
	assert.Equal(t, "丁寧語", kvs[0].Value)
}
