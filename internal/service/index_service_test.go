package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexServiceUpsertMasksPII(t *testing.T) {
	repo := &fakeEmbeddingRepo{}
	svc := NewIndexService(repo, &fakeLLMProvider{available: false}, logger.NewNop())

	userId := uuid.New()
	contentId := uuid.New()
	err := svc.UpsertContent(context.Background(), userId, entity.KindNote, contentId,
		"連絡先", "メールは taro@example.com です", true)
	require.NoError(t, err)

	require.Len(t, repo.upserted, 1)
	record := repo.upserted[0]
	assert.Equal(t, userId, record.UserId)
	assert.Equal(t, entity.KindNote, record.ContentKind)
	assert.Equal(t, contentId, record.ContentId)
	assert.NotContains(t, record.ContentText, "taro@example.com")
	assert.Contains(t, record.ContentText, "[EMAIL]")
	assert.Nil(t, record.Vector)
}

func TestIndexServiceUpsertKeepsTextWhenMaskingOff(t *testing.T) {
	repo := &fakeEmbeddingRepo{}
	svc := NewIndexService(repo, &fakeLLMProvider{available: false}, logger.NewNop())

	err := svc.UpsertContent(context.Background(), uuid.New(), entity.KindNote, uuid.New(),
		"連絡先", "メールは taro@example.com です", false)
	require.NoError(t, err)

	require.Len(t, repo.upserted, 1)
	assert.Contains(t, repo.upserted[0].ContentText, "taro@example.com")
}

func TestIndexServiceUpsertEmbedsWhenAvailable(t *testing.T) {
	repo := &fakeEmbeddingRepo{}
	provider := &fakeLLMProvider{available: true, vector: []float32{0.1, 0.2, 0.3}}
	svc := NewIndexService(repo, provider, logger.NewNop())

	err := svc.UpsertContent(context.Background(), uuid.New(), entity.KindTask, uuid.New(),
		"買い物", "牛乳を買う", false)
	require.NoError(t, err)

	require.Len(t, repo.upserted, 1)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, repo.upserted[0].Vector)
}

func TestIndexServiceUpsertSurvivesEmbedError(t *testing.T) {
	repo := &fakeEmbeddingRepo{}
	provider := &fakeLLMProvider{available: true, embedErr: errors.New("rate limited")}
	svc := NewIndexService(repo, provider, logger.NewNop())

	err := svc.UpsertContent(context.Background(), uuid.New(), entity.KindNote, uuid.New(),
		"タイトル", "本文", false)
	require.NoError(t, err)

	require.Len(t, repo.upserted, 1)
	assert.Nil(t, repo.upserted[0].Vector)
}

func TestIndexServiceUpsertBoundsStoredText(t *testing.T) {
	repo := &fakeEmbeddingRepo{}
	svc := NewIndexService(repo, &fakeLLMProvider{available: false}, logger.NewNop())

	long := strings.Repeat("あ", storedTextLimit+500)
	err := svc.UpsertContent(context.Background(), uuid.New(), entity.KindNote, uuid.New(), "長文", long, false)
	require.NoError(t, err)

	require.Len(t, repo.upserted, 1)
	assert.LessOrEqual(t, len([]rune(repo.upserted[0].ContentText)), storedTextLimit)
}

func TestIndexServiceSearchVectorUnavailableProvider(t *testing.T) {
	svc := NewIndexService(&fakeEmbeddingRepo{}, &fakeLLMProvider{available: false}, logger.NewNop())

	records, ok, err := svc.SearchVector(context.Background(), uuid.New(), "query", entity.AllKinds(), 8)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, records)
}

func TestIndexServiceSearchVectorEmbedError(t *testing.T) {
	provider := &fakeLLMProvider{available: true, embedErr: errors.New("timeout")}
	svc := NewIndexService(&fakeEmbeddingRepo{}, provider, logger.NewNop())

	_, ok, err := svc.SearchVector(context.Background(), uuid.New(), "query", entity.AllKinds(), 8)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIndexServiceSearchVectorNoAllowedKinds(t *testing.T) {
	provider := &fakeLLMProvider{available: true, vector: []float32{0.5}}
	svc := NewIndexService(&fakeEmbeddingRepo{}, provider, logger.NewNop())

	records, ok, err := svc.SearchVector(context.Background(), uuid.New(), "query", nil, 8)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, records)
}

func TestIndexServiceSearchVectorPassesKindsAndLimit(t *testing.T) {
	want := []*entity.EmbeddingRecord{{Id: uuid.New(), ContentTitle: "一件目"}}
	var gotKinds []entity.ContentKind
	var gotLimit int
	repo := &fakeEmbeddingRepo{
		searchNearest: func(_ context.Context, _ uuid.UUID, _ []float32, kinds []entity.ContentKind, limit int) ([]*entity.EmbeddingRecord, error) {
			gotKinds = kinds
			gotLimit = limit
			return want, nil
		},
	}
	provider := &fakeLLMProvider{available: true, vector: []float32{0.5}}
	svc := NewIndexService(repo, provider, logger.NewNop())

	kinds := []entity.ContentKind{entity.KindTask, entity.KindPreference}
	records, ok, err := svc.SearchVector(context.Background(), uuid.New(), "牛乳", kinds, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, records)
	assert.Equal(t, kinds, gotKinds)
	assert.Equal(t, defaultSearchLimit, gotLimit)
}

func TestIndexServiceDeleteContent(t *testing.T) {
	repo := &fakeEmbeddingRepo{}
	svc := NewIndexService(repo, &fakeLLMProvider{}, logger.NewNop())

	contentId := uuid.New()
	require.NoError(t, svc.DeleteContent(context.Background(), entity.KindChunk, contentId))
	assert.Equal(t, []uuid.UUID{contentId}, repo.deleted)
}
