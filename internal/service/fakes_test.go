package service

import (
	"context"

	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/repository/specification"
	"memoscribe-be/pkg/generation"
	"memoscribe-be/pkg/llm"

	"github.com/google/uuid"
)

// Hand-rolled fakes: function fields override behavior per test, untouched
// methods return zero values.

type fakeNoteRepo struct {
	findOne       func(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	searchKeyword func(ctx context.Context, userId uuid.UUID, query string, limit int) ([]*entity.Note, error)
}

func (f *fakeNoteRepo) Save(context.Context, *entity.Note) error { return nil }
func (f *fakeNoteRepo) Delete(context.Context, uuid.UUID) error  { return nil }
func (f *fakeNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	if f.findOne != nil {
		return f.findOne(ctx, specs...)
	}
	return nil, nil
}
func (f *fakeNoteRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Note, error) {
	return nil, nil
}
func (f *fakeNoteRepo) SearchKeyword(ctx context.Context, userId uuid.UUID, query string, limit int) ([]*entity.Note, error) {
	if f.searchKeyword != nil {
		return f.searchKeyword(ctx, userId, query, limit)
	}
	return nil, nil
}

type fakeLogRepo struct {
	findOne         func(ctx context.Context, specs ...specification.Specification) (*entity.DailyLog, error)
	upsertDigest    func(ctx context.Context, digest *entity.DailyDigest) error
	findDigestByLog func(ctx context.Context, logId uuid.UUID) (*entity.DailyDigest, error)
	searchDigests   func(ctx context.Context, userId uuid.UUID, query string, limit int) ([]*entity.DailyDigest, error)
}

func (f *fakeLogRepo) Save(context.Context, *entity.DailyLog) error { return nil }
func (f *fakeLogRepo) Delete(context.Context, uuid.UUID) error      { return nil }
func (f *fakeLogRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DailyLog, error) {
	if f.findOne != nil {
		return f.findOne(ctx, specs...)
	}
	return nil, nil
}
func (f *fakeLogRepo) UpsertDigest(ctx context.Context, digest *entity.DailyDigest) error {
	if f.upsertDigest != nil {
		return f.upsertDigest(ctx, digest)
	}
	return nil
}
func (f *fakeLogRepo) FindDigest(context.Context, ...specification.Specification) (*entity.DailyDigest, error) {
	return nil, nil
}
func (f *fakeLogRepo) FindDigestByLog(ctx context.Context, logId uuid.UUID) (*entity.DailyDigest, error) {
	if f.findDigestByLog != nil {
		return f.findDigestByLog(ctx, logId)
	}
	return nil, nil
}
func (f *fakeLogRepo) SearchDigestsKeyword(ctx context.Context, userId uuid.UUID, query string, limit int) ([]*entity.DailyDigest, error) {
	if f.searchDigests != nil {
		return f.searchDigests(ctx, userId, query, limit)
	}
	return nil, nil
}

type fakeDocumentRepo struct {
	findOne       func(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	save          func(ctx context.Context, doc *entity.Document) error
	replaceChunks func(ctx context.Context, documentId uuid.UUID, chunks []*entity.DocumentChunk) error
	findChunks    func(ctx context.Context, documentId uuid.UUID) ([]*entity.DocumentChunk, error)
	searchChunks  func(ctx context.Context, userId uuid.UUID, query string, limit int) ([]*entity.DocumentChunk, error)
}

func (f *fakeDocumentRepo) Save(ctx context.Context, doc *entity.Document) error {
	if f.save != nil {
		return f.save(ctx, doc)
	}
	return nil
}
func (f *fakeDocumentRepo) Delete(context.Context, uuid.UUID) error { return nil }
func (f *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	if f.findOne != nil {
		return f.findOne(ctx, specs...)
	}
	return nil, nil
}
func (f *fakeDocumentRepo) ReplaceChunks(ctx context.Context, documentId uuid.UUID, chunks []*entity.DocumentChunk) error {
	if f.replaceChunks != nil {
		return f.replaceChunks(ctx, documentId, chunks)
	}
	return nil
}
func (f *fakeDocumentRepo) FindChunk(context.Context, uuid.UUID) (*entity.DocumentChunk, error) {
	return nil, nil
}
func (f *fakeDocumentRepo) FindChunks(ctx context.Context, documentId uuid.UUID) ([]*entity.DocumentChunk, error) {
	if f.findChunks != nil {
		return f.findChunks(ctx, documentId)
	}
	return nil, nil
}
func (f *fakeDocumentRepo) SearchChunksKeyword(ctx context.Context, userId uuid.UUID, query string, limit int) ([]*entity.DocumentChunk, error) {
	if f.searchChunks != nil {
		return f.searchChunks(ctx, userId, query, limit)
	}
	return nil, nil
}

type fakeTaskRepo struct {
	findOne       func(ctx context.Context, specs ...specification.Specification) (*entity.Task, error)
	searchKeyword func(ctx context.Context, userId uuid.UUID, query string, limit int) ([]*entity.Task, error)
}

func (f *fakeTaskRepo) Save(context.Context, *entity.Task) error { return nil }
func (f *fakeTaskRepo) Delete(context.Context, uuid.UUID) error  { return nil }
func (f *fakeTaskRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Task, error) {
	if f.findOne != nil {
		return f.findOne(ctx, specs...)
	}
	return nil, nil
}
func (f *fakeTaskRepo) SearchKeyword(ctx context.Context, userId uuid.UUID, query string, limit int) ([]*entity.Task, error) {
	if f.searchKeyword != nil {
		return f.searchKeyword(ctx, userId, query, limit)
	}
	return nil, nil
}

type fakePreferenceRepo struct {
	findOne       func(ctx context.Context, specs ...specification.Specification) (*entity.Preference, error)
	findAllByUser func(ctx context.Context, userId uuid.UUID) ([]*entity.Preference, error)
	findSettings  func(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error)
	saveSettings  func(ctx context.Context, settings *entity.UserSettings) error

	findSettingsCalls int
}

func (f *fakePreferenceRepo) Save(context.Context, *entity.Preference) error { return nil }
func (f *fakePreferenceRepo) Delete(context.Context, uuid.UUID) error        { return nil }
func (f *fakePreferenceRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Preference, error) {
	if f.findOne != nil {
		return f.findOne(ctx, specs...)
	}
	return nil, nil
}
func (f *fakePreferenceRepo) FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Preference, error) {
	if f.findAllByUser != nil {
		return f.findAllByUser(ctx, userId)
	}
	return nil, nil
}
func (f *fakePreferenceRepo) FindSettings(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error) {
	f.findSettingsCalls++
	if f.findSettings != nil {
		return f.findSettings(ctx, userId)
	}
	return nil, nil
}
func (f *fakePreferenceRepo) SaveSettings(ctx context.Context, settings *entity.UserSettings) error {
	if f.saveSettings != nil {
		return f.saveSettings(ctx, settings)
	}
	return nil
}

type fakeEmbeddingRepo struct {
	upserted      []*entity.EmbeddingRecord
	deleted       []uuid.UUID
	searchNearest func(ctx context.Context, userId uuid.UUID, vector []float32, kinds []entity.ContentKind, limit int) ([]*entity.EmbeddingRecord, error)
}

func (f *fakeEmbeddingRepo) Upsert(_ context.Context, record *entity.EmbeddingRecord) error {
	f.upserted = append(f.upserted, record)
	return nil
}
func (f *fakeEmbeddingRepo) DeleteByContent(_ context.Context, _ entity.ContentKind, contentId uuid.UUID) error {
	f.deleted = append(f.deleted, contentId)
	return nil
}
func (f *fakeEmbeddingRepo) DeleteAllByUser(context.Context, uuid.UUID) error { return nil }
func (f *fakeEmbeddingRepo) SearchNearest(ctx context.Context, userId uuid.UUID, vector []float32, kinds []entity.ContentKind, limit int) ([]*entity.EmbeddingRecord, error) {
	if f.searchNearest != nil {
		return f.searchNearest(ctx, userId, vector, kinds, limit)
	}
	return nil, nil
}
func (f *fakeEmbeddingRepo) FindByContent(context.Context, entity.ContentKind, uuid.UUID) (*entity.EmbeddingRecord, error) {
	return nil, nil
}

type fakeIndexService struct {
	upserts      []fakeIndexUpsert
	deletes      []uuid.UUID
	searchVector func(ctx context.Context, userId uuid.UUID, query string, kinds []entity.ContentKind, limit int) ([]*entity.EmbeddingRecord, bool, error)
}

type fakeIndexUpsert struct {
	UserId    uuid.UUID
	Kind      entity.ContentKind
	ContentId uuid.UUID
	Title     string
	Text      string
	MaskPII   bool
}

func (f *fakeIndexService) UpsertContent(_ context.Context, userId uuid.UUID, kind entity.ContentKind, contentId uuid.UUID, title, text string, maskPII bool) error {
	f.upserts = append(f.upserts, fakeIndexUpsert{UserId: userId, Kind: kind, ContentId: contentId, Title: title, Text: text, MaskPII: maskPII})
	return nil
}
func (f *fakeIndexService) DeleteContent(_ context.Context, _ entity.ContentKind, contentId uuid.UUID) error {
	f.deletes = append(f.deletes, contentId)
	return nil
}
func (f *fakeIndexService) DeleteAllByUser(context.Context, uuid.UUID) error { return nil }
func (f *fakeIndexService) SearchVector(ctx context.Context, userId uuid.UUID, query string, kinds []entity.ContentKind, limit int) ([]*entity.EmbeddingRecord, bool, error) {
	if f.searchVector != nil {
		return f.searchVector(ctx, userId, query, kinds, limit)
	}
	return nil, false, nil
}

type fakeRetrievalService struct {
	settings    *entity.UserSettings
	settingsErr error
	items       []generation.ContextItem
	prefs       []generation.PreferenceKV
}

func (f *fakeRetrievalService) Retrieve(context.Context, uuid.UUID, string, int) ([]generation.ContextItem, error) {
	return f.items, nil
}
func (f *fakeRetrievalService) GetPreferences(context.Context, uuid.UUID) ([]generation.PreferenceKV, error) {
	return f.prefs, nil
}
func (f *fakeRetrievalService) ResolveSettings(context.Context, uuid.UUID) (*entity.UserSettings, error) {
	return f.settings, f.settingsErr
}
func (f *fakeRetrievalService) InvalidateSettings(uuid.UUID) {}

type fakeLLMProvider struct {
	available bool
	response  string
	vector    []float32
	embedErr  error
}

func (f *fakeLLMProvider) IsAvailable() bool { return f.available }
func (f *fakeLLMProvider) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	return f.response, nil
}
func (f *fakeLLMProvider) Embed(context.Context, string) ([]float32, error) {
	return f.vector, f.embedErr
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(string, string) (string, error) {
	return f.text, f.err
}
