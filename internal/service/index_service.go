package service

import (
	"context"
	"time"

	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/pkg/logger"
	"memoscribe-be/internal/repository/contract"
	"memoscribe-be/pkg/llm"
	"memoscribe-be/pkg/privacy"
	"memoscribe-be/pkg/textutil"

	"github.com/google/uuid"
)

const (
	// storedTextLimit bounds the text kept alongside a vector so a single
	// huge note cannot bloat the index.
	storedTextLimit = 10000

	defaultSearchLimit = 8
)

// IIndexService maintains the per-user semantic index. Writes go through
// the sync queue; reads come from the retrieval path.
type IIndexService interface {
	UpsertContent(ctx context.Context, userId uuid.UUID, kind entity.ContentKind, contentId uuid.UUID, title, text string, maskPII bool) error
	DeleteContent(ctx context.Context, kind entity.ContentKind, contentId uuid.UUID) error
	DeleteAllByUser(ctx context.Context, userId uuid.UUID) error

	// SearchVector embeds the query and ranks the user's records by L2
	// distance. Returns ok=false when no query vector could be produced;
	// callers then fall back to keyword search.
	SearchVector(ctx context.Context, userId uuid.UUID, query string, kinds []entity.ContentKind, limit int) (records []*entity.EmbeddingRecord, ok bool, err error)
}

type indexService struct {
	embeddingRepo contract.EmbeddingRepository
	provider      llm.Provider
	log           logger.ILogger
}

func NewIndexService(embeddingRepo contract.EmbeddingRepository, provider llm.Provider, log logger.ILogger) IIndexService {
	return &indexService{
		embeddingRepo: embeddingRepo,
		provider:      provider,
		log:           log,
	}
}

func (s *indexService) UpsertContent(ctx context.Context, userId uuid.UUID, kind entity.ContentKind, contentId uuid.UUID, title, text string, maskPII bool) error {
	if maskPII {
		title = privacy.Mask(title)
		text = privacy.Mask(text)
	}
	text = textutil.Truncate(text, storedTextLimit)

	record := &entity.EmbeddingRecord{
		Id:           uuid.New(),
		UserId:       userId,
		ContentKind:  kind,
		ContentId:    contentId,
		ContentTitle: title,
		ContentText:  text,
		CreatedAt:    time.Now(),
	}

	if s.provider.IsAvailable() {
		vector, err := s.provider.Embed(ctx, title+"\n"+text)
		if err != nil {
			// Indexed without a vector: still reachable by keyword.
			s.log.Warn("index", "embedding failed, storing keyword-only record", map[string]interface{}{
				"kind":       string(kind),
				"content_id": contentId.String(),
				"error":      err.Error(),
			})
		} else {
			record.Vector = vector
		}
	}

	return s.embeddingRepo.Upsert(ctx, record)
}

func (s *indexService) DeleteContent(ctx context.Context, kind entity.ContentKind, contentId uuid.UUID) error {
	return s.embeddingRepo.DeleteByContent(ctx, kind, contentId)
}

func (s *indexService) DeleteAllByUser(ctx context.Context, userId uuid.UUID) error {
	return s.embeddingRepo.DeleteAllByUser(ctx, userId)
}

func (s *indexService) SearchVector(ctx context.Context, userId uuid.UUID, query string, kinds []entity.ContentKind, limit int) ([]*entity.EmbeddingRecord, bool, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if len(kinds) == 0 {
		return nil, true, nil
	}
	if !s.provider.IsAvailable() {
		return nil, false, nil
	}

	vector, err := s.provider.Embed(ctx, query)
	if err != nil || vector == nil {
		if err != nil {
			s.log.Warn("index", "query embedding failed", map[string]interface{}{"error": err.Error()})
		}
		return nil, false, nil
	}

	records, err := s.embeddingRepo.SearchNearest(ctx, userId, vector, kinds, limit)
	if err != nil {
		return nil, true, err
	}
	return records, true, nil
}
