package service

import (
	"context"
	"strings"
	"time"

	"memoscribe-be/internal/config"
	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/pkg/logger"
	"memoscribe-be/internal/repository/contract"
	"memoscribe-be/pkg/generation"
	"memoscribe-be/pkg/privacy"
	"memoscribe-be/pkg/textutil"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	settingsCacheTTL     = 5 * time.Minute
	settingsCacheCleanup = 10 * time.Minute

	// contextItemLimit bounds the content of every item handed to
	// generation or search, regardless of how much text the index stores.
	contextItemLimit = 500
)

// IRetrievalService assembles the privacy-filtered context for a
// generation call. Kinds a user has opted out of never leave this layer;
// tasks and preferences are always retrievable.
type IRetrievalService interface {
	Retrieve(ctx context.Context, userId uuid.UUID, query string, topK int) ([]generation.ContextItem, error)
	GetPreferences(ctx context.Context, userId uuid.UUID) ([]generation.PreferenceKV, error)

	// ResolveSettings returns the user's privacy settings, falling back to
	// process-wide defaults when no explicit row exists. Results are
	// cached briefly; InvalidateSettings drops the cached copy.
	ResolveSettings(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error)
	InvalidateSettings(userId uuid.UUID)
}

type retrievalService struct {
	indexService   IIndexService
	noteRepo       contract.NoteRepository
	logRepo        contract.LogRepository
	documentRepo   contract.DocumentRepository
	taskRepo       contract.TaskRepository
	preferenceRepo contract.PreferenceRepository
	privacyDefault config.PrivacyConfig
	llmEnabled     bool
	settingsCache  *gocache.Cache
	log            logger.ILogger
}

func NewRetrievalService(
	indexService IIndexService,
	noteRepo contract.NoteRepository,
	logRepo contract.LogRepository,
	documentRepo contract.DocumentRepository,
	taskRepo contract.TaskRepository,
	preferenceRepo contract.PreferenceRepository,
	privacyDefault config.PrivacyConfig,
	llmEnabled bool,
	log logger.ILogger,
) IRetrievalService {
	return &retrievalService{
		indexService:   indexService,
		noteRepo:       noteRepo,
		logRepo:        logRepo,
		documentRepo:   documentRepo,
		taskRepo:       taskRepo,
		preferenceRepo: preferenceRepo,
		privacyDefault: privacyDefault,
		llmEnabled:     llmEnabled,
		settingsCache:  gocache.New(settingsCacheTTL, settingsCacheCleanup),
		log:            log,
	}
}

func (s *retrievalService) ResolveSettings(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error) {
	if cached, found := s.settingsCache.Get(userId.String()); found {
		return cached.(*entity.UserSettings), nil
	}

	settings, err := s.preferenceRepo.FindSettings(ctx, userId)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.UserSettings{
			UserId:      userId,
			SendNotes:   s.privacyDefault.SendNotes,
			SendDigests: s.privacyDefault.SendDigests,
			SendDocs:    s.privacyDefault.SendDocs,
			SendRawLogs: s.privacyDefault.SendRawLogs,
			PIIMasking:  s.privacyDefault.PIIMasking,
			LLMEnabled:  s.llmEnabled,
		}
	}

	s.settingsCache.Set(userId.String(), settings, gocache.DefaultExpiration)
	return settings, nil
}

func (s *retrievalService) InvalidateSettings(userId uuid.UUID) {
	s.settingsCache.Delete(userId.String())
}

// allowedKinds maps the privacy switches to retrievable kinds. Tasks and
// preferences stay allowed unconditionally.
func allowedKinds(settings *entity.UserSettings) []entity.ContentKind {
	kinds := []entity.ContentKind{entity.KindTask, entity.KindPreference}
	if settings.SendNotes {
		kinds = append(kinds, entity.KindNote)
	}
	if settings.SendDigests {
		kinds = append(kinds, entity.KindDigest)
	}
	if settings.SendDocs {
		kinds = append(kinds, entity.KindChunk)
	}
	return kinds
}

func (s *retrievalService) Retrieve(ctx context.Context, userId uuid.UUID, query string, topK int) ([]generation.ContextItem, error) {
	if topK <= 0 {
		topK = defaultSearchLimit
	}

	settings, err := s.ResolveSettings(ctx, userId)
	if err != nil {
		return nil, err
	}
	kinds := allowedKinds(settings)

	records, vectorOK, err := s.indexService.SearchVector(ctx, userId, query, kinds, topK)
	if err != nil {
		return nil, err
	}
	if vectorOK {
		items := make([]generation.ContextItem, 0, len(records))
		for _, r := range records {
			title := r.ContentTitle
			content := r.ContentText
			// Records indexed before a policy change may still hold raw
			// text, so the current policy is applied on the way out too.
			if settings.PIIMasking {
				title = privacy.Mask(title)
				content = privacy.Mask(content)
			}
			items = append(items, generation.ContextItem{
				ID:      r.ContentId.String(),
				Kind:    string(r.ContentKind),
				Title:   title,
				Content: textutil.Truncate(content, contextItemLimit),
			})
		}
		return items, nil
	}

	s.log.Info("retrieval", "vector search unavailable, using keyword fallback", map[string]interface{}{
		"user_id": userId.String(),
	})
	return s.keywordFallback(ctx, userId, query, kinds, topK, settings.PIIMasking)
}

// keywordFallback splits the result budget across kinds so one noisy
// source cannot crowd out the others.
func (s *retrievalService) keywordFallback(ctx context.Context, userId uuid.UUID, query string, kinds []entity.ContentKind, topK int, maskPII bool) ([]generation.ContextItem, error) {
	perKind := topK / 4
	if perKind < 1 {
		perKind = 1
	}

	var items []generation.ContextItem
	add := func(id uuid.UUID, kind entity.ContentKind, title, content string) {
		if maskPII {
			title = privacy.Mask(title)
			content = privacy.Mask(content)
		}
		items = append(items, generation.ContextItem{
			ID:      id.String(),
			Kind:    string(kind),
			Title:   title,
			Content: textutil.Truncate(content, contextItemLimit),
		})
	}

	for _, kind := range kinds {
		switch kind {
		case entity.KindNote:
			notes, err := s.noteRepo.SearchKeyword(ctx, userId, query, perKind)
			if err != nil {
				return nil, err
			}
			for _, n := range notes {
				add(n.Id, entity.KindNote, n.Title, n.Body)
			}
		case entity.KindDigest:
			digests, err := s.logRepo.SearchDigestsKeyword(ctx, userId, query, perKind)
			if err != nil {
				return nil, err
			}
			for _, d := range digests {
				add(d.Id, entity.KindDigest, "ダイジェスト", d.IndexText())
			}
		case entity.KindChunk:
			chunks, err := s.documentRepo.SearchChunksKeyword(ctx, userId, query, perKind)
			if err != nil {
				return nil, err
			}
			for _, c := range chunks {
				add(c.Id, entity.KindChunk, c.IndexTitle("資料"), c.Content)
			}
		case entity.KindTask:
			tasks, err := s.taskRepo.SearchKeyword(ctx, userId, query, perKind)
			if err != nil {
				return nil, err
			}
			for _, t := range tasks {
				add(t.Id, entity.KindTask, t.Title, t.IndexText())
			}
		case entity.KindPreference:
			prefs, err := s.preferenceRepo.FindAllByUser(ctx, userId)
			if err != nil {
				return nil, err
			}
			matched := 0
			lower := strings.ToLower(query)
			for _, p := range prefs {
				if matched >= perKind {
					break
				}
				if strings.Contains(strings.ToLower(p.Key), lower) || strings.Contains(strings.ToLower(p.Value), lower) {
					add(p.Id, entity.KindPreference, p.Key, p.IndexText())
					matched++
				}
			}
		}
	}

	if len(items) > topK {
		items = items[:topK]
	}
	return items, nil
}

func (s *retrievalService) GetPreferences(ctx context.Context, userId uuid.UUID) ([]generation.PreferenceKV, error) {
	prefs, err := s.preferenceRepo.FindAllByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	kvs := make([]generation.PreferenceKV, 0, len(prefs))
	for _, p := range prefs {
		kvs = append(kvs, generation.PreferenceKV{Key: p.Key, Value: p.Value})
	}
	return kvs, nil
}
