package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"memoscribe-be/internal/dto"
	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/pkg/logger"
	"memoscribe-be/internal/repository/contract"
	"memoscribe-be/internal/repository/specification"
	"memoscribe-be/pkg/events"
	"memoscribe-be/pkg/extract"
	"memoscribe-be/pkg/generation"
	pkgNats "memoscribe-be/pkg/nats"
	"memoscribe-be/pkg/privacy"
	"memoscribe-be/pkg/textutil"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	syncMaxAttempts  = 3
	syncRetryBackoff = 2 * time.Second

	chunkSize    = 1000
	chunkOverlap = 200
)

// ISyncService consumes the content mutation queue and keeps the
// embedding index and derived artifacts in step with source records.
// Messages for missing records are acked as no-ops: a delete won the
// race, and last-write-wins makes replays safe.
type ISyncService interface {
	Consume(ctx context.Context) error
}

type syncService struct {
	pubSub           *gochannel.GoChannel
	topicName        string
	noteRepo         contract.NoteRepository
	logRepo          contract.LogRepository
	documentRepo     contract.DocumentRepository
	taskRepo         contract.TaskRepository
	indexService     IIndexService
	retrievalService IRetrievalService
	preferenceRepo   contract.PreferenceRepository
	generator        *generation.Generator
	extractor        extract.Extractor
	eventPublisher   *pkgNats.Publisher
	log              logger.ILogger
}

func NewSyncService(
	pubSub *gochannel.GoChannel,
	topicName string,
	noteRepo contract.NoteRepository,
	logRepo contract.LogRepository,
	documentRepo contract.DocumentRepository,
	taskRepo contract.TaskRepository,
	preferenceRepo contract.PreferenceRepository,
	indexService IIndexService,
	retrievalService IRetrievalService,
	generator *generation.Generator,
	extractor extract.Extractor,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) ISyncService {
	return &syncService{
		pubSub:           pubSub,
		topicName:        topicName,
		noteRepo:         noteRepo,
		logRepo:          logRepo,
		documentRepo:     documentRepo,
		taskRepo:         taskRepo,
		preferenceRepo:   preferenceRepo,
		indexService:     indexService,
		retrievalService: retrievalService,
		generator:        generator,
		extractor:        extractor,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

func (s *syncService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *syncService) processMessage(ctx context.Context, msg *message.Message) {
	var job dto.SyncJobMessage
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		s.log.Error("sync", "invalid sync message, dropping", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	var err error
	for attempt := 1; attempt <= syncMaxAttempts; attempt++ {
		err = s.handleJob(ctx, &job)
		if err == nil {
			break
		}
		s.log.Warn("sync", "job attempt failed", map[string]interface{}{
			"kind":       job.Kind,
			"content_id": job.ContentId.String(),
			"attempt":    attempt,
			"error":      err.Error(),
		})
		if attempt < syncMaxAttempts {
			time.Sleep(syncRetryBackoff)
		}
	}

	if err != nil {
		s.log.Error("sync", "job abandoned after retries", map[string]interface{}{
			"kind":       job.Kind,
			"content_id": job.ContentId.String(),
			"error":      err.Error(),
		})
	}
	// Retries are bounded in-process; the queue never redelivers.
	msg.Ack()
}

func (s *syncService) handleJob(ctx context.Context, job *dto.SyncJobMessage) error {
	if job.Action == dto.SyncActionDelete {
		return s.indexService.DeleteContent(ctx, entity.ContentKind(job.Kind), job.ContentId)
	}

	switch job.Kind {
	case string(entity.KindNote):
		return s.syncNote(ctx, job)
	case "log":
		return s.syncLog(ctx, job)
	case "document":
		return s.syncDocument(ctx, job)
	case string(entity.KindTask):
		return s.syncTask(ctx, job)
	case string(entity.KindPreference):
		return s.syncPreference(ctx, job)
	default:
		s.log.Warn("sync", "unknown job kind, dropping", map[string]interface{}{"kind": job.Kind})
		return nil
	}
}

func (s *syncService) maskEnabled(ctx context.Context, userId uuid.UUID) bool {
	settings, err := s.retrievalService.ResolveSettings(ctx, userId)
	if err != nil {
		// Unknown settings fail closed.
		return true
	}
	return settings.PIIMasking
}

func (s *syncService) syncNote(ctx context.Context, job *dto.SyncJobMessage) error {
	note, err := s.noteRepo.FindOne(ctx, specification.ByID{ID: job.ContentId})
	if err != nil {
		return err
	}
	if note == nil {
		s.log.Info("sync", "note gone before indexing, skipping", map[string]interface{}{"note_id": job.ContentId.String()})
		return nil
	}
	return s.indexService.UpsertContent(ctx, note.UserId, entity.KindNote, note.Id, note.Title, note.IndexText(), s.maskEnabled(ctx, note.UserId))
}

func (s *syncService) syncTask(ctx context.Context, job *dto.SyncJobMessage) error {
	task, err := s.taskRepo.FindOne(ctx, specification.ByID{ID: job.ContentId})
	if err != nil {
		return err
	}
	if task == nil {
		s.log.Info("sync", "task gone before indexing, skipping", map[string]interface{}{"task_id": job.ContentId.String()})
		return nil
	}
	return s.indexService.UpsertContent(ctx, task.UserId, entity.KindTask, task.Id, task.Title, task.IndexText(), s.maskEnabled(ctx, task.UserId))
}

func (s *syncService) syncPreference(ctx context.Context, job *dto.SyncJobMessage) error {
	pref, err := s.preferenceRepo.FindOne(ctx, specification.ByID{ID: job.ContentId})
	if err != nil {
		return err
	}
	if pref == nil {
		s.log.Info("sync", "preference gone before indexing, skipping", map[string]interface{}{"preference_id": job.ContentId.String()})
		return nil
	}
	return s.indexService.UpsertContent(ctx, pref.UserId, entity.KindPreference, pref.Id, pref.Key, pref.IndexText(), s.maskEnabled(ctx, pref.UserId))
}

// syncLog regenerates the daily digest from the log's current text, then
// indexes the digest. The raw log itself is never indexed.
func (s *syncService) syncLog(ctx context.Context, job *dto.SyncJobMessage) error {
	dailyLog, err := s.logRepo.FindOne(ctx, specification.ByID{ID: job.ContentId})
	if err != nil {
		return err
	}
	if dailyLog == nil {
		s.log.Info("sync", "log gone before digesting, skipping", map[string]interface{}{"log_id": job.ContentId.String()})
		return nil
	}

	settings, err := s.retrievalService.ResolveSettings(ctx, dailyLog.UserId)
	if err != nil {
		return err
	}

	text := dailyLog.RawText
	if settings.PIIMasking {
		text = privacy.Mask(text)
	}

	var result generation.Digest
	if settings.SendRawLogs && settings.LLMEnabled && s.generator.IsAvailable() {
		result = s.generator.GenerateDigest(ctx, text)
		s.publishAudit(ctx, dailyLog.UserId, "digest", dailyLog.Id, text)
	} else {
		// Raw log text stays local; summarize without the LLM.
		result = generation.ExtractiveDigest(text, 3)
	}

	existing, err := s.logRepo.FindDigestByLog(ctx, dailyLog.Id)
	if err != nil {
		return err
	}

	digest := &entity.DailyDigest{
		Id:        uuid.New(),
		UserId:    dailyLog.UserId,
		LogId:     dailyLog.Id,
		CreatedAt: time.Now(),
	}
	if existing != nil {
		digest = existing
	}
	digest.Summary = result.Summary
	digest.Tags = result.Tags
	digest.Topics = result.Topics
	digest.Actions = result.Actions

	if err := s.logRepo.UpsertDigest(ctx, digest); err != nil {
		return err
	}

	return s.indexService.UpsertContent(ctx, dailyLog.UserId, entity.KindDigest, digest.Id,
		digest.IndexTitle(dailyLog.Date), digest.IndexText(), settings.PIIMasking)
}

// syncDocument runs the extraction state machine: pending -> processing
// -> completed or failed. Chunks are replaced wholesale and each chunk is
// indexed individually.
func (s *syncService) syncDocument(ctx context.Context, job *dto.SyncJobMessage) error {
	doc, err := s.documentRepo.FindOne(ctx, specification.ByID{ID: job.ContentId})
	if err != nil {
		return err
	}
	if doc == nil {
		s.log.Info("sync", "document gone before processing, skipping", map[string]interface{}{"document_id": job.ContentId.String()})
		return nil
	}

	doc.Status = entity.DocumentProcessing
	doc.ErrorMessage = ""
	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return err
	}

	text, err := s.extractor.Extract(doc.FilePath, doc.FileType)
	if err != nil {
		return s.failDocument(ctx, doc, fmt.Errorf("extract: %w", err))
	}
	if text == "" {
		return s.failDocument(ctx, doc, fmt.Errorf("no text extracted"))
	}

	pieces := textutil.SplitText(text, chunkSize, chunkOverlap)
	chunks := make([]*entity.DocumentChunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: doc.Id,
			ChunkIndex: i,
			Content:    piece,
			CreatedAt:  time.Now(),
		})
	}

	// Stale chunk index entries are removed before the replacement set is
	// indexed so no orphan vectors survive a reprocess.
	oldChunks, err := s.documentRepo.FindChunks(ctx, doc.Id)
	if err != nil {
		return err
	}
	for _, old := range oldChunks {
		if err := s.indexService.DeleteContent(ctx, entity.KindChunk, old.Id); err != nil {
			return err
		}
	}

	if err := s.documentRepo.ReplaceChunks(ctx, doc.Id, chunks); err != nil {
		return s.failDocument(ctx, doc, fmt.Errorf("store chunks: %w", err))
	}

	// Unknown settings fail closed on masking and keep the summary local.
	maskPII := true
	llmSummary := false
	if settings, serr := s.retrievalService.ResolveSettings(ctx, doc.UserId); serr == nil {
		maskPII = settings.PIIMasking
		llmSummary = settings.SendDocs && settings.LLMEnabled && s.generator.IsAvailable()
	}

	for _, chunk := range chunks {
		err := s.indexService.UpsertContent(ctx, doc.UserId, entity.KindChunk, chunk.Id,
			chunk.IndexTitle(doc.Title), chunk.Content, maskPII)
		if err != nil {
			return s.failDocument(ctx, doc, fmt.Errorf("index chunk %d: %w", chunk.ChunkIndex, err))
		}
	}

	doc.ExtractedText = textutil.Truncate(text, storedTextLimit)

	summaryInput := text
	if maskPII {
		summaryInput = privacy.Mask(summaryInput)
	}
	if llmSummary {
		result := s.generator.GenerateDigest(ctx, summaryInput)
		doc.Summary = result.Summary
		s.publishAudit(ctx, doc.UserId, "document_summary", doc.Id, summaryInput)
	} else {
		doc.Summary = textutil.SimpleSummary(summaryInput, 3)
	}

	doc.Status = entity.DocumentCompleted
	return s.documentRepo.Save(ctx, doc)
}

// publishAudit records a background generation call on the audit stream.
// Best effort; a dead broker never fails the job.
func (s *syncService) publishAudit(ctx context.Context, userId uuid.UUID, action string, affectedId uuid.UUID, input string) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewAuditRecord(userId.String(), action, affectedId.String(), textutil.EstimateTokens(input), 0)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("sync", "audit publish failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *syncService) failDocument(ctx context.Context, doc *entity.Document, cause error) error {
	doc.Status = entity.DocumentFailed
	doc.ErrorMessage = cause.Error()
	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return err
	}
	return cause
}
