package service

import (
	"context"
	"encoding/json"
	"time"

	"memoscribe-be/internal/dto"
	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/pkg/logger"
	"memoscribe-be/internal/repository/contract"
	"memoscribe-be/internal/repository/specification"
	"memoscribe-be/pkg/events"
	pkgNats "memoscribe-be/pkg/nats"

	"github.com/google/uuid"
)

type IDocumentService interface {
	// Upload registers the stored file as a pending document and queues
	// extraction. Processing happens on the sync consumer.
	Upload(ctx context.Context, userId uuid.UUID, title, filePath, fileType string) (*dto.DocumentResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type documentService struct {
	documentRepo     contract.DocumentRepository
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	log              logger.ILogger
}

func NewDocumentService(
	documentRepo contract.DocumentRepository,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		documentRepo:     documentRepo,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

func (s *documentService) Upload(ctx context.Context, userId uuid.UUID, title, filePath, fileType string) (*dto.DocumentResponse, error) {
	switch fileType {
	case "pdf", "txt", "md":
	default:
		return nil, ErrInvalidInput
	}

	doc := &entity.Document{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		FilePath:  filePath,
		FileType:  fileType,
		Status:    entity.DocumentPending,
		CreatedAt: time.Now(),
	}
	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	s.publishSync(ctx, userId, doc.Id, dto.SyncActionUpsert)
	s.publishMutation(ctx, "DOCUMENT_UPLOADED", doc.Id, userId)

	return documentToResponse(doc), nil
}

func (s *documentService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DocumentResponse, error) {
	doc, err := s.documentRepo.FindOne(ctx, specification.ByID{ID: id}, specification.ByUser{UserID: userId})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return documentToResponse(doc), nil
}

func (s *documentService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	doc, err := s.documentRepo.FindOne(ctx, specification.ByID{ID: id}, specification.ByUser{UserID: userId})
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrNotFound
	}

	// Queue index removal per chunk before the chunks disappear.
	chunks, err := s.documentRepo.FindChunks(ctx, id)
	if err != nil {
		return err
	}
	for _, chunk := range chunks {
		s.publishChunkDelete(ctx, userId, chunk.Id)
	}

	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishMutation(ctx, "DOCUMENT_DELETED", id, userId)
	return nil
}

func (s *documentService) publishSync(ctx context.Context, userId, documentId uuid.UUID, action string) {
	payload, err := json.Marshal(dto.SyncJobMessage{
		Kind:      "document",
		ContentId: documentId,
		Action:    action,
		UserId:    userId,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Error("document", "failed to publish sync job", map[string]interface{}{
			"document_id": documentId.String(),
			"error":       err.Error(),
		})
	}
}

func (s *documentService) publishChunkDelete(ctx context.Context, userId, chunkId uuid.UUID) {
	payload, err := json.Marshal(dto.SyncJobMessage{
		Kind:      string(entity.KindChunk),
		ContentId: chunkId,
		Action:    dto.SyncActionDelete,
		UserId:    userId,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Error("document", "failed to publish chunk delete", map[string]interface{}{
			"chunk_id": chunkId.String(),
			"error":    err.Error(),
		})
	}
}

func (s *documentService) publishMutation(ctx context.Context, eventType string, documentId, userId uuid.UUID) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewContentMutation(eventType, "document", documentId.String(), userId.String())
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("document", "mutation event publish failed", map[string]interface{}{"error": err.Error()})
	}
}

func documentToResponse(d *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:        d.Id,
		Title:     d.Title,
		FileType:  d.FileType,
		Status:    string(d.Status),
		Error:     d.ErrorMessage,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
