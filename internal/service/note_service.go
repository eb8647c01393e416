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

type INoteService interface {
	Save(ctx context.Context, userId uuid.UUID, req *dto.SaveNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	List(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	noteRepo         contract.NoteRepository
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	log              logger.ILogger
}

func NewNoteService(
	noteRepo contract.NoteRepository,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) INoteService {
	return &noteService{
		noteRepo:         noteRepo,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

func (s *noteService) Save(ctx context.Context, userId uuid.UUID, req *dto.SaveNoteRequest) (*dto.NoteResponse, error) {
	note := &entity.Note{
		Id:         uuid.New(),
		UserId:     userId,
		CreatedAt:  time.Now(),
		Importance: 3,
		Visibility: "private",
	}
	eventType := "NOTE_CREATED"

	if req.Id != nil {
		existing, err := s.noteRepo.FindOne(ctx, specification.ByID{ID: *req.Id}, specification.ByUser{UserID: userId})
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		note = existing
		eventType = "NOTE_UPDATED"
	}

	note.Title = req.Title
	note.Body = req.Body
	note.Tags = req.Tags
	if req.Importance != 0 {
		note.Importance = req.Importance
	}
	if req.Visibility != "" {
		note.Visibility = req.Visibility
	}

	if err := s.noteRepo.Save(ctx, note); err != nil {
		return nil, err
	}

	s.publishSync(ctx, userId, note.Id, dto.SyncActionUpsert)
	s.publishMutation(ctx, eventType, note.Id, userId)

	return noteToResponse(note), nil
}

func (s *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	note, err := s.noteRepo.FindOne(ctx, specification.ByID{ID: id}, specification.ByUser{UserID: userId})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNotFound
	}
	return noteToResponse(note), nil
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.NoteResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	notes, err := s.noteRepo.FindAll(ctx,
		specification.ByUser{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, noteToResponse(n))
	}
	return res, nil
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	note, err := s.noteRepo.FindOne(ctx, specification.ByID{ID: id}, specification.ByUser{UserID: userId})
	if err != nil {
		return err
	}
	if note == nil {
		return ErrNotFound
	}

	if err := s.noteRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishSync(ctx, userId, id, dto.SyncActionDelete)
	s.publishMutation(ctx, "NOTE_DELETED", id, userId)
	return nil
}

func (s *noteService) publishSync(ctx context.Context, userId, noteId uuid.UUID, action string) {
	payload, err := json.Marshal(dto.SyncJobMessage{
		Kind:      string(entity.KindNote),
		ContentId: noteId,
		Action:    action,
		UserId:    userId,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Error("note", "failed to publish sync job", map[string]interface{}{
			"note_id": noteId.String(),
			"error":   err.Error(),
		})
	}
}

func (s *noteService) publishMutation(ctx context.Context, eventType string, noteId, userId uuid.UUID) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewContentMutation(eventType, string(entity.KindNote), noteId.String(), userId.String())
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("note", "mutation event publish failed", map[string]interface{}{"error": err.Error()})
	}
}

func noteToResponse(n *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:         n.Id,
		Title:      n.Title,
		Body:       n.Body,
		Tags:       n.Tags,
		Importance: n.Importance,
		Visibility: n.Visibility,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}
