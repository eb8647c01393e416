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

type ITaskService interface {
	Save(ctx context.Context, userId uuid.UUID, req *dto.SaveTaskRequest) (*dto.TaskResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.TaskResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type taskService struct {
	taskRepo         contract.TaskRepository
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	log              logger.ILogger
}

func NewTaskService(
	taskRepo contract.TaskRepository,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) ITaskService {
	return &taskService{
		taskRepo:         taskRepo,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

func (s *taskService) Save(ctx context.Context, userId uuid.UUID, req *dto.SaveTaskRequest) (*dto.TaskResponse, error) {
	task := &entity.Task{
		Id:        uuid.New(),
		UserId:    userId,
		Status:    "todo",
		Priority:  2,
		CreatedAt: time.Now(),
	}
	eventType := "TASK_CREATED"

	if req.Id != nil {
		existing, err := s.taskRepo.FindOne(ctx, specification.ByID{ID: *req.Id}, specification.ByUser{UserID: userId})
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		task = existing
		eventType = "TASK_UPDATED"
	}

	task.Title = req.Title
	task.Description = req.Description
	task.DueAt = req.DueAt
	task.Tags = req.Tags
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.Priority != 0 {
		task.Priority = req.Priority
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	s.publishSync(ctx, userId, task.Id, dto.SyncActionUpsert)
	s.publishMutation(ctx, eventType, task.Id, userId)

	return taskToResponse(task), nil
}

func (s *taskService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.taskRepo.FindOne(ctx, specification.ByID{ID: id}, specification.ByUser{UserID: userId})
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	return taskToResponse(task), nil
}

func (s *taskService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	task, err := s.taskRepo.FindOne(ctx, specification.ByID{ID: id}, specification.ByUser{UserID: userId})
	if err != nil {
		return err
	}
	if task == nil {
		return ErrNotFound
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishSync(ctx, userId, id, dto.SyncActionDelete)
	s.publishMutation(ctx, "TASK_DELETED", id, userId)
	return nil
}

func (s *taskService) publishSync(ctx context.Context, userId, taskId uuid.UUID, action string) {
	payload, err := json.Marshal(dto.SyncJobMessage{
		Kind:      string(entity.KindTask),
		ContentId: taskId,
		Action:    action,
		UserId:    userId,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Error("task", "failed to publish sync job", map[string]interface{}{
			"task_id": taskId.String(),
			"error":   err.Error(),
		})
	}
}

func (s *taskService) publishMutation(ctx context.Context, eventType string, taskId, userId uuid.UUID) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewContentMutation(eventType, string(entity.KindTask), taskId.String(), userId.String())
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("task", "mutation event publish failed", map[string]interface{}{"error": err.Error()})
	}
}

func taskToResponse(t *entity.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		Id:          t.Id,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueAt:       t.DueAt,
		Tags:        t.Tags,
		Overdue:     t.IsOverdue(time.Now()),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
