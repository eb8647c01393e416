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

const logDateLayout = "2006-01-02"

type ILogService interface {
	Save(ctx context.Context, userId uuid.UUID, req *dto.SaveLogRequest) (*dto.LogResponse, error)
	ShowByDate(ctx context.Context, userId uuid.UUID, date string) (*dto.LogResponse, error)
	GetDigest(ctx context.Context, userId uuid.UUID, logId uuid.UUID) (*dto.DigestResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type logService struct {
	logRepo          contract.LogRepository
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	log              logger.ILogger
}

func NewLogService(
	logRepo contract.LogRepository,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) ILogService {
	return &logService{
		logRepo:          logRepo,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

func (s *logService) Save(ctx context.Context, userId uuid.UUID, req *dto.SaveLogRequest) (*dto.LogResponse, error) {
	date, err := time.Parse(logDateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidInput
	}

	// One log per (user, date): saving the same date again replaces its text.
	dailyLog, err := s.logRepo.FindOne(ctx,
		specification.ByUser{UserID: userId},
		specification.Filter("date", date),
	)
	if err != nil {
		return nil, err
	}

	eventType := "LOG_UPDATED"
	if dailyLog == nil {
		dailyLog = &entity.DailyLog{
			Id:        uuid.New(),
			UserId:    userId,
			Date:      date,
			CreatedAt: time.Now(),
		}
		eventType = "LOG_CREATED"
	}
	dailyLog.RawText = req.RawText
	dailyLog.Mood = req.Mood

	if err := s.logRepo.Save(ctx, dailyLog); err != nil {
		return nil, err
	}

	// The digest is regenerated asynchronously from the new text.
	s.publishSync(ctx, userId, dailyLog.Id, dto.SyncActionUpsert)
	s.publishMutation(ctx, eventType, dailyLog.Id, userId)

	return logToResponse(dailyLog), nil
}

func (s *logService) ShowByDate(ctx context.Context, userId uuid.UUID, date string) (*dto.LogResponse, error) {
	parsed, err := time.Parse(logDateLayout, date)
	if err != nil {
		return nil, ErrInvalidInput
	}
	dailyLog, err := s.logRepo.FindOne(ctx,
		specification.ByUser{UserID: userId},
		specification.Filter("date", parsed),
	)
	if err != nil {
		return nil, err
	}
	if dailyLog == nil {
		return nil, ErrNotFound
	}
	return logToResponse(dailyLog), nil
}

func (s *logService) GetDigest(ctx context.Context, userId uuid.UUID, logId uuid.UUID) (*dto.DigestResponse, error) {
	dailyLog, err := s.logRepo.FindOne(ctx, specification.ByID{ID: logId}, specification.ByUser{UserID: userId})
	if err != nil {
		return nil, err
	}
	if dailyLog == nil {
		return nil, ErrNotFound
	}

	digest, err := s.logRepo.FindDigestByLog(ctx, logId)
	if err != nil {
		return nil, err
	}
	if digest == nil {
		return nil, ErrNotFound
	}

	return &dto.DigestResponse{
		Id:      digest.Id,
		LogId:   digest.LogId,
		Summary: digest.Summary,
		Tags:    digest.Tags,
		Topics:  digest.Topics,
		Actions: digest.Actions,
	}, nil
}

func (s *logService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	dailyLog, err := s.logRepo.FindOne(ctx, specification.ByID{ID: id}, specification.ByUser{UserID: userId})
	if err != nil {
		return err
	}
	if dailyLog == nil {
		return ErrNotFound
	}

	digest, err := s.logRepo.FindDigestByLog(ctx, id)
	if err != nil {
		return err
	}

	if err := s.logRepo.Delete(ctx, id); err != nil {
		return err
	}

	// The index entry belongs to the digest, not the raw log.
	if digest != nil {
		s.publishDigestDelete(ctx, userId, digest.Id)
	}
	s.publishMutation(ctx, "LOG_DELETED", id, userId)
	return nil
}

func (s *logService) publishSync(ctx context.Context, userId, logId uuid.UUID, action string) {
	payload, err := json.Marshal(dto.SyncJobMessage{
		Kind:      "log",
		ContentId: logId,
		Action:    action,
		UserId:    userId,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Error("log", "failed to publish sync job", map[string]interface{}{
			"log_id": logId.String(),
			"error":  err.Error(),
		})
	}
}

func (s *logService) publishDigestDelete(ctx context.Context, userId, digestId uuid.UUID) {
	payload, err := json.Marshal(dto.SyncJobMessage{
		Kind:      string(entity.KindDigest),
		ContentId: digestId,
		Action:    dto.SyncActionDelete,
		UserId:    userId,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Error("log", "failed to publish digest delete", map[string]interface{}{
			"digest_id": digestId.String(),
			"error":     err.Error(),
		})
	}
}

func (s *logService) publishMutation(ctx context.Context, eventType string, logId, userId uuid.UUID) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewContentMutation(eventType, "log", logId.String(), userId.String())
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("log", "mutation event publish failed", map[string]interface{}{"error": err.Error()})
	}
}

func logToResponse(l *entity.DailyLog) *dto.LogResponse {
	return &dto.LogResponse{
		Id:        l.Id,
		Date:      l.Date.Format(logDateLayout),
		RawText:   l.RawText,
		Mood:      l.Mood,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
