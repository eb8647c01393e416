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

type IPreferenceService interface {
	Save(ctx context.Context, userId uuid.UUID, req *dto.SavePreferenceRequest) (*dto.PreferenceResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.PreferenceResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error

	GetSettings(ctx context.Context, userId uuid.UUID) (*dto.SettingsResponse, error)
	UpdateSettings(ctx context.Context, userId uuid.UUID, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type preferenceService struct {
	preferenceRepo   contract.PreferenceRepository
	retrievalService IRetrievalService
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	log              logger.ILogger
}

func NewPreferenceService(
	preferenceRepo contract.PreferenceRepository,
	retrievalService IRetrievalService,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IPreferenceService {
	return &preferenceService{
		preferenceRepo:   preferenceRepo,
		retrievalService: retrievalService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

func (s *preferenceService) Save(ctx context.Context, userId uuid.UUID, req *dto.SavePreferenceRequest) (*dto.PreferenceResponse, error) {
	category := req.Category
	if category == "" {
		category = "other"
	}

	pref := &entity.Preference{
		Id:        uuid.New(),
		UserId:    userId,
		Key:       req.Key,
		Value:     req.Value,
		Category:  category,
		CreatedAt: time.Now(),
	}

	// Upsert on (user, key): same key overwrites the value.
	if err := s.preferenceRepo.Save(ctx, pref); err != nil {
		return nil, err
	}

	s.publishSync(ctx, userId, pref.Id, dto.SyncActionUpsert)
	s.publishMutation(ctx, "PREFERENCE_SAVED", pref.Id, userId)
	return prefToResponse(pref), nil
}

func (s *preferenceService) List(ctx context.Context, userId uuid.UUID) ([]*dto.PreferenceResponse, error) {
	prefs, err := s.preferenceRepo.FindAllByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.PreferenceResponse, 0, len(prefs))
	for _, p := range prefs {
		res = append(res, prefToResponse(p))
	}
	return res, nil
}

func (s *preferenceService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	pref, err := s.preferenceRepo.FindOne(ctx, specification.ByID{ID: id}, specification.ByUser{UserID: userId})
	if err != nil {
		return err
	}
	if pref == nil {
		return ErrNotFound
	}

	if err := s.preferenceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishSync(ctx, userId, id, dto.SyncActionDelete)
	s.publishMutation(ctx, "PREFERENCE_DELETED", id, userId)
	return nil
}

func (s *preferenceService) GetSettings(ctx context.Context, userId uuid.UUID) (*dto.SettingsResponse, error) {
	settings, err := s.retrievalService.ResolveSettings(ctx, userId)
	if err != nil {
		return nil, err
	}
	return settingsToResponse(settings), nil
}

func (s *preferenceService) UpdateSettings(ctx context.Context, userId uuid.UUID, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := s.retrievalService.ResolveSettings(ctx, userId)
	if err != nil {
		return nil, err
	}

	updated := *settings
	updated.UserId = userId
	if req.SendNotes != nil {
		updated.SendNotes = *req.SendNotes
	}
	if req.SendDigests != nil {
		updated.SendDigests = *req.SendDigests
	}
	if req.SendDocs != nil {
		updated.SendDocs = *req.SendDocs
	}
	if req.SendRawLogs != nil {
		updated.SendRawLogs = *req.SendRawLogs
	}
	if req.PIIMasking != nil {
		updated.PIIMasking = *req.PIIMasking
	}
	if req.LLMEnabled != nil {
		updated.LLMEnabled = *req.LLMEnabled
	}
	if updated.Id == uuid.Nil {
		updated.Id = uuid.New()
		updated.CreatedAt = time.Now()
	}

	if err := s.preferenceRepo.SaveSettings(ctx, &updated); err != nil {
		return nil, err
	}
	s.retrievalService.InvalidateSettings(userId)

	return settingsToResponse(&updated), nil
}

func (s *preferenceService) publishSync(ctx context.Context, userId, prefId uuid.UUID, action string) {
	payload, err := json.Marshal(dto.SyncJobMessage{
		Kind:      string(entity.KindPreference),
		ContentId: prefId,
		Action:    action,
		UserId:    userId,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Error("preference", "failed to publish sync job", map[string]interface{}{
			"preference_id": prefId.String(),
			"error":         err.Error(),
		})
	}
}

func (s *preferenceService) publishMutation(ctx context.Context, eventType string, prefId, userId uuid.UUID) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewContentMutation(eventType, string(entity.KindPreference), prefId.String(), userId.String())
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("preference", "mutation event publish failed", map[string]interface{}{"error": err.Error()})
	}
}

func prefToResponse(p *entity.Preference) *dto.PreferenceResponse {
	return &dto.PreferenceResponse{
		Id:       p.Id,
		Key:      p.Key,
		Value:    p.Value,
		Category: p.Category,
	}
}

func settingsToResponse(s *entity.UserSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		SendNotes:   s.SendNotes,
		SendDigests: s.SendDigests,
		SendDocs:    s.SendDocs,
		SendRawLogs: s.SendRawLogs,
		PIIMasking:  s.PIIMasking,
		LLMEnabled:  s.LLMEnabled,
	}
}
