package service

import (
	"context"
	"strings"
	"time"

	"memoscribe-be/internal/dto"
	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/pkg/logger"
	"memoscribe-be/internal/repository/contract"
	"memoscribe-be/internal/repository/specification"
	"memoscribe-be/pkg/events"
	"memoscribe-be/pkg/generation"
	pkgNats "memoscribe-be/pkg/nats"
	"memoscribe-be/pkg/textutil"

	"github.com/google/uuid"
)

const sessionTitleLimit = 30

type IAssistantService interface {
	Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error)
	Write(ctx context.Context, userId uuid.UUID, req *dto.WriteRequest) (*dto.WriteResponse, error)
	Search(ctx context.Context, userId uuid.UUID, req *dto.SearchRequest) ([]*dto.SearchResultItem, error)

	ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
	GetMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.MessageResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
}

type assistantService struct {
	retrievalService IRetrievalService
	generator        *generation.Generator
	chatRepo         contract.ChatRepository
	eventPublisher   *pkgNats.Publisher
	log              logger.ILogger
}

func NewAssistantService(
	retrievalService IRetrievalService,
	generator *generation.Generator,
	chatRepo contract.ChatRepository,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		retrievalService: retrievalService,
		generator:        generator,
		chatRepo:         chatRepo,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

func (s *assistantService) Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error) {
	settings, err := s.retrievalService.ResolveSettings(ctx, userId)
	if err != nil {
		return nil, err
	}

	session, err := s.resolveSession(ctx, userId, req.SessionId, req.Question)
	if err != nil {
		return nil, err
	}

	userMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      "user",
		Content:   req.Question,
		CreatedAt: time.Now(),
	}
	if err := s.chatRepo.CreateMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	var answer generation.Answer
	var items []generation.ContextItem
	if !settings.LLMEnabled || !s.generator.IsAvailable() {
		answer = generation.UnavailableAnswer()
	} else {
		items, err = s.retrievalService.Retrieve(ctx, userId, req.Question, req.TopK)
		if err != nil {
			return nil, err
		}
		preferences, err := s.retrievalService.GetPreferences(ctx, userId)
		if err != nil {
			return nil, err
		}
		answer = s.generator.GenerateAnswer(ctx, req.Question, items, preferences)
		s.publishAudit(ctx, userId, "ask", session.Id, req.Question, items)
	}

	citations := toChatCitations(answer.Citations)
	assistantMsg := &entity.ChatMessage{
		Id:            uuid.New(),
		SessionId:     session.Id,
		Role:          "assistant",
		Content:       answer.Answer,
		Citations:     citations,
		NextQuestions: answer.NextQuestions,
		CreatedAt:     time.Now(),
	}
	if err := s.chatRepo.CreateMessage(ctx, assistantMsg); err != nil {
		return nil, err
	}

	return &dto.AskResponse{
		SessionId:     session.Id,
		Answer:        answer.Answer,
		NextQuestions: answer.NextQuestions,
		Citations:     citations,
		ContextUsed:   len(items),
	}, nil
}

func (s *assistantService) Write(ctx context.Context, userId uuid.UUID, req *dto.WriteRequest) (*dto.WriteResponse, error) {
	settings, err := s.retrievalService.ResolveSettings(ctx, userId)
	if err != nil {
		return nil, err
	}

	var writing generation.Writing
	if !settings.LLMEnabled || !s.generator.IsAvailable() {
		writing = generation.UnavailableWriting()
	} else {
		items, err := s.retrievalService.Retrieve(ctx, userId, req.Instruction, req.TopK)
		if err != nil {
			return nil, err
		}
		preferences, err := s.retrievalService.GetPreferences(ctx, userId)
		if err != nil {
			return nil, err
		}
		writing = s.generator.GenerateWriting(ctx, req.TemplateKind, req.Instruction, items, preferences)
		s.publishAudit(ctx, userId, "write", uuid.Nil, req.Instruction, items)
	}

	output := writing.Output
	if len(writing.MissingInfo) > 0 {
		var b strings.Builder
		b.WriteString(output)
		b.WriteString("\n\n【不足情報】\n")
		for _, info := range writing.MissingInfo {
			b.WriteString("- ")
			b.WriteString(info)
			b.WriteString("\n")
		}
		output = b.String()
	}

	return &dto.WriteResponse{
		Output:      output,
		Citations:   toChatCitations(writing.Citations),
		MissingInfo: writing.MissingInfo,
	}, nil
}

func (s *assistantService) Search(ctx context.Context, userId uuid.UUID, req *dto.SearchRequest) ([]*dto.SearchResultItem, error) {
	items, err := s.retrievalService.Retrieve(ctx, userId, req.Query, req.TopK)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.SearchResultItem, 0, len(items))
	for _, item := range items {
		results = append(results, &dto.SearchResultItem{
			ContentKind: item.Kind,
			ContentId:   item.ID,
			Title:       item.Title,
			Snippet:     textutil.Truncate(item.Content, 200),
		})
	}
	return results, nil
}

func (s *assistantService) ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	sessions, err := s.chatRepo.FindSessions(ctx, userId)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		res = append(res, &dto.SessionResponse{
			Id:        sess.Id,
			Title:     sess.Title,
			CreatedAt: sess.CreatedAt,
			UpdatedAt: sess.UpdatedAt,
		})
	}
	return res, nil
}

func (s *assistantService) GetMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.MessageResponse, error) {
	session, err := s.chatRepo.FindSession(ctx, specification.ByID{ID: sessionId}, specification.ByUser{UserID: userId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotFound
	}

	messages, err := s.chatRepo.FindMessages(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, &dto.MessageResponse{
			Id:            m.Id,
			Role:          m.Role,
			Content:       m.Content,
			Citations:     m.Citations,
			NextQuestions: m.NextQuestions,
			CreatedAt:     m.CreatedAt,
		})
	}
	return res, nil
}

func (s *assistantService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	session, err := s.chatRepo.FindSession(ctx, specification.ByID{ID: sessionId}, specification.ByUser{UserID: userId})
	if err != nil {
		return err
	}
	if session == nil {
		return ErrNotFound
	}
	return s.chatRepo.DeleteSession(ctx, sessionId)
}

func (s *assistantService) resolveSession(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID, question string) (*entity.ChatSession, error) {
	if sessionId != nil {
		session, err := s.chatRepo.FindSession(ctx, specification.ByID{ID: *sessionId}, specification.ByUser{UserID: userId})
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, ErrNotFound
		}
		return session, nil
	}

	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     textutil.Truncate(question, sessionTitleLimit),
		CreatedAt: time.Now(),
	}
	if err := s.chatRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// publishAudit records an LLM call on the audit stream. Auditing is best
// effort; a dead broker never fails the user request.
func (s *assistantService) publishAudit(ctx context.Context, userId uuid.UUID, action string, affectedId uuid.UUID, input string, items []generation.ContextItem) {
	if s.eventPublisher == nil {
		return
	}

	tokens := textutil.EstimateTokens(input)
	for _, item := range items {
		tokens += textutil.EstimateTokens(item.Content)
	}

	evt := events.NewAuditRecord(userId.String(), action, affectedId.String(), tokens, len(items))
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("assistant", "audit publish failed", map[string]interface{}{"error": err.Error()})
	}
}

func toChatCitations(citations []generation.Citation) []entity.ChatCitation {
	res := make([]entity.ChatCitation, 0, len(citations))
	for _, c := range citations {
		res = append(res, entity.ChatCitation{
			Ref:   c.Ref,
			Kind:  c.Kind,
			Title: c.Title,
			Quote: c.Quote,
		})
	}
	return res
}
