package contract

import (
	"context"

	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Save(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)

	// SearchKeyword is the substring fallback over title and body.
	SearchKeyword(ctx context.Context, userId uuid.UUID, query string, limit int) ([]*entity.Note, error)
}

type LogRepository interface {
	Save(ctx context.Context, log *entity.DailyLog) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DailyLog, error)

	// UpsertDigest regenerates the digest for a log wholesale; one digest
	// per log.
	UpsertDigest(ctx context.Context, digest *entity.DailyDigest) error
	FindDigest(ctx context.Context, specs ...specification.Specification) (*entity.DailyDigest, error)
	FindDigestByLog(ctx context.Context, logId uuid.UUID) (*entity.DailyDigest, error)
	SearchDigestsKeyword(ctx context.Context, userId uuid.UUID, query string, limit int) ([]*entity.DailyDigest, error)
}

type DocumentRepository interface {
	Save(ctx context.Context, doc *entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)

	// ReplaceChunks deletes existing chunks for the document and inserts
	// the new set atomically.
	ReplaceChunks(ctx context.Context, documentId uuid.UUID, chunks []*entity.DocumentChunk) error
	FindChunk(ctx context.Context, id uuid.UUID) (*entity.DocumentChunk, error)
	FindChunks(ctx context.Context, documentId uuid.UUID) ([]*entity.DocumentChunk, error)
	SearchChunksKeyword(ctx context.Context, userId uuid.UUID, query string, limit int) ([]*entity.DocumentChunk, error)
}

type TaskRepository interface {
	Save(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Task, error)
	SearchKeyword(ctx context.Context, userId uuid.UUID, query string, limit int) ([]*entity.Task, error)
}

type PreferenceRepository interface {
	Save(ctx context.Context, pref *entity.Preference) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Preference, error)
	FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Preference, error)

	// FindSettings returns nil (not an error) when the user has no explicit
	// settings row; callers fall back to process-wide defaults.
	FindSettings(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error)
	SaveSettings(ctx context.Context, settings *entity.UserSettings) error
}

type ChatRepository interface {
	CreateSession(ctx context.Context, session *entity.ChatSession) error
	UpdateSession(ctx context.Context, session *entity.ChatSession) error
	DeleteSession(ctx context.Context, id uuid.UUID) error
	FindSession(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindSessions(ctx context.Context, userId uuid.UUID) ([]*entity.ChatSession, error)
	CreateMessage(ctx context.Context, message *entity.ChatMessage) error
	FindMessages(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error)
	CountMessages(ctx context.Context, sessionId uuid.UUID) (int64, error)
}
