package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DocumentStatus is the processing state machine for an uploaded document:
// pending -> processing -> completed | failed. A failed document records
// its error and is eligible for bounded retry.
type DocumentStatus string

const (
	DocumentPending    DocumentStatus = "pending"
	DocumentProcessing DocumentStatus = "processing"
	DocumentCompleted  DocumentStatus = "completed"
	DocumentFailed     DocumentStatus = "failed"
)

type Document struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	Title         string
	FilePath      string
	FileType      string // pdf, txt, md
	ExtractedText string
	Summary       string
	Status        DocumentStatus
	ErrorMessage  string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// DocumentChunk is a slice of extracted document text for RAG, unique per
// (document, index).
type DocumentChunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	ChunkIndex int
	Content    string
	Metadata   map[string]interface{}
	CreatedAt  time.Time
}

// IndexTitle labels the chunk in retrieval results.
func (c *DocumentChunk) IndexTitle(documentTitle string) string {
	return fmt.Sprintf("%s - Chunk %d", documentTitle, c.ChunkIndex)
}
