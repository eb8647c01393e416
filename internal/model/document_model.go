package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"type:varchar(255);not null"`
	FilePath      string    `gorm:"type:varchar(512)"`
	FileType      string    `gorm:"type:varchar(10)"`
	ExtractedText string    `gorm:"type:text"`
	Summary       string    `gorm:"type:text"`
	Status        string    `gorm:"type:varchar(20);default:'pending'"`
	ErrorMessage  string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}

type DocumentChunk struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_chunks_doc_index,priority:1"`
	ChunkIndex int            `gorm:"not null;uniqueIndex:idx_chunks_doc_index,priority:2"`
	Content    string         `gorm:"type:text;not null"`
	Metadata   datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
