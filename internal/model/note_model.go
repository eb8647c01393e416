package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Note struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title      string         `gorm:"type:varchar(255);not null"`
	Body       string         `gorm:"type:text"`
	Tags       datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Importance int            `gorm:"default:2"`
	Visibility string         `gorm:"type:varchar(20);default:'private'"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
