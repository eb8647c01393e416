package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DailyLog struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_logs_user_date,priority:1"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_logs_user_date,priority:2"`
	RawText   string    `gorm:"type:text;not null"`
	Mood      *int
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (DailyLog) TableName() string {
	return "daily_logs"
}

type DailyDigest struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	LogId     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Summary   string         `gorm:"type:text"`
	Tags      datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Topics    datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Actions   datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (DailyDigest) TableName() string {
	return "daily_digests"
}
