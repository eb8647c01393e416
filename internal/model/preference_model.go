package model

import (
	"time"

	"github.com/google/uuid"
)

type Preference struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_preferences_user_key,priority:1"`
	Key       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_preferences_user_key,priority:2"`
	Value     string    `gorm:"type:text;not null"`
	Category  string    `gorm:"type:varchar(50);default:'other'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Preference) TableName() string {
	return "preferences"
}

type UserSettings struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	SendNotes   bool      `gorm:"default:true"`
	SendDigests bool      `gorm:"default:true"`
	SendDocs    bool      `gorm:"default:false"`
	SendRawLogs bool      `gorm:"default:false"`
	PIIMasking  bool      `gorm:"default:true"`
	LLMEnabled  bool      `gorm:"default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}
