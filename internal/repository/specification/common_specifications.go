package specification

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByID filters by ID
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// ByUser scopes a query to a single owner. Every retrieval query carries
// this; cross-user reads are impossible by construction.
type ByUser struct {
	UserID uuid.UUID
}

func (s ByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}

// FilterBy Generic Filter
type FilterBy struct {
	Field string
	Value interface{}
}

func (s FilterBy) Apply(db *gorm.DB) *gorm.DB {
	query := fmt.Sprintf("%s = ?", s.Field)
	return db.Where(query, s.Value)
}

func Filter(field string, value interface{}) Specification {
	return FilterBy{Field: field, Value: value}
}

// KeywordIn matches a case-insensitive substring against any of the given
// columns. Used by the keyword-fallback search path.
type KeywordIn struct {
	Columns []string
	Query   string
}

func (s KeywordIn) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Columns) == 0 || s.Query == "" {
		return db
	}
	pattern := "%" + s.Query + "%"
	clause := db.Session(&gorm.Session{NewDB: true}).Where(fmt.Sprintf("%s ILIKE ?", s.Columns[0]), pattern)
	for _, col := range s.Columns[1:] {
		clause = clause.Or(fmt.Sprintf("%s ILIKE ?", col), pattern)
	}
	return db.Where(clause)
}
