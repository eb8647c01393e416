package implementation

import (
	"context"
	"errors"

	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/mapper"
	"memoscribe-be/internal/model"
	"memoscribe-be/internal/repository/contract"
	"memoscribe-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PreferenceMapper
}

func NewPreferenceRepository(db *gorm.DB) contract.PreferenceRepository {
	return &PreferenceRepositoryImpl{
		db:     db,
		mapper: mapper.NewPreferenceMapper(),
	}
}

func (r *PreferenceRepositoryImpl) Save(ctx context.Context, pref *entity.Preference) error {
	m := r.mapper.ToModel(pref)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*pref = *r.mapper.ToEntity(m)
	return nil
}

func (r *PreferenceRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Preference{}, id).Error
}

func (r *PreferenceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Preference, error) {
	var m model.Preference
	query := applySpecifications(r.db.WithContext(ctx), specs)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PreferenceRepositoryImpl) FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Preference, error) {
	var models []*model.Preference
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("key ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PreferenceRepositoryImpl) FindSettings(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error) {
	var m model.UserSettings
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SettingsToEntity(&m), nil
}

func (r *PreferenceRepositoryImpl) SaveSettings(ctx context.Context, settings *entity.UserSettings) error {
	m := r.mapper.SettingsToModel(settings)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"llm_enabled", "send_notes", "send_digests", "send_docs", "send_raw_logs", "pii_masking", "updated_at",
			}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*settings = *r.mapper.SettingsToEntity(m)
	return nil
}
