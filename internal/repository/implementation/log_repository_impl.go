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

type LogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LogMapper
}

func NewLogRepository(db *gorm.DB) contract.LogRepository {
	return &LogRepositoryImpl{
		db:     db,
		mapper: mapper.NewLogMapper(),
	}
}

func (r *LogRepositoryImpl) Save(ctx context.Context, log *entity.DailyLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *LogRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("log_id = ?", id).Delete(&model.DailyDigest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.DailyLog{}, id).Error
	})
}

func (r *LogRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DailyLog, error) {
	var m model.DailyLog
	query := applySpecifications(r.db.WithContext(ctx), specs)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LogRepositoryImpl) UpsertDigest(ctx context.Context, digest *entity.DailyDigest) error {
	m := r.mapper.DigestToModel(digest)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "log_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"summary", "tags", "topics", "actions", "updated_at",
			}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*digest = *r.mapper.DigestToEntity(m)
	return nil
}

func (r *LogRepositoryImpl) FindDigest(ctx context.Context, specs ...specification.Specification) (*entity.DailyDigest, error) {
	var m model.DailyDigest
	query := applySpecifications(r.db.WithContext(ctx), specs)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DigestToEntity(&m), nil
}

func (r *LogRepositoryImpl) FindDigestByLog(ctx context.Context, logId uuid.UUID) (*entity.DailyDigest, error) {
	var m model.DailyDigest
	err := r.db.WithContext(ctx).Where("log_id = ?", logId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DigestToEntity(&m), nil
}

func (r *LogRepositoryImpl) SearchDigestsKeyword(ctx context.Context, userId uuid.UUID, query string, limit int) ([]*entity.DailyDigest, error) {
	var models []*model.DailyDigest
	err := r.db.WithContext(ctx).
		Joins("JOIN daily_logs ON daily_logs.id = daily_digests.log_id").
		Where("daily_logs.user_id = ?", userId).
		Where("daily_digests.summary ILIKE ?", "%"+query+"%").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.DigestsToEntities(models), nil
}
