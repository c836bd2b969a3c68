package repository

import (
	"context"

	"gorm.io/gorm"

	"iyf-showcase/backend/internal/model"
)

// SeasonRepository 赛季数据访问接口
type SeasonRepository interface {
	List(ctx context.Context) ([]model.Season, error)
	GetByID(ctx context.Context, id int) (*model.Season, error)
	GetCurrent(ctx context.Context) (*model.Season, error)
	Count(ctx context.Context) (int64, error)
	SetCurrent(ctx context.Context, id int) error
}

type seasonRepo struct {
	db *gorm.DB
}

// NewSeasonRepo 创建 SeasonRepository 实例
func NewSeasonRepo(db *gorm.DB) SeasonRepository {
	return &seasonRepo{db: db}
}

func (r *seasonRepo) List(ctx context.Context) ([]model.Season, error) {
	var seasons []model.Season
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&seasons).Error
	return seasons, err
}

func (r *seasonRepo) GetByID(ctx context.Context, id int) (*model.Season, error) {
	var season model.Season
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&season).Error
	if err != nil {
		return nil, err
	}
	return &season, nil
}

// GetCurrent 返回被标记为当前的赛季；无标记时返回 ID 最大（最新）的赛季
func (r *seasonRepo) GetCurrent(ctx context.Context) (*model.Season, error) {
	var season model.Season
	err := r.db.WithContext(ctx).
		Order("is_current DESC").
		Order("id DESC").
		First(&season).Error
	if err != nil {
		return nil, err
	}
	return &season, nil
}

func (r *seasonRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Season{}).Count(&total).Error
	return total, err
}

// SetCurrent 在同一事务内清除旧的当前赛季并标记新赛季
func (r *seasonRepo) SetCurrent(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Season{}).
			Where("is_current = ?", true).
			Update("is_current", false).Error; err != nil {
			return err
		}
		res := tx.Model(&model.Season{}).
			Where("id = ?", id).
			Update("is_current", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
