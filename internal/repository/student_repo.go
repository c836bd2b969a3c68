package repository

import (
	"context"

	"gorm.io/gorm"

	"iyf-showcase/backend/internal/model"
)

// StudentFilter 学员查询条件
type StudentFilter struct {
	SeasonID   *int // nil 表示全部赛季
	WithSeason bool // 预加载赛季（用于返回赛季名称）
}

// StudentRepository 学员数据访问接口
type StudentRepository interface {
	List(ctx context.Context, filter StudentFilter) ([]model.Student, error)
	ListBySeasons(ctx context.Context, seasonIDs []int) ([]model.Student, error)
	Count(ctx context.Context, seasonID *int) (int64, error)
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) List(ctx context.Context, filter StudentFilter) ([]model.Student, error) {
	var students []model.Student

	db := r.db.WithContext(ctx).Model(&model.Student{})
	if filter.SeasonID != nil {
		db = db.Where("season_id = ?", *filter.SeasonID)
	}
	if filter.WithSeason {
		db = db.Preload("Season")
	}

	err := db.Order("id ASC").Find(&students).Error
	return students, err
}

// ListBySeasons 批量查询若干赛季的学员，用于解析作品的学员信息
func (r *studentRepo) ListBySeasons(ctx context.Context, seasonIDs []int) ([]model.Student, error) {
	if len(seasonIDs) == 0 {
		return nil, nil
	}
	var students []model.Student
	err := r.db.WithContext(ctx).
		Where("season_id IN ?", seasonIDs).
		Order("id ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) Count(ctx context.Context, seasonID *int) (int64, error) {
	var total int64
	db := r.db.WithContext(ctx).Model(&model.Student{})
	if seasonID != nil {
		db = db.Where("season_id = ?", *seasonID)
	}
	err := db.Count(&total).Error
	return total, err
}
