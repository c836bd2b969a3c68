package repository

import (
	"context"

	"gorm.io/gorm"

	"iyf-showcase/backend/internal/model"
)

// ProjectFilter 作品查询条件
// SeasonID 与 FeaturedOnly 同时给出时两个条件都必须满足
type ProjectFilter struct {
	SeasonID     *int
	FeaturedOnly bool
}

// ProjectRepository 作品数据访问接口
type ProjectRepository interface {
	List(ctx context.Context, filter ProjectFilter) ([]model.Project, error)
	Count(ctx context.Context, filter ProjectFilter) (int64, error)
	MarkFeatured(ctx context.Context, seasonID, limit int) ([]int, error)
}

type projectRepo struct {
	db *gorm.DB
}

// NewProjectRepo 创建 ProjectRepository 实例
func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) scoped(ctx context.Context, filter ProjectFilter) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.Project{})
	if filter.SeasonID != nil {
		db = db.Where("season_id = ?", *filter.SeasonID)
	}
	if filter.FeaturedOnly {
		db = db.Where("is_featured = ?", true)
	}
	return db
}

func (r *projectRepo) List(ctx context.Context, filter ProjectFilter) ([]model.Project, error) {
	var projects []model.Project
	err := r.scoped(ctx, filter).Order("id ASC").Find(&projects).Error
	return projects, err
}

func (r *projectRepo) Count(ctx context.Context, filter ProjectFilter) (int64, error) {
	var total int64
	err := r.scoped(ctx, filter).Count(&total).Error
	return total, err
}

// MarkFeatured 将赛季内 ID 最小的 limit 个作品标记为精选
// 不清除该集合之外已有的精选标记，重复执行结果不变
// 返回被选中的作品 ID；赛季内没有作品时返回空切片
func (r *projectRepo) MarkFeatured(ctx context.Context, seasonID, limit int) ([]int, error) {
	var ids []int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Project{}).
			Where("season_id = ?", seasonID).
			Order("id ASC").
			Limit(limit).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Model(&model.Project{}).
			Where("id IN ?", ids).
			Update("is_featured", true).Error
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
