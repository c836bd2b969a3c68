package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Season  SeasonRepository
	Student StudentRepository
	Project ProjectRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Season:  NewSeasonRepo(db),
		Student: NewStudentRepo(db),
		Project: NewProjectRepo(db),
	}
}
