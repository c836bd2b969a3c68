package service

import (
	"go.uber.org/zap"

	"iyf-showcase/backend/config"
	"iyf-showcase/backend/internal/repository"
	"iyf-showcase/backend/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Season   SeasonService
	Project  ProjectService
	Student  StudentService
	Overview OverviewService
	Export   ExportService
	Auth     AuthService
}

// NewService 创建 Service 聚合
// cache 可为 nil（Redis 不可用时降级为直接查库）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache Cache,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) *Service {
	seasonSvc := NewSeasonService(repo, cache, cfg.Cache.SeasonsTTL, logger)
	projectSvc := NewProjectService(repo, logger)
	return &Service{
		Season:   seasonSvc,
		Project:  projectSvc,
		Student:  NewStudentService(repo, logger),
		Overview: NewOverviewService(repo, seasonSvc, projectSvc, logger),
		Export:   NewExportService(repo, logger),
		Auth:     NewAuthService(&cfg.Auth, jwtMgr, logger),
	}
}

// ── 内部辅助方法 ──

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
