package handler

import (
	"iyf-showcase/backend/config"
	"iyf-showcase/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Season   *SeasonHandler
	Project  *ProjectHandler
	Student  *StudentHandler
	Overview *OverviewHandler
	Export   *ExportHandler
	Admin    *AdminHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Season:   NewSeasonHandler(svc.Season),
		Project:  NewProjectHandler(svc.Project),
		Student:  NewStudentHandler(svc.Student),
		Overview: NewOverviewHandler(svc.Overview),
		Export:   NewExportHandler(svc.Export),
		Admin:    NewAdminHandler(&cfg.Featured, svc.Auth, svc.Project, svc.Season),
	}
}
