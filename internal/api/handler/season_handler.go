package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"iyf-showcase/backend/internal/service"
	"iyf-showcase/backend/pkg/response"
)

// SeasonHandler 赛季模块 HTTP 处理器
type SeasonHandler struct {
	seasonSvc service.SeasonService
}

// NewSeasonHandler 创建 SeasonHandler
func NewSeasonHandler(seasonSvc service.SeasonService) *SeasonHandler {
	return &SeasonHandler{seasonSvc: seasonSvc}
}

// ListSeasons 获取赛季列表
// GET /api/seasons
func (h *SeasonHandler) ListSeasons(c *gin.Context) {
	seasons, err := h.seasonSvc.List(c.Request.Context())
	if err != nil {
		h.handleSeasonError(c, err)
		return
	}

	response.OKList(c, seasons)
}

// GetCurrentSeason 获取当前赛季
// GET /api/seasons/current
func (h *SeasonHandler) GetCurrentSeason(c *gin.Context) {
	season, err := h.seasonSvc.GetCurrent(c.Request.Context())
	if err != nil {
		h.handleSeasonError(c, err)
		return
	}

	response.OK(c, season)
}

// handleSeasonError 统一处理赛季模块业务错误
func (h *SeasonHandler) handleSeasonError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSeasonNotFound):
		response.NotFound(c, 14001, "Season not found")
	default:
		response.Error(c, 500, 14002, "Failed to fetch seasons")
	}
}
