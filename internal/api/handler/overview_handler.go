package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"iyf-showcase/backend/internal/service"
	"iyf-showcase/backend/pkg/response"
)

// OverviewHandler 首页聚合 HTTP 处理器
type OverviewHandler struct {
	overviewSvc service.OverviewService
}

// NewOverviewHandler 创建 OverviewHandler
func NewOverviewHandler(overviewSvc service.OverviewService) *OverviewHandler {
	return &OverviewHandler{overviewSvc: overviewSvc}
}

type overviewQuery struct {
	SeasonID *int `form:"seasonId" binding:"omitempty,min=1"`
}

// GetOverview 首页数据：当前赛季、精选作品与统计
// GET /api/showcase/overview?seasonId=3
func (h *OverviewHandler) GetOverview(c *gin.Context) {
	var q overviewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "Invalid query parameters")
		return
	}

	overview, err := h.overviewSvc.Get(c.Request.Context(), q.SeasonID)
	if err != nil {
		if errors.Is(err, service.ErrSeasonNotFound) {
			response.NotFound(c, 14001, "Season not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, overview)
}
