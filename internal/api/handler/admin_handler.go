package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"iyf-showcase/backend/config"
	"iyf-showcase/backend/internal/dto"
	"iyf-showcase/backend/internal/service"
	pkgerrors "iyf-showcase/backend/pkg/errors"
	"iyf-showcase/backend/pkg/response"
)

// AdminHandler 管理端 HTTP 处理器
type AdminHandler struct {
	featured   *config.FeaturedConfig
	authSvc    service.AuthService
	projectSvc service.ProjectService
	seasonSvc  service.SeasonService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(
	featured *config.FeaturedConfig,
	authSvc service.AuthService,
	projectSvc service.ProjectService,
	seasonSvc service.SeasonService,
) *AdminHandler {
	return &AdminHandler{
		featured:   featured,
		authSvc:    authSvc,
		projectSvc: projectSvc,
		seasonSvc:  seasonSvc,
	}
}

// IssueToken 管理员登录，签发 Access Token
// POST /api/admin/token
func (h *AdminHandler) IssueToken(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid request body")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, 17001, "Invalid username or password")
		case errors.Is(err, service.ErrAdminDisabled):
			response.Forbidden(c, 17002, "Admin login is disabled")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// FixFeatured 将配置赛季的前 N 个作品标记为精选
// GET /api/fix-featured
// 响应不走统一信封，保持 {success, message, count, projects} 结构
func (h *AdminHandler) FixFeatured(c *gin.Context) {
	seasonID := h.featured.SeasonID

	result, err := h.projectSvc.MarkFeatured(c.Request.Context(), seasonID, h.featured.Limit)
	if err != nil {
		if errors.Is(err, service.ErrNoProjectsInSeason) {
			c.JSON(http.StatusOK, dto.FixFeaturedResponse{
				Success:  false,
				Message:  fmt.Sprintf("No projects found in season %d", seasonID),
				Projects: []dto.ProjectResponse{},
			})
			return
		}

		msg := "Failed to update featured projects"
		var me *pkgerrors.MutationError
		if errors.As(err, &me) && me.Err != nil {
			msg = me.Err.Error()
		}
		c.JSON(http.StatusInternalServerError, dto.FixFeaturedResponse{
			Success:  false,
			Projects: []dto.ProjectResponse{},
			Error:    msg,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// SetCurrentSeason 切换当前赛季
// PUT /api/seasons/:id/current
func (h *AdminHandler) SetCurrentSeason(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "Invalid season id")
		return
	}

	if err := h.seasonSvc.SetCurrent(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSeasonNotFound) {
			response.NotFound(c, 14001, "Season not found")
			return
		}
		response.InternalError(c)
		return
	}

	season, err := h.seasonSvc.GetCurrent(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, season)
}
