package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"iyf-showcase/backend/internal/dto"
	"iyf-showcase/backend/internal/service"
	pkgerrors "iyf-showcase/backend/pkg/errors"
	"iyf-showcase/backend/pkg/response"
)

// ProjectHandler 作品模块 HTTP 处理器
type ProjectHandler struct {
	projectSvc service.ProjectService
}

// NewProjectHandler 创建 ProjectHandler
func NewProjectHandler(projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc}
}

// ListProjects 获取作品列表
// GET /api/projects?seasonId=3&featured=true&withStudentInfo=true
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var q dto.ProjectQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "Invalid query parameters", err.Error())
		return
	}

	projects, err := h.projectSvc.List(c.Request.Context(), &q)
	if err != nil {
		var qe *pkgerrors.QueryError
		if errors.As(err, &qe) {
			response.Error(c, http.StatusInternalServerError, 15001, qe.Message)
			return
		}
		response.InternalError(c)
		return
	}

	response.OKList(c, projects)
}
