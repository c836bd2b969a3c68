package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"iyf-showcase/backend/internal/service"
	"iyf-showcase/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportStudents 导出学员名录
// GET /api/students/export?seasonId=3
func (h *ExportHandler) ExportStudents(c *gin.Context) {
	var q overviewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "Invalid query parameters")
		return
	}

	buf, filename, err := h.exportSvc.ExportStudents(c.Request.Context(), q.SeasonID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoStudents):
			response.NotFound(c, 18001, "No students to export")
		default:
			response.InternalError(c)
		}
		return
	}

	// 设置下载响应头
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
