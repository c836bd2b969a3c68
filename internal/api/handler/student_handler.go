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

// StudentHandler 学员模块 HTTP 处理器
type StudentHandler struct {
	studentSvc service.StudentService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// ListStudents 获取学员列表
// GET /api/students?seasonId=3&withSeasonInfo=true
func (h *StudentHandler) ListStudents(c *gin.Context) {
	var q dto.StudentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "Invalid query parameters", err.Error())
		return
	}

	students, err := h.studentSvc.List(c.Request.Context(), &q)
	if err != nil {
		var qe *pkgerrors.QueryError
		if errors.As(err, &qe) {
			response.Error(c, http.StatusInternalServerError, 16001, qe.Message)
			return
		}
		response.InternalError(c)
		return
	}

	response.OKList(c, students)
}
