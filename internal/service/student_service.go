package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"iyf-showcase/backend/internal/dto"
	"iyf-showcase/backend/internal/model"
	"iyf-showcase/backend/internal/repository"
	pkgerrors "iyf-showcase/backend/pkg/errors"
)

// StudentService 学员业务接口
type StudentService interface {
	List(ctx context.Context, q *dto.StudentQuery) ([]dto.StudentResponse, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

// List 按赛季查询学员，按 ID 升序；WithSeasonInfo 时附带赛季名称
func (s *studentService) List(ctx context.Context, q *dto.StudentQuery) ([]dto.StudentResponse, error) {
	students, err := s.repo.Student.List(ctx, repository.StudentFilter{
		SeasonID:   q.SeasonID,
		WithSeason: q.WithSeasonInfo,
	})
	if err != nil {
		params := map[string]string{"withSeasonInfo": strconv.FormatBool(q.WithSeasonInfo)}
		if q.SeasonID != nil {
			params["seasonId"] = strconv.Itoa(*q.SeasonID)
		}
		s.logger.Error("查询学员失败", zap.Any("params", params), zap.Error(err))
		return nil, &pkgerrors.QueryError{
			Op:      "fetch students",
			Params:  params,
			Message: "Failed to fetch students",
			Err:     err,
		}
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, toStudentResponse(&students[i], q.WithSeasonInfo))
	}
	return result, nil
}

func toStudentResponse(st *model.Student, withSeason bool) dto.StudentResponse {
	resp := dto.StudentResponse{
		ID:         st.ID,
		Name:       st.Name,
		SeasonID:   st.SeasonID,
		ProfileURL: deref(st.ProfileURL),
	}
	if withSeason && st.Season != nil {
		resp.Season = st.Season.Name
	}
	return resp
}
