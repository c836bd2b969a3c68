package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"iyf-showcase/backend/internal/dto"
	"iyf-showcase/backend/internal/model"
	"iyf-showcase/backend/internal/repository"
	pkgerrors "iyf-showcase/backend/pkg/errors"
)

// ── 作品模块业务错误 ──

var ErrNoProjectsInSeason = errors.New("赛季内没有作品")

// ProjectService 作品业务接口
type ProjectService interface {
	List(ctx context.Context, q *dto.ProjectQuery) ([]dto.ProjectResponse, error)
	MarkFeatured(ctx context.Context, seasonID, limit int) (*dto.FixFeaturedResponse, error)
}

type projectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProjectService 创建 ProjectService 实例
func NewProjectService(repo *repository.Repository, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

// List 按赛季 / 精选条件查询作品，按 ID 升序
// WithStudentInfo 只附加学员信息，不改变结果集
func (s *projectService) List(ctx context.Context, q *dto.ProjectQuery) ([]dto.ProjectResponse, error) {
	filter := repository.ProjectFilter{SeasonID: q.SeasonID, FeaturedOnly: q.Featured}

	projects, err := s.repo.Project.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询作品失败", zap.Any("filter", filter), zap.Error(err))
		return nil, &pkgerrors.QueryError{
			Op:      "fetch projects",
			Params:  projectQueryParams(q),
			Message: projectsFailureMessage(q),
			Err:     err,
		}
	}

	result := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		result = append(result, toProjectResponse(&projects[i]))
	}

	if q.WithStudentInfo && len(result) > 0 {
		if err := s.attachStudentInfo(ctx, result); err != nil {
			s.logger.Error("解析作品学员信息失败", zap.Error(err))
			return nil, &pkgerrors.QueryError{
				Op:      "fetch projects",
				Params:  projectQueryParams(q),
				Message: projectsFailureMessage(q),
				Err:     err,
			}
		}
	}

	return result, nil
}

// attachStudentInfo 按（赛季, 姓名）匹配学员表；未匹配时使用作品上的学员姓名
func (s *projectService) attachStudentInfo(ctx context.Context, projects []dto.ProjectResponse) error {
	seen := make(map[int]bool)
	seasonIDs := make([]int, 0)
	for _, p := range projects {
		if !seen[p.SeasonID] {
			seen[p.SeasonID] = true
			seasonIDs = append(seasonIDs, p.SeasonID)
		}
	}

	students, err := s.repo.Student.ListBySeasons(ctx, seasonIDs)
	if err != nil {
		return err
	}

	index := make(map[string]*model.Student, len(students))
	for i := range students {
		key := studentKey(students[i].SeasonID, students[i].Name)
		if _, dup := index[key]; !dup {
			index[key] = &students[i]
		}
	}

	for i := range projects {
		p := &projects[i]
		if st, ok := index[studentKey(p.SeasonID, p.Student)]; ok {
			p.StudentInfo = &dto.StudentInfo{ID: st.ID, Name: st.Name, ProfileURL: deref(st.ProfileURL)}
			continue
		}
		p.StudentInfo = &dto.StudentInfo{Name: p.Student}
	}
	return nil
}

// ────────────────────── MarkFeatured ──────────────────────

// MarkFeatured 将赛季内前 limit 个作品标记为精选，返回该赛季全部精选作品
func (s *projectService) MarkFeatured(ctx context.Context, seasonID, limit int) (*dto.FixFeaturedResponse, error) {
	ids, err := s.repo.Project.MarkFeatured(ctx, seasonID, limit)
	if err != nil {
		s.logger.Error("标记精选作品失败", zap.Int("season_id", seasonID), zap.Error(err))
		return nil, &pkgerrors.MutationError{SeasonID: seasonID, Err: err}
	}
	if len(ids) == 0 {
		return nil, ErrNoProjectsInSeason
	}

	featured, err := s.repo.Project.List(ctx, repository.ProjectFilter{SeasonID: &seasonID, FeaturedOnly: true})
	if err != nil {
		s.logger.Error("查询精选作品失败", zap.Int("season_id", seasonID), zap.Error(err))
		return nil, &pkgerrors.MutationError{SeasonID: seasonID, Err: err}
	}

	resp := &dto.FixFeaturedResponse{
		Success:  true,
		Message:  fmt.Sprintf("Updated %d featured projects for season %d", len(featured), seasonID),
		Count:    len(featured),
		Projects: make([]dto.ProjectResponse, 0, len(featured)),
	}
	for i := range featured {
		resp.Projects = append(resp.Projects, toProjectResponse(&featured[i]))
	}

	s.logger.Info("精选作品已更新",
		zap.Int("season_id", seasonID),
		zap.Ints("selected_ids", ids),
		zap.Int("featured_count", resp.Count),
	)
	return resp, nil
}

// ── 内部辅助方法 ──

func studentKey(seasonID int, name string) string {
	return strconv.Itoa(seasonID) + "|" + strings.ToLower(strings.TrimSpace(name))
}

func projectQueryParams(q *dto.ProjectQuery) map[string]string {
	params := map[string]string{
		"featured":        strconv.FormatBool(q.Featured),
		"withStudentInfo": strconv.FormatBool(q.WithStudentInfo),
	}
	if q.SeasonID != nil {
		params["seasonId"] = strconv.Itoa(*q.SeasonID)
	}
	return params
}

func projectsFailureMessage(q *dto.ProjectQuery) string {
	if q.Featured {
		return "Failed to fetch featured projects"
	}
	return "Failed to fetch projects"
}

func toProjectResponse(p *model.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          p.ID,
		Title:       deref(p.Title),
		Student:     p.Student,
		Description: deref(p.Description),
		URL:         p.URL,
		GithubURL:   deref(p.GithubURL),
		Category:    deref(p.Category),
		Grade:       deref(p.Grade),
		SeasonID:    p.SeasonID,
		IsFeatured:  p.IsFeatured,
	}
}
