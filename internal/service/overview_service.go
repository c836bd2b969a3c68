package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"iyf-showcase/backend/internal/dto"
	"iyf-showcase/backend/internal/repository"
)

// OverviewService 首页聚合业务接口
type OverviewService interface {
	// Get 返回指定赛季（nil 表示当前赛季）的精选作品与全站统计
	Get(ctx context.Context, seasonID *int) (*dto.OverviewResponse, error)
}

type overviewService struct {
	repo     *repository.Repository
	seasons  SeasonService
	projects ProjectService
	logger   *zap.Logger
}

// NewOverviewService 创建 OverviewService 实例
func NewOverviewService(repo *repository.Repository, seasons SeasonService, projects ProjectService, logger *zap.Logger) OverviewService {
	return &overviewService{repo: repo, seasons: seasons, projects: projects, logger: logger}
}

func (s *overviewService) Get(ctx context.Context, seasonID *int) (*dto.OverviewResponse, error) {
	resp := &dto.OverviewResponse{Featured: []dto.ProjectResponse{}}

	if seasonID == nil {
		current, err := s.seasons.GetCurrent(ctx)
		switch {
		case errors.Is(err, ErrSeasonNotFound):
			// 尚无赛季：仅返回统计
		case err != nil:
			return nil, err
		default:
			resp.Season = current
			seasonID = &current.ID
		}
	} else {
		season, err := s.repo.Season.GetByID(ctx, *seasonID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSeasonNotFound
			}
			s.logger.Error("查询赛季失败", zap.Int("season_id", *seasonID), zap.Error(err))
			return nil, err
		}
		sr := toSeasonResponse(season)
		resp.Season = &sr
	}

	g, gctx := errgroup.WithContext(ctx)

	if seasonID != nil {
		g.Go(func() error {
			featured, err := s.projects.List(gctx, &dto.ProjectQuery{
				SeasonID:        seasonID,
				Featured:        true,
				WithStudentInfo: true,
			})
			if err != nil {
				return err
			}
			resp.Featured = featured
			return nil
		})
	}
	g.Go(func() (err error) {
		resp.Stats.Seasons, err = s.repo.Season.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Stats.Students, err = s.repo.Student.Count(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		resp.Stats.Projects, err = s.repo.Project.Count(gctx, repository.ProjectFilter{})
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("加载首页数据失败", zap.Error(err))
		return nil, err
	}
	return resp, nil
}
