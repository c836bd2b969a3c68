package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"iyf-showcase/backend/internal/dto"
	"iyf-showcase/backend/internal/model"
	"iyf-showcase/backend/internal/repository"
	pkgerrors "iyf-showcase/backend/pkg/errors"
)

// ── 赛季模块业务错误 ──

var ErrSeasonNotFound = errors.New("赛季不存在")

const seasonsCacheKey = "showcase:seasons"

// Cache 赛季列表缓存（由 pkg/redis.Client 实现）
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) error
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// SeasonService 赛季业务接口
type SeasonService interface {
	List(ctx context.Context) ([]dto.SeasonResponse, error)
	GetCurrent(ctx context.Context) (*dto.SeasonResponse, error)
	SetCurrent(ctx context.Context, id int) error
}

type seasonService struct {
	repo   *repository.Repository
	cache  Cache
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger
}

// NewSeasonService 创建 SeasonService 实例
func NewSeasonService(repo *repository.Repository, cache Cache, ttl time.Duration, logger *zap.Logger) SeasonService {
	return &seasonService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// ────────────────────── List ──────────────────────

// List 返回按 ID 升序的赛季列表
// 优先读缓存；并发的未命中请求合并为一次查库
func (s *seasonService) List(ctx context.Context) ([]dto.SeasonResponse, error) {
	if s.cache != nil {
		var cached []dto.SeasonResponse
		if err := s.cache.GetJSON(ctx, seasonsCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	v, err, _ := s.group.Do(seasonsCacheKey, func() (interface{}, error) {
		seasons, err := s.repo.Season.List(ctx)
		if err != nil {
			return nil, err
		}
		result := make([]dto.SeasonResponse, 0, len(seasons))
		for i := range seasons {
			result = append(result, toSeasonResponse(&seasons[i]))
		}
		return result, nil
	})
	if err != nil {
		s.logger.Error("列出赛季失败", zap.Error(err))
		return nil, &pkgerrors.LoadError{Err: err}
	}

	result := v.([]dto.SeasonResponse)
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, seasonsCacheKey, result, s.ttl); err != nil {
			s.logger.Warn("写入赛季缓存失败", zap.Error(err))
		}
	}
	return result, nil
}

// ────────────────────── GetCurrent ──────────────────────

func (s *seasonService) GetCurrent(ctx context.Context) (*dto.SeasonResponse, error) {
	season, err := s.repo.Season.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeasonNotFound
		}
		s.logger.Error("查询当前赛季失败", zap.Error(err))
		return nil, &pkgerrors.LoadError{Err: err}
	}

	resp := toSeasonResponse(season)
	return &resp, nil
}

// ────────────────────── SetCurrent ──────────────────────

func (s *seasonService) SetCurrent(ctx context.Context, id int) error {
	if err := s.repo.Season.SetCurrent(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSeasonNotFound
		}
		s.logger.Error("切换当前赛季失败", zap.Int("season_id", id), zap.Error(err))
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, seasonsCacheKey); err != nil {
			s.logger.Warn("清除赛季缓存失败", zap.Error(err))
		}
	}

	s.logger.Info("当前赛季已切换", zap.Int("season_id", id))
	return nil
}

func toSeasonResponse(season *model.Season) dto.SeasonResponse {
	return dto.SeasonResponse{
		ID:        season.ID,
		Name:      season.Name,
		IsCurrent: season.IsCurrent,
	}
}
