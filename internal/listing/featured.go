package listing

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"iyf-showcase/backend/internal/dto"
)

// ProjectSource 作品数据来源（由 internal/client.Client 实现）
type ProjectSource interface {
	FetchProjects(ctx context.Context, q dto.ProjectQuery) ([]dto.ProjectResponse, error)
}

// SeasonContext 当前赛季上下文（由 season.Registry 实现）
type SeasonContext interface {
	Current() (dto.SeasonResponse, bool)
	Subscribe(fn func(dto.SeasonResponse)) (unsubscribe func())
}

// FeaturedState 首页精选作品状态
type FeaturedState struct {
	SeasonID *int
	Projects []dto.ProjectResponse
	Loading  bool
	Error    string
}

// FeaturedController 首页精选作品控制器
// 跟随当前赛季拉取，不做搜索与分页
type FeaturedController struct {
	src         ProjectSource
	logger      *zap.Logger
	unsubscribe func()

	mu     sync.Mutex
	state  FeaturedState
	req    inflight
	closed bool
}

// NewFeaturedController 创建控制器并订阅赛季变更
// 当前赛季已确定时立即拉取
// 先订阅再读取当前赛季，避免两步之间完成的加载通知丢失
func NewFeaturedController(src ProjectSource, seasons SeasonContext, logger *zap.Logger) *FeaturedController {
	fc := &FeaturedController{src: src, logger: logger}

	fc.unsubscribe = seasons.Subscribe(func(s dto.SeasonResponse) {
		fc.mu.Lock()
		defer fc.mu.Unlock()
		fc.selectLocked(s.ID)
	})

	if cur, ok := seasons.Current(); ok {
		fc.mu.Lock()
		// 订阅回调已先行选定赛季时不重复拉取
		if fc.state.SeasonID == nil {
			fc.selectLocked(cur.ID)
		}
		fc.mu.Unlock()
	}
	return fc
}

// Retry 以当前赛季重新拉取
func (fc *FeaturedController) Retry() <-chan struct{} {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.state.SeasonID == nil {
		return closedChan()
	}
	return fc.fetchLocked()
}

// Settled 最新一次拉取完成时关闭
func (fc *FeaturedController) Settled() <-chan struct{} {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.req.settled()
}

// State 返回状态快照
func (fc *FeaturedController) State() FeaturedState {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	s := fc.state
	s.Projects = append([]dto.ProjectResponse(nil), fc.state.Projects...)
	if s.SeasonID != nil {
		id := *s.SeasonID
		s.SeasonID = &id
	}
	return s
}

// Close 取消订阅与进行中的请求
func (fc *FeaturedController) Close() {
	fc.mu.Lock()
	fc.closed = true
	fc.req.stop()
	fc.mu.Unlock()

	if fc.unsubscribe != nil {
		fc.unsubscribe()
	}
}

// ── 内部辅助方法 ──

func (fc *FeaturedController) selectLocked(seasonID int) {
	if fc.closed {
		return
	}
	fc.state.SeasonID = &seasonID
	fc.fetchLocked()
}

func (fc *FeaturedController) fetchLocked() <-chan struct{} {
	if fc.closed {
		return closedChan()
	}

	seasonID := *fc.state.SeasonID
	q := dto.ProjectQuery{SeasonID: &seasonID, Featured: true, WithStudentInfo: true}
	ctx, cancel, gen, done := fc.req.begin()
	fc.state.Loading = true
	fc.state.Error = ""

	go func() {
		defer close(done)
		defer cancel()

		projects, err := fc.src.FetchProjects(ctx, q)

		fc.mu.Lock()
		defer fc.mu.Unlock()
		if fc.closed || !fc.req.current(gen) {
			return
		}

		fc.state.Loading = false
		if err != nil {
			fc.state.Error = errorMessage(err)
			fc.logger.Warn("精选作品拉取失败", zap.Int("season_id", seasonID), zap.Error(err))
			return
		}
		fc.state.Projects = projects
	}()

	return done
}
