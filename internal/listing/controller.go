package listing

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"iyf-showcase/backend/internal/dto"
)

// StudentSource 学员数据来源（由 internal/client.Client 实现）
type StudentSource interface {
	FetchStudents(ctx context.Context, q dto.StudentQuery) ([]dto.StudentResponse, error)
}

// State 学员目录的原始状态
type State struct {
	SearchTerm       string
	CurrentPage      int
	SelectedSeasonID *int
	AllResults       []dto.StudentResponse
	Loading          bool
	Error            string
}

// Card 带头像装饰的学员条目
type Card struct {
	dto.StudentResponse
	Initials string
	Color    string
}

// View 由 State 派生的可渲染视图
// Loading 或 Error 非空时 Cards 为空
type View struct {
	Loading    bool
	Error      string
	Cards      []Card
	Page       int
	TotalPages int
	Matches    int
	HasPrev    bool
	HasNext    bool
}

// Controller 学员目录列表控制器
// 切换赛季会重新拉取，搜索与翻页只作用于已拉取的结果
type Controller struct {
	src    StudentSource
	logger *zap.Logger

	mu     sync.Mutex
	state  State
	req    inflight
	closed bool
}

// NewController 创建控制器；调用 Start 发起首次拉取
func NewController(src StudentSource, logger *zap.Logger) *Controller {
	return &Controller{
		src:    src,
		logger: logger,
		state:  State{CurrentPage: 1},
	}
}

// Start 拉取全部赛季的学员
func (c *Controller) Start() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchLocked()
}

// SelectSeason 切换赛季过滤（nil 表示全部赛季），页码重置为 1 并重新拉取
func (c *Controller) SelectSeason(seasonID *int) <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return closedChan()
	}
	if seasonID != nil {
		id := *seasonID
		seasonID = &id
	}
	c.state.SelectedSeasonID = seasonID
	c.state.CurrentPage = 1
	return c.fetchLocked()
}

// Retry 以相同参数重新拉取
func (c *Controller) Retry() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchLocked()
}

// SetSearch 更新搜索词并回到第 1 页，不触发拉取
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.state.SearchTerm = term
	c.state.CurrentPage = 1
}

// NextPage 下一页；已是最后一页时不变
func (c *Controller) NextPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goToLocked(c.state.CurrentPage + 1)
}

// PrevPage 上一页；已是第 1 页时不变
func (c *Controller) PrevPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goToLocked(c.state.CurrentPage - 1)
}

// GoToPage 跳转到指定页；越界时不变
func (c *Controller) GoToPage(page int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goToLocked(page)
}

// Settled 最新一次拉取完成时关闭
func (c *Controller) Settled() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.req.settled()
}

// Close 取消进行中的请求，此后状态不再变化
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.req.stop()
}

// State 返回状态快照
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.AllResults = append([]dto.StudentResponse(nil), c.state.AllResults...)
	if s.SelectedSeasonID != nil {
		id := *s.SelectedSeasonID
		s.SelectedSeasonID = &id
	}
	return s
}

// View 派生当前页视图
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{Loading: c.state.Loading, Error: c.state.Error, Page: c.state.CurrentPage}
	if v.Loading || v.Error != "" {
		return v
	}

	filtered := Filter(c.state.AllResults, c.state.SearchTerm)
	v.Matches = len(filtered)
	v.TotalPages = TotalPages(len(filtered), PageSize)
	v.HasPrev = v.Page > 1
	v.HasNext = v.Page < v.TotalPages

	for _, s := range Paginate(filtered, v.Page, PageSize) {
		v.Cards = append(v.Cards, Card{StudentResponse: s, Initials: Initials(s.Name), Color: ColorFor(s.ID)})
	}
	return v
}

// ── 内部辅助方法 ──

func (c *Controller) goToLocked(page int) bool {
	if c.closed || c.state.Loading {
		return false
	}
	total := TotalPages(len(Filter(c.state.AllResults, c.state.SearchTerm)), PageSize)
	if page < 1 || page > total || page == c.state.CurrentPage {
		return false
	}
	c.state.CurrentPage = page
	return true
}

// fetchLocked 发起拉取，调用方须持锁
func (c *Controller) fetchLocked() <-chan struct{} {
	if c.closed {
		return closedChan()
	}

	q := dto.StudentQuery{SeasonID: c.state.SelectedSeasonID, WithSeasonInfo: true}
	ctx, cancel, gen, done := c.req.begin()
	c.state.Loading = true
	c.state.Error = ""

	go func() {
		defer close(done)
		defer cancel()

		students, err := c.src.FetchStudents(ctx, q)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || !c.req.current(gen) {
			c.logger.Debug("丢弃过期的学员列表响应", zap.Uint64("gen", gen))
			return
		}

		c.state.Loading = false
		if err != nil {
			c.state.Error = errorMessage(err)
			c.logger.Warn("学员列表拉取失败", zap.Error(err))
			return
		}
		c.state.AllResults = students
	}()

	return done
}
