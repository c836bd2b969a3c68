// Package season 保存赛季列表与当前赛季，作为显式传递的赛季上下文
package season

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"iyf-showcase/backend/internal/dto"
)

// Source 赛季数据来源（由 internal/client.Client 实现）
type Source interface {
	ListSeasons(ctx context.Context) ([]dto.SeasonResponse, error)
}

type subscriber struct {
	id int
	fn func(dto.SeasonResponse)
}

// Registry 赛季注册表
// 赛季列表在会话内只加载一次；当前赛季变更会同步通知所有订阅者
type Registry struct {
	src    Source
	logger *zap.Logger
	group  singleflight.Group

	// notifyMu 串行化"变更并通知"，保证订阅者收到的顺序与 current 一致
	notifyMu sync.Mutex

	mu         sync.RWMutex
	seasons    []dto.SeasonResponse
	current    dto.SeasonResponse
	hasCurrent bool
	loaded     bool
	failed     bool
	subs       []subscriber
	nextSubID  int
}

// NewRegistry 创建赛季注册表
func NewRegistry(src Source, logger *zap.Logger) *Registry {
	return &Registry{src: src, logger: logger}
}

// Load 拉取赛季列表并确定默认当前赛季
// 已成功加载过则直接返回；并发调用合并为一次请求
// 失败时返回 LoadError，注册表保持空列表并置 LoadFailed
func (r *Registry) Load(ctx context.Context) error {
	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()
	if loaded {
		return nil
	}

	_, err, _ := r.group.Do("seasons", func() (interface{}, error) {
		seasons, err := r.src.ListSeasons(ctx)
		if err != nil {
			r.mu.Lock()
			r.seasons = nil
			r.failed = true
			r.mu.Unlock()
			r.logger.Warn("赛季列表加载失败，降级为空列表", zap.Error(err))
			return nil, err
		}

		r.notifyMu.Lock()
		defer r.notifyMu.Unlock()

		r.mu.Lock()
		r.seasons = seasons
		r.loaded = true
		r.failed = false
		def, ok := defaultSeason(seasons)
		notify := ok && !r.hasCurrent
		if notify {
			r.current, r.hasCurrent = def, true
		}
		subs := r.snapshotSubs()
		r.mu.Unlock()

		r.logger.Info("赛季列表已加载", zap.Int("count", len(seasons)))
		if notify {
			for _, s := range subs {
				s.fn(def)
			}
		}
		return nil, nil
	})
	return err
}

// Seasons 返回按 ID 升序的赛季列表副本
func (r *Registry) Seasons() []dto.SeasonResponse {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]dto.SeasonResponse, len(r.seasons))
	copy(out, r.seasons)
	return out
}

// LoadFailed 最近一次加载是否失败
func (r *Registry) LoadFailed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.failed
}

// Current 返回当前赛季；加载完成前返回 false
func (r *Registry) Current() (dto.SeasonResponse, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, r.hasCurrent
}

// SetCurrent 切换当前赛季，返回前已通知全部订阅者
// 与当前赛季相同时不触发通知
// 并发调用按顺序逐个通知；订阅回调内不得再调用 SetCurrent
func (r *Registry) SetCurrent(s dto.SeasonResponse) {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	r.mu.Lock()
	if r.hasCurrent && r.current.ID == s.ID {
		r.mu.Unlock()
		return
	}
	r.current, r.hasCurrent = s, true
	subs := r.snapshotSubs()
	r.mu.Unlock()

	for _, sub := range subs {
		sub.fn(s)
	}
}

// Subscribe 订阅当前赛季变更，返回取消订阅函数
func (r *Registry) Subscribe(fn func(dto.SeasonResponse)) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextSubID
	r.nextSubID++
	r.subs = append(r.subs, subscriber{id: id, fn: fn})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			for i, s := range r.subs {
				if s.id == id {
					r.subs = append(r.subs[:i], r.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// snapshotSubs 调用方须持有写锁
func (r *Registry) snapshotSubs() []subscriber {
	out := make([]subscriber, len(r.subs))
	copy(out, r.subs)
	return out
}

// defaultSeason 后端标记为当前的赛季；都未标记时取 ID 最大者
func defaultSeason(seasons []dto.SeasonResponse) (dto.SeasonResponse, bool) {
	if len(seasons) == 0 {
		return dto.SeasonResponse{}, false
	}
	best := seasons[0]
	for _, s := range seasons {
		if s.IsCurrent {
			return s, true
		}
		if s.ID > best.ID {
			best = s
		}
	}
	return best, true
}
