package listing

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"iyf-showcase/backend/internal/dto"
	"iyf-showcase/backend/internal/season"
	pkgerrors "iyf-showcase/backend/pkg/errors"
)

type fakeProjects struct {
	mu    sync.Mutex
	calls []dto.ProjectQuery
	err   error
}

func (f *fakeProjects) FetchProjects(_ context.Context, q dto.ProjectQuery) ([]dto.ProjectResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, q)
	if f.err != nil {
		return nil, f.err
	}
	return []dto.ProjectResponse{{ID: *q.SeasonID * 10, SeasonID: *q.SeasonID, IsFeatured: true}}, nil
}

type staticSeasons []dto.SeasonResponse

func (s staticSeasons) ListSeasons(context.Context) ([]dto.SeasonResponse, error) { return s, nil }

func newLoadedRegistry(t *testing.T) *season.Registry {
	t.Helper()
	reg := season.NewRegistry(staticSeasons{
		{ID: 1, Name: "Season 1"},
		{ID: 2, Name: "Season 2"},
		{ID: 3, Name: "Season 3", IsCurrent: true},
	}, zap.NewNop())
	require.NoError(t, reg.Load(context.Background()))
	return reg
}

func TestFeatured_FetchesCurrentSeason(t *testing.T) {
	src := &fakeProjects{}
	fc := NewFeaturedController(src, newLoadedRegistry(t), zap.NewNop())
	defer fc.Close()

	wait(t, fc.Settled())

	st := fc.State()
	require.Len(t, st.Projects, 1)
	assert.Equal(t, 3, st.Projects[0].SeasonID)

	require.Len(t, src.calls, 1)
	q := src.calls[0]
	assert.Equal(t, 3, *q.SeasonID)
	assert.True(t, q.Featured, "精选查询必须同时带上 featured 与 seasonId")
	assert.True(t, q.WithStudentInfo)
}

func TestFeatured_RefetchesOnSeasonChange(t *testing.T) {
	src := &fakeProjects{}
	reg := newLoadedRegistry(t)
	fc := NewFeaturedController(src, reg, zap.NewNop())
	defer fc.Close()
	wait(t, fc.Settled())

	reg.SetCurrent(dto.SeasonResponse{ID: 1, Name: "Season 1"})
	wait(t, fc.Settled())

	st := fc.State()
	assert.Equal(t, 1, *st.SeasonID)
	require.Len(t, st.Projects, 1)
	assert.Equal(t, 10, st.Projects[0].ID)
}

func TestFeatured_WaitsForRegistry(t *testing.T) {
	src := &fakeProjects{}
	reg := season.NewRegistry(staticSeasons{{ID: 2, Name: "Season 2"}}, zap.NewNop())
	fc := NewFeaturedController(src, reg, zap.NewNop())
	defer fc.Close()

	assert.Nil(t, fc.State().SeasonID, "赛季未加载前不应拉取")

	require.NoError(t, reg.Load(context.Background()))
	wait(t, fc.Settled())
	assert.Equal(t, 2, *fc.State().SeasonID)
}

func TestFeatured_ErrorAndRetry(t *testing.T) {
	src := &fakeProjects{err: &pkgerrors.QueryError{Message: "Failed to fetch featured projects"}}
	fc := NewFeaturedController(src, newLoadedRegistry(t), zap.NewNop())
	defer fc.Close()
	wait(t, fc.Settled())

	assert.Equal(t, "Failed to fetch featured projects", fc.State().Error)

	src.mu.Lock()
	src.err = nil
	src.mu.Unlock()
	wait(t, fc.Retry())

	st := fc.State()
	assert.Empty(t, st.Error)
	assert.Len(t, st.Projects, 1)
}

func TestFeatured_CloseUnsubscribes(t *testing.T) {
	src := &fakeProjects{}
	reg := newLoadedRegistry(t)
	fc := NewFeaturedController(src, reg, zap.NewNop())
	wait(t, fc.Settled())
	fc.Close()

	reg.SetCurrent(dto.SeasonResponse{ID: 2, Name: "Season 2"})

	assert.Equal(t, 3, *fc.State().SeasonID)
	src.mu.Lock()
	defer src.mu.Unlock()
	assert.Len(t, src.calls, 1)
}

// loadOnRead 在首次读取当前赛季后立即完成注册表加载，
// 模拟加载恰好落在构造函数两步之间
type loadOnRead struct {
	*season.Registry
	once sync.Once
	t    *testing.T
}

func (l *loadOnRead) Current() (dto.SeasonResponse, bool) {
	cur, ok := l.Registry.Current()
	l.once.Do(func() { require.NoError(l.t, l.Registry.Load(context.Background())) })
	return cur, ok
}

func TestFeatured_LoadBetweenReadAndSubscribe(t *testing.T) {
	src := &fakeProjects{}
	reg := season.NewRegistry(staticSeasons{
		{ID: 1, Name: "Season 1"},
		{ID: 3, Name: "Season 3", IsCurrent: true},
	}, zap.NewNop())

	fc := NewFeaturedController(src, &loadOnRead{Registry: reg, t: t}, zap.NewNop())
	defer fc.Close()
	wait(t, fc.Settled())

	st := fc.State()
	require.NotNil(t, st.SeasonID, "注册表已有当前赛季时必须拉取")
	assert.Equal(t, 3, *st.SeasonID)
	require.Len(t, st.Projects, 1)
	assert.Equal(t, 3, st.Projects[0].SeasonID)
}
