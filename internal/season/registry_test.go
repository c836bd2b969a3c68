package season

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"iyf-showcase/backend/internal/dto"
	pkgerrors "iyf-showcase/backend/pkg/errors"
)

type fakeSource struct {
	seasons []dto.SeasonResponse
	err     error
	calls   atomic.Int32
}

func (f *fakeSource) ListSeasons(context.Context) ([]dto.SeasonResponse, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.seasons, nil
}

var threeSeasons = []dto.SeasonResponse{
	{ID: 1, Name: "Season 1"},
	{ID: 2, Name: "Season 2", IsCurrent: true},
	{ID: 3, Name: "Season 3"},
}

func TestRegistry_Load_UsesFlaggedCurrent(t *testing.T) {
	r := NewRegistry(&fakeSource{seasons: threeSeasons}, zap.NewNop())

	_, ok := r.Current()
	assert.False(t, ok, "加载前不应有当前赛季")

	require.NoError(t, r.Load(context.Background()))

	cur, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, 2, cur.ID)
	assert.Len(t, r.Seasons(), 3)
	assert.False(t, r.LoadFailed())
}

func TestRegistry_Load_FallbackHighestID(t *testing.T) {
	src := &fakeSource{seasons: []dto.SeasonResponse{{ID: 4, Name: "Season 4"}, {ID: 7, Name: "Season 7"}, {ID: 5, Name: "Season 5"}}}
	r := NewRegistry(src, zap.NewNop())
	require.NoError(t, r.Load(context.Background()))

	cur, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, 7, cur.ID)
}

func TestRegistry_Load_Failure(t *testing.T) {
	src := &fakeSource{err: &pkgerrors.LoadError{Err: errors.New("connection refused")}}
	r := NewRegistry(src, zap.NewNop())

	err := r.Load(context.Background())

	var le *pkgerrors.LoadError
	assert.True(t, errors.As(err, &le))
	assert.True(t, r.LoadFailed())
	assert.Empty(t, r.Seasons())
	_, ok := r.Current()
	assert.False(t, ok)
}

func TestRegistry_Load_Once(t *testing.T) {
	src := &fakeSource{seasons: threeSeasons}
	r := NewRegistry(src, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Load(context.Background())
		}()
	}
	wg.Wait()
	require.NoError(t, r.Load(context.Background()))

	assert.LessOrEqual(t, src.calls.Load(), int32(10))
	calls := src.calls.Load()
	_ = r.Load(context.Background())
	assert.Equal(t, calls, src.calls.Load(), "加载成功后不应再次请求")
}

func TestRegistry_SetCurrent_NotifiesSynchronously(t *testing.T) {
	r := NewRegistry(&fakeSource{seasons: threeSeasons}, zap.NewNop())
	require.NoError(t, r.Load(context.Background()))

	var got []int
	unsubscribe := r.Subscribe(func(s dto.SeasonResponse) { got = append(got, s.ID) })

	r.SetCurrent(threeSeasons[2])
	assert.Equal(t, []int{3}, got, "SetCurrent 返回前应已通知订阅者")

	cur, _ := r.Current()
	assert.Equal(t, 3, cur.ID)

	r.SetCurrent(threeSeasons[2])
	assert.Equal(t, []int{3}, got, "相同赛季不应重复通知")

	unsubscribe()
	unsubscribe()
	r.SetCurrent(threeSeasons[0])
	assert.Equal(t, []int{3}, got, "取消订阅后不应收到通知")
}

func TestRegistry_Load_NotifiesSubscribers(t *testing.T) {
	r := NewRegistry(&fakeSource{seasons: threeSeasons}, zap.NewNop())

	var got []int
	r.Subscribe(func(s dto.SeasonResponse) { got = append(got, s.ID) })
	require.NoError(t, r.Load(context.Background()))

	assert.Equal(t, []int{2}, got)
}

func TestRegistry_SetCurrent_ConcurrentOrder(t *testing.T) {
	r := NewRegistry(&fakeSource{seasons: threeSeasons}, zap.NewNop())
	require.NoError(t, r.Load(context.Background()))

	var (
		mu   sync.Mutex
		last int
	)
	r.Subscribe(func(s dto.SeasonResponse) {
		mu.Lock()
		last = s.ID
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.SetCurrent(threeSeasons[i%len(threeSeasons)])
		}(i)
	}
	wg.Wait()

	cur, ok := r.Current()
	require.True(t, ok)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, cur.ID, last, "最后一次通知必须与当前赛季一致")
}
