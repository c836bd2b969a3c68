package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"iyf-showcase/backend/internal/model"
	"iyf-showcase/backend/internal/repository"
	"iyf-showcase/backend/pkg/redis"
)

var errDBDown = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

// ── Mock SeasonRepository ──

type mockSeasonRepo struct {
	mu        sync.Mutex
	seasons   map[int]*model.Season
	listCalls int
	err       error
}

func newMockSeasonRepo(seasons ...model.Season) *mockSeasonRepo {
	m := &mockSeasonRepo{seasons: make(map[int]*model.Season)}
	for i := range seasons {
		s := seasons[i]
		m.seasons[s.ID] = &s
	}
	return m
}

func (m *mockSeasonRepo) sorted() []model.Season {
	result := make([]model.Season, 0, len(m.seasons))
	for _, s := range m.seasons {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (m *mockSeasonRepo) List(_ context.Context) ([]model.Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(), nil
}

func (m *mockSeasonRepo) GetByID(_ context.Context, id int) (*model.Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.seasons[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSeasonRepo) GetCurrent(_ context.Context) (*model.Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	all := m.sorted()
	if len(all) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range all {
		if all[i].IsCurrent {
			return &all[i], nil
		}
	}
	return &all[len(all)-1], nil
}

func (m *mockSeasonRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.seasons)), m.err
}

func (m *mockSeasonRepo) SetCurrent(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.seasons[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, s := range m.seasons {
		s.IsCurrent = s.ID == id
	}
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students []model.Student
	seasons  *mockSeasonRepo
	err      error
}

func newMockStudentRepo(seasons *mockSeasonRepo, students ...model.Student) *mockStudentRepo {
	return &mockStudentRepo{students: students, seasons: seasons}
}

func (m *mockStudentRepo) List(ctx context.Context, filter repository.StudentFilter) ([]model.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Student
	for _, st := range m.students {
		if filter.SeasonID != nil && st.SeasonID != *filter.SeasonID {
			continue
		}
		if filter.WithSeason {
			if season, err := m.seasons.GetByID(ctx, st.SeasonID); err == nil {
				st.Season = season
			}
		}
		result = append(result, st)
	}
	return result, nil
}

func (m *mockStudentRepo) ListBySeasons(_ context.Context, seasonIDs []int) ([]model.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	want := make(map[int]bool, len(seasonIDs))
	for _, id := range seasonIDs {
		want[id] = true
	}
	var result []model.Student
	for _, st := range m.students {
		if want[st.SeasonID] {
			result = append(result, st)
		}
	}
	return result, nil
}

func (m *mockStudentRepo) Count(_ context.Context, seasonID *int) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for _, st := range m.students {
		if seasonID == nil || st.SeasonID == *seasonID {
			n++
		}
	}
	return n, nil
}

// ── Mock ProjectRepository ──

type mockProjectRepo struct {
	mu        sync.Mutex
	projects  []*model.Project
	err       error
	updateErr error
}

func newMockProjectRepo(projects ...model.Project) *mockProjectRepo {
	m := &mockProjectRepo{}
	for i := range projects {
		p := projects[i]
		m.projects = append(m.projects, &p)
	}
	sort.Slice(m.projects, func(i, j int) bool { return m.projects[i].ID < m.projects[j].ID })
	return m
}

func (m *mockProjectRepo) match(p *model.Project, filter repository.ProjectFilter) bool {
	if filter.SeasonID != nil && p.SeasonID != *filter.SeasonID {
		return false
	}
	if filter.FeaturedOnly && !p.IsFeatured {
		return false
	}
	return true
}

func (m *mockProjectRepo) List(_ context.Context, filter repository.ProjectFilter) ([]model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Project
	for _, p := range m.projects {
		if m.match(p, filter) {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) Count(_ context.Context, filter repository.ProjectFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for _, p := range m.projects {
		if m.match(p, filter) {
			n++
		}
	}
	return n, nil
}

func (m *mockProjectRepo) MarkFeatured(_ context.Context, seasonID, limit int) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	var ids []int
	for _, p := range m.projects {
		if len(ids) == limit {
			break
		}
		if p.SeasonID == seasonID {
			p.IsFeatured = true
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

// ── Mock Cache ──

type mockCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (c *mockCache) GetJSON(_ context.Context, key string, dst interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return redis.ErrCacheMiss
	}
	return json.Unmarshal(raw, dst)
}

func (c *mockCache) SetJSON(_ context.Context, key string, v interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *mockCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

// ── 测试辅助 ──

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

func newTestRepo(seasons *mockSeasonRepo, students *mockStudentRepo, projects *mockProjectRepo) *repository.Repository {
	return &repository.Repository{
		Season:  seasons,
		Student: students,
		Project: projects,
	}
}
