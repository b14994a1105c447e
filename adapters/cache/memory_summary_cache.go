package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/khoahotran/portfolio-admin/internal/domain/dashboard"
)

// memorySummaryCache is used when Redis is not configured. It is local to one process.
type memorySummaryCache struct {
	c   *gocache.Cache
	ttl time.Duration
}

func NewMemorySummaryCache(ttl time.Duration) dashboard.Cache {
	return &memorySummaryCache{c: gocache.New(ttl, 2*ttl), ttl: ttl}
}

func (m *memorySummaryCache) Get(context.Context) (*dashboard.Summary, bool, error) {
	v, ok := m.c.Get(SummaryKey)
	if !ok {
		return nil, false, nil
	}
	s, ok := v.(*dashboard.Summary)
	return s, ok, nil
}

func (m *memorySummaryCache) Set(_ context.Context, s *dashboard.Summary) error {
	m.c.Set(SummaryKey, s, m.ttl)
	return nil
}

func (m *memorySummaryCache) Invalidate(context.Context) error {
	m.c.Delete(SummaryKey)
	return nil
}
