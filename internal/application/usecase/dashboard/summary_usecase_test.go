package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-admin/adapters/event"
	"github.com/khoahotran/portfolio-admin/internal/domain/dashboard"
	"github.com/khoahotran/portfolio-admin/internal/domain/experience"
	"github.com/khoahotran/portfolio-admin/internal/domain/feedback"
	"github.com/khoahotran/portfolio-admin/internal/domain/project"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

type stubProjects struct {
	project.Repository
	items []*project.Project
	calls int
}

func (s *stubProjects) List(context.Context) ([]*project.Project, error) {
	s.calls++
	return s.items, nil
}

type stubExperiences struct {
	experience.Repository
	items []*experience.Experience
}

func (s *stubExperiences) List(context.Context) ([]*experience.Experience, error) {
	return s.items, nil
}

type stubFeedback struct {
	feedback.Repository
	items []*feedback.Feedback
	err   error
}

func (s *stubFeedback) List(context.Context) ([]*feedback.Feedback, error) {
	return s.items, s.err
}

type memCache struct {
	summary     *dashboard.Summary
	invalidated int
	getErr      error
}

func (c *memCache) Get(context.Context) (*dashboard.Summary, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.summary, c.summary != nil, nil
}

func (c *memCache) Set(_ context.Context, s *dashboard.Summary) error {
	c.summary = s
	return nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.invalidated++
	c.summary = nil
	return nil
}

func fixture() (*stubProjects, *stubExperiences, *stubFeedback) {
	mk := func(y int, m time.Month) *project.Project {
		return &project.Project{ID: uuid.New(), CreatedAt: time.Date(y, m, 10, 0, 0, 0, 0, time.UTC)}
	}
	return &stubProjects{items: []*project.Project{mk(2024, time.January), mk(2024, time.March), mk(2024, time.March)}},
		&stubExperiences{items: []*experience.Experience{{ID: uuid.New()}, {ID: uuid.New()}}},
		&stubFeedback{items: []*feedback.Feedback{
			{Status: feedback.StatusPending},
			{Status: feedback.StatusApproved},
			{Status: feedback.StatusRejected},
			{Status: feedback.StatusApproved},
		}}
}

func TestSummaryUseCase_ComputesAndCaches(t *testing.T) {
	projects, experiences, items := fixture()
	cache := &memCache{}
	uc := NewSummaryUseCase(projects, experiences, items, cache, 6, logger.NewNopLogger())

	first, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, first.ProjectCount)
	assert.Equal(t, 2, first.ExperienceCount)
	assert.Equal(t, dashboard.FeedbackBreakdown{Total: 4, Approved: 2, Pending: 1, Rejected: 1}, first.Feedback)
	require.Len(t, first.ProjectsPerMonth, 6)
	assert.Equal(t, "Oct 2023", first.ProjectsPerMonth[0].Label)
	assert.Equal(t, "Mar 2024", first.ProjectsPerMonth[5].Label)
	assert.Equal(t, 2, first.ProjectsPerMonth[5].Count)

	second, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, projects.calls)
}

func TestSummaryUseCase_CacheErrorFallsBack(t *testing.T) {
	projects, experiences, items := fixture()
	uc := NewSummaryUseCase(projects, experiences, items, &memCache{getErr: errors.New("redis down")}, 6, logger.NewNopLogger())

	s, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, s.ProjectCount)
}

func TestSummaryUseCase_StoreError(t *testing.T) {
	projects, experiences, items := fixture()
	items.err = errors.New("query failed")
	uc := NewSummaryUseCase(projects, experiences, items, nil, 6, logger.NewNopLogger())

	_, err := uc.Execute(context.Background())

	assert.Error(t, err)
}

func TestProcessContentEventUseCase(t *testing.T) {
	projects, experiences, items := fixture()
	cache := &memCache{}
	summaryUC := NewSummaryUseCase(projects, experiences, items, cache, 6, logger.NewNopLogger())
	uc := NewProcessContentEventUseCase(summaryUC, logger.NewNopLogger())

	_, err := summaryUC.Execute(context.Background())
	require.NoError(t, err)

	projects.items = append(projects.items, &project.Project{ID: uuid.New(), CreatedAt: time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, uc.Execute(context.Background(), event.NewContentEvent(event.ContentEventCreated, event.ResourceProject, uuid.New())))

	assert.Equal(t, 1, cache.invalidated)
	require.NotNil(t, cache.summary)
	assert.Equal(t, 4, cache.summary.ProjectCount)
	assert.Equal(t, "Apr 2024", cache.summary.ProjectsPerMonth[5].Label)

	require.NoError(t, uc.Execute(context.Background(), event.NewContentEvent(event.ContentEventUpdated, event.ResourceAbout, uuid.New())))
	assert.Equal(t, 1, cache.invalidated)
}
