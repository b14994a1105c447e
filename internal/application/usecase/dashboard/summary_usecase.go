package dashboard

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-admin/internal/domain/dashboard"
	"github.com/khoahotran/portfolio-admin/internal/domain/experience"
	"github.com/khoahotran/portfolio-admin/internal/domain/feedback"
	"github.com/khoahotran/portfolio-admin/internal/domain/project"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

var tracer = otel.Tracer("dashboard_usecase")

type SummaryUseCase struct {
	projectRepo    project.Repository
	experienceRepo experience.Repository
	feedbackRepo   feedback.Repository
	cache          dashboard.Cache
	months         int
	logger         logger.Logger
	now            func() time.Time
}

func NewSummaryUseCase(
	pRepo project.Repository,
	eRepo experience.Repository,
	fRepo feedback.Repository,
	cache dashboard.Cache,
	months int,
	log logger.Logger,
) *SummaryUseCase {
	if months <= 0 {
		months = dashboard.DefaultMonths
	}
	return &SummaryUseCase{
		projectRepo:    pRepo,
		experienceRepo: eRepo,
		feedbackRepo:   fRepo,
		cache:          cache,
		months:         months,
		logger:         log,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Execute serves the summary from cache when possible. Cache failures degrade to a fresh computation.
func (uc *SummaryUseCase) Execute(ctx context.Context) (*dashboard.Summary, error) {
	ctx, span := tracer.Start(ctx, "Summary.Execute")
	defer span.End()

	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx)
		if err != nil {
			uc.logger.Warn("Dashboard cache read failed", zap.Error(err))
		} else if ok {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return cached, nil
		}
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))

	s, err := uc.compute(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	uc.store(ctx, s)
	return s, nil
}

// Refresh drops the cached summary and stores a newly computed one.
func (uc *SummaryUseCase) Refresh(ctx context.Context) (*dashboard.Summary, error) {
	ctx, span := tracer.Start(ctx, "Summary.Refresh")
	defer span.End()

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.logger.Warn("Dashboard cache invalidation failed", zap.Error(err))
		}
	}
	s, err := uc.compute(ctx)
	if err != nil {
		return nil, err
	}
	uc.store(ctx, s)
	return s, nil
}

func (uc *SummaryUseCase) store(ctx context.Context, s *dashboard.Summary) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, s); err != nil {
		uc.logger.Warn("Dashboard cache write failed", zap.Error(err))
	}
}

func (uc *SummaryUseCase) compute(ctx context.Context) (*dashboard.Summary, error) {
	projects, err := uc.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects for dashboard: %w", err)
	}
	experiences, err := uc.experienceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list experiences for dashboard: %w", err)
	}
	items, err := uc.feedbackRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback for dashboard: %w", err)
	}

	created := make([]time.Time, len(projects))
	for i, p := range projects {
		created[i] = p.CreatedAt
	}
	statuses := make([]feedback.Status, len(items))
	for i, f := range items {
		statuses[i] = f.Status
	}

	now := uc.now()
	return &dashboard.Summary{
		ProjectCount:     len(projects),
		ExperienceCount:  len(experiences),
		Feedback:         dashboard.CountFeedback(statuses),
		ProjectsPerMonth: dashboard.BucketProjectsByMonth(created, now, uc.months),
		GeneratedAt:      now,
	}, nil
}
