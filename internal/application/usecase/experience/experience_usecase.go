package experience

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-admin/adapters/event"
	"github.com/khoahotran/portfolio-admin/internal/application/service"
	"github.com/khoahotran/portfolio-admin/internal/domain/experience"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

type ExperienceUseCase struct {
	repo      experience.Repository
	publisher service.EventPublisher
	logger    logger.Logger
	now       func() time.Time
}

func NewExperienceUseCase(r experience.Repository, pub service.EventPublisher, log logger.Logger) *ExperienceUseCase {
	return &ExperienceUseCase{
		repo:      r,
		publisher: pub,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ExperienceInput carries every editable field. Create and update both apply it as a full replace.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	StartDate   time.Time
	EndDate     *time.Time
	IsCurrent   bool
	Description string
}

func (in ExperienceInput) apply(e *experience.Experience) {
	e.Title = strings.TrimSpace(in.Title)
	e.Company = strings.TrimSpace(in.Company)
	e.Location = strings.TrimSpace(in.Location)
	e.StartDate = in.StartDate
	e.EndDate = in.EndDate
	e.IsCurrent = in.IsCurrent
	e.Description = in.Description
}

func (uc *ExperienceUseCase) CreateExperience(ctx context.Context, in ExperienceInput) (*experience.Experience, error) {
	now := uc.now()
	e := &experience.Experience{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.apply(e)

	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, e); err != nil {
		return nil, fmt.Errorf("save experience failed: %w", err)
	}

	service.PublishInBackground(uc.publisher, uc.logger, event.NewContentEvent(event.ContentEventCreated, event.ResourceExperience, e.ID))
	return e, nil
}

func (uc *ExperienceUseCase) UpdateExperience(ctx context.Context, id uuid.UUID, in ExperienceInput) (*experience.Experience, error) {
	e, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.apply(e)
	e.UpdatedAt = uc.now()

	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("update experience failed: %w", err)
	}

	service.PublishInBackground(uc.publisher, uc.logger, event.NewContentEvent(event.ContentEventUpdated, event.ResourceExperience, e.ID))
	return e, nil
}

func (uc *ExperienceUseCase) DeleteExperience(ctx context.Context, id uuid.UUID) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete experience failed: %w", err)
	}
	service.PublishInBackground(uc.publisher, uc.logger, event.NewContentEvent(event.ContentEventDeleted, event.ResourceExperience, id))
	return nil
}

func (uc *ExperienceUseCase) GetExperience(ctx context.Context, id uuid.UUID) (*experience.Experience, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *ExperienceUseCase) ListExperiences(ctx context.Context) ([]*experience.Experience, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list experiences failed: %w", err)
	}
	return items, nil
}
