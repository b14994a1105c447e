package about

import (
	"context"
	"fmt"
	"time"

	"github.com/khoahotran/portfolio-admin/adapters/event"
	"github.com/khoahotran/portfolio-admin/internal/application/service"
	"github.com/khoahotran/portfolio-admin/internal/domain/about"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

type AboutUseCase struct {
	aboutRepo about.Repository
	publisher service.EventPublisher
	logger    logger.Logger
	now       func() time.Time
}

func NewAboutUseCase(repo about.Repository, pub service.EventPublisher, log logger.Logger) *AboutUseCase {
	return &AboutUseCase{
		aboutRepo: repo,
		publisher: pub,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type GetAboutOutput struct {
	About *about.About
}

// ExecuteGetAbout returns the singleton, creating the empty default on first access.
func (uc *AboutUseCase) ExecuteGetAbout(ctx context.Context) (*GetAboutOutput, error) {
	a, err := uc.aboutRepo.GetOrCreate(ctx, about.NewDefault(uc.now()))
	if err != nil {
		return nil, fmt.Errorf("get about failed: %w", err)
	}
	return &GetAboutOutput{About: a}, nil
}

type ReplaceAboutInput struct {
	Bio        string
	Skills     []string
	Education  []about.Education
	ResumeLink string
}

type ReplaceAboutOutput struct {
	About *about.About
}

// ExecuteReplaceAbout overwrites all four fields. Omitted input fields become empty values.
func (uc *AboutUseCase) ExecuteReplaceAbout(ctx context.Context, input ReplaceAboutInput) (*ReplaceAboutOutput, error) {
	current, err := uc.aboutRepo.GetOrCreate(ctx, about.NewDefault(uc.now()))
	if err != nil {
		return nil, fmt.Errorf("load about failed: %w", err)
	}

	a := &about.About{
		ID:         current.ID,
		Bio:        input.Bio,
		Skills:     input.Skills,
		Education:  input.Education,
		ResumeLink: input.ResumeLink,
		CreatedAt:  current.CreatedAt,
		UpdatedAt:  uc.now(),
	}
	if a.Skills == nil {
		a.Skills = []string{}
	}
	if a.Education == nil {
		a.Education = []about.Education{}
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := uc.aboutRepo.Replace(ctx, a); err != nil {
		return nil, fmt.Errorf("replace about failed: %w", err)
	}

	service.PublishInBackground(uc.publisher, uc.logger, event.NewContentEvent(event.ContentEventUpdated, event.ResourceAbout, a.ID))
	return &ReplaceAboutOutput{About: a}, nil
}
