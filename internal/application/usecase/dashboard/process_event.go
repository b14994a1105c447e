package dashboard

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-admin/adapters/event"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

type ProcessContentEventUseCase struct {
	summaryUseCase *SummaryUseCase
	logger         logger.Logger
}

func NewProcessContentEventUseCase(summaryUC *SummaryUseCase, log logger.Logger) *ProcessContentEventUseCase {
	return &ProcessContentEventUseCase{summaryUseCase: summaryUC, logger: log}
}

// Execute reacts to a content change. Only resources counted on the dashboard trigger a refresh.
func (uc *ProcessContentEventUseCase) Execute(ctx context.Context, payload event.ContentEventPayload) error {
	log := uc.logger.With(
		zap.String("resource", string(payload.Resource)),
		zap.String("resource_id", payload.ResourceID.String()),
		zap.String("event_type", string(payload.EventType)),
	)

	if payload.Resource == event.ResourceFeedback && payload.EventType == event.ContentEventCreated {
		log.Info("New feedback awaiting review")
	}

	switch payload.Resource {
	case event.ResourceProject, event.ResourceExperience, event.ResourceFeedback:
	default:
		log.Info("Content event does not affect dashboard, skipping")
		return nil
	}

	s, err := uc.summaryUseCase.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh dashboard summary: %w", err)
	}
	log.Info("Dashboard summary refreshed",
		zap.Int("projects", s.ProjectCount),
		zap.Int("experiences", s.ExperienceCount),
		zap.Int("feedback", s.Feedback.Total),
	)
	return nil
}
