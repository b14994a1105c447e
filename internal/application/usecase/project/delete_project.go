package project

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-admin/adapters/event"
	"github.com/khoahotran/portfolio-admin/internal/application/service"
	"github.com/khoahotran/portfolio-admin/internal/domain/project"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

type DeleteProjectUseCase struct {
	projectRepo project.Repository
	publisher   service.EventPublisher
	logger      logger.Logger
}

func NewDeleteProjectUseCase(pRepo project.Repository, pub service.EventPublisher, log logger.Logger) *DeleteProjectUseCase {
	return &DeleteProjectUseCase{projectRepo: pRepo, publisher: pub, logger: log}
}

type DeleteProjectInput struct {
	ProjectID uuid.UUID
}

func (uc *DeleteProjectUseCase) Execute(ctx context.Context, input DeleteProjectInput) error {
	if err := uc.projectRepo.Delete(ctx, input.ProjectID); err != nil {
		return fmt.Errorf("delete project failed: %w", err)
	}

	service.PublishInBackground(uc.publisher, uc.logger, event.NewContentEvent(event.ContentEventDeleted, event.ResourceProject, input.ProjectID))
	return nil
}
