package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-admin/adapters/event"
	"github.com/khoahotran/portfolio-admin/internal/application/service"
	"github.com/khoahotran/portfolio-admin/internal/domain/project"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

type UpdateProjectUseCase struct {
	projectRepo project.Repository
	publisher   service.EventPublisher
	logger      logger.Logger
}

func NewUpdateProjectUseCase(pRepo project.Repository, pub service.EventPublisher, log logger.Logger) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{projectRepo: pRepo, publisher: pub, logger: log}
}

type UpdateProjectInput struct {
	ProjectID    uuid.UUID
	Title        string
	Description  string
	Technologies []string
	LiveURL      string
	GithubURL    string
	ImageURL     string
}

type UpdateProjectOutput struct {
	Project *project.Project
}

// Execute replaces every editable field; values absent from the input are cleared.
func (uc *UpdateProjectUseCase) Execute(ctx context.Context, input UpdateProjectInput) (*UpdateProjectOutput, error) {
	p, err := uc.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	p.Title = strings.TrimSpace(input.Title)
	p.Description = input.Description
	p.Technologies = cleanTechnologies(input.Technologies)
	p.LiveURL = strings.TrimSpace(input.LiveURL)
	p.GithubURL = strings.TrimSpace(input.GithubURL)
	p.ImageURL = strings.TrimSpace(input.ImageURL)
	p.UpdatedAt = time.Now().UTC()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := uc.projectRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update project failed: %w", err)
	}

	service.PublishInBackground(uc.publisher, uc.logger, event.NewContentEvent(event.ContentEventUpdated, event.ResourceProject, p.ID))
	return &UpdateProjectOutput{Project: p}, nil
}
