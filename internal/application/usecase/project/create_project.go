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

type CreateProjectUseCase struct {
	projectRepo project.Repository
	publisher   service.EventPublisher
	logger      logger.Logger
}

func NewCreateProjectUseCase(pRepo project.Repository, pub service.EventPublisher, log logger.Logger) *CreateProjectUseCase {
	return &CreateProjectUseCase{
		projectRepo: pRepo,
		publisher:   pub,
		logger:      log,
	}
}

type CreateProjectInput struct {
	Title        string
	Description  string
	Technologies []string
	LiveURL      string
	GithubURL    string
	ImageURL     string
}

type CreateProjectOutput struct {
	ProjectID uuid.UUID
	Project   *project.Project
}

func (uc *CreateProjectUseCase) Execute(ctx context.Context, input CreateProjectInput) (*CreateProjectOutput, error) {
	now := time.Now().UTC()

	newProject := &project.Project{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Technologies: cleanTechnologies(input.Technologies),
		LiveURL:      strings.TrimSpace(input.LiveURL),
		GithubURL:    strings.TrimSpace(input.GithubURL),
		ImageURL:     strings.TrimSpace(input.ImageURL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := newProject.Validate(); err != nil {
		return nil, err
	}

	if err := uc.projectRepo.Save(ctx, newProject); err != nil {
		return nil, fmt.Errorf("save project failed: %w", err)
	}

	service.PublishInBackground(uc.publisher, uc.logger, event.NewContentEvent(event.ContentEventCreated, event.ResourceProject, newProject.ID))

	return &CreateProjectOutput{
		ProjectID: newProject.ID,
		Project:   newProject,
	}, nil
}

// cleanTechnologies trims entries and drops blanks, keeping order.
func cleanTechnologies(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
