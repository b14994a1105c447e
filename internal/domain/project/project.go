package project

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-admin/pkg/apperror"
	"github.com/khoahotran/portfolio-admin/pkg/validation"
)

const MsgRequiredFields = "Title and description are required"

type Project struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title" validate:"max=200"`
	Description  string    `json:"description" validate:"max=5000"`
	Technologies []string  `json:"technologies" validate:"dive,notblank,max=50"`
	LiveURL      string    `json:"liveUrl" validate:"max=500"`
	GithubURL    string    `json:"githubUrl" validate:"max=500"`
	ImageURL     string    `json:"imageUrl" validate:"max=500"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (p *Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Description) == "" {
		return apperror.NewInvalidInput(MsgRequiredFields, nil)
	}
	if err := validation.Struct(p); err != nil {
		return apperror.NewInvalidInput(strings.Join(validation.FormatValidationErrors(err), "; "), err)
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, p *Project) error
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	// List returns every record, newest first.
	List(ctx context.Context) ([]*Project, error)
}
