package experience

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-admin/pkg/apperror"
	"github.com/khoahotran/portfolio-admin/pkg/validation"
)

const MsgRequiredFields = "Title, company, and start date are required"

type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title" validate:"max=100"`
	Company     string     `json:"company" validate:"max=100"`
	Location    string     `json:"location" validate:"max=100"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsCurrent   bool       `json:"isCurrent"`
	Description string     `json:"description" validate:"max=1000"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Validate checks required fields first so the caller gets the single combined message.
// EndDate is kept as supplied even when IsCurrent is set.
func (e *Experience) Validate() error {
	if strings.TrimSpace(e.Title) == "" || strings.TrimSpace(e.Company) == "" || e.StartDate.IsZero() {
		return apperror.NewInvalidInput(MsgRequiredFields, nil)
	}
	if err := validation.Struct(e); err != nil {
		return apperror.NewInvalidInput(strings.Join(validation.FormatValidationErrors(err), "; "), err)
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, e *Experience) error
	Update(ctx context.Context, e *Experience) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Experience, error)
	// List returns every record, latest StartDate first.
	List(ctx context.Context) ([]*Experience, error)
}
