package about

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-admin/pkg/apperror"
	"github.com/khoahotran/portfolio-admin/pkg/validation"
)

// SingletonID is the fixed key of the only About document.
var SingletonID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("portfolio-admin/about"))

type Education struct {
	Degree      string `json:"degree" validate:"notblank,max=100"`
	Institution string `json:"institution" validate:"notblank,max=100"`
	Year        string `json:"year" validate:"max=10"`
}

type About struct {
	ID         uuid.UUID   `json:"id"`
	Bio        string      `json:"bio" validate:"max=1000"`
	Skills     []string    `json:"skills" validate:"dive,max=50"`
	Education  []Education `json:"education" validate:"dive"`
	ResumeLink string      `json:"resumeLink" validate:"max=500"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// NewDefault is the empty document created on first read.
func NewDefault(now time.Time) *About {
	return &About{
		ID:        SingletonID,
		Skills:    []string{},
		Education: []Education{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (a *About) Validate() error {
	if err := validation.Struct(a); err != nil {
		return apperror.NewInvalidInput(strings.Join(validation.FormatValidationErrors(err), "; "), err)
	}
	return nil
}

type Repository interface {
	// GetOrCreate returns the singleton, inserting defaults under SingletonID if it does not exist.
	GetOrCreate(ctx context.Context, defaults *About) (*About, error)
	// Replace overwrites every editable field of the singleton.
	Replace(ctx context.Context, a *About) error
}
