package feedback

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-admin/pkg/apperror"
	"github.com/khoahotran/portfolio-admin/pkg/validation"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

const MsgRequiredFields = "Name and message are required"

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", apperror.NewInvalidInput("status must be one of: pending, approved, rejected", nil)
	}
	return s, nil
}

type Feedback struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name" validate:"max=100"`
	Email     string     `json:"email" validate:"max=100"`
	Message   string     `json:"message" validate:"max=500"`
	Status    Status     `json:"status" validate:"oneof=pending approved rejected"`
	Reply     string     `json:"reply" validate:"max=500"`
	RepliedAt *time.Time `json:"repliedAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// SetReply overwrites the reply and restamps RepliedAt on every call.
func (f *Feedback) SetReply(reply string, now time.Time) {
	f.Reply = reply
	f.RepliedAt = &now
}

func (f *Feedback) Validate() error {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Message) == "" {
		return apperror.NewInvalidInput(MsgRequiredFields, nil)
	}
	if err := validation.Struct(f); err != nil {
		return apperror.NewInvalidInput(strings.Join(validation.FormatValidationErrors(err), "; "), err)
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, f *Feedback) error
	Update(ctx context.Context, f *Feedback) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Feedback, error)
	// List returns every record, newest first.
	List(ctx context.Context) ([]*Feedback, error)
}
