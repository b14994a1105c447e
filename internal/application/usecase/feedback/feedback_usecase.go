package feedback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-admin/adapters/event"
	"github.com/khoahotran/portfolio-admin/internal/application/service"
	"github.com/khoahotran/portfolio-admin/internal/domain/feedback"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

type FeedbackUseCase struct {
	repo      feedback.Repository
	publisher service.EventPublisher
	logger    logger.Logger
	now       func() time.Time
}

func NewFeedbackUseCase(r feedback.Repository, pub service.EventPublisher, log logger.Logger) *FeedbackUseCase {
	return &FeedbackUseCase{
		repo:      r,
		publisher: pub,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type SubmitFeedbackInput struct {
	Name    string
	Email   string
	Message string
}

// SubmitFeedback stores a visitor message. Status always starts as pending.
func (uc *FeedbackUseCase) SubmitFeedback(ctx context.Context, in SubmitFeedbackInput) (*feedback.Feedback, error) {
	now := uc.now()
	f := &feedback.Feedback{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Message:   in.Message,
		Status:    feedback.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, f); err != nil {
		return nil, fmt.Errorf("save feedback failed: %w", err)
	}

	service.PublishInBackground(uc.publisher, uc.logger, event.NewContentEvent(event.ContentEventCreated, event.ResourceFeedback, f.ID))
	return f, nil
}

// ReviewFeedbackInput is a partial update. A nil field is left unchanged, and so is a blank Reply.
type ReviewFeedbackInput struct {
	ID     uuid.UUID
	Status *string
	Reply  *string
}

func (uc *FeedbackUseCase) ReviewFeedback(ctx context.Context, in ReviewFeedbackInput) (*feedback.Feedback, error) {
	var status feedback.Status
	if in.Status != nil {
		s, err := feedback.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		status = s
	}

	f, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if in.Status != nil {
		f.Status = status
	}
	if in.Reply != nil && strings.TrimSpace(*in.Reply) != "" {
		f.SetReply(*in.Reply, now)
	}
	f.UpdatedAt = now

	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, f); err != nil {
		return nil, fmt.Errorf("update feedback failed: %w", err)
	}

	service.PublishInBackground(uc.publisher, uc.logger, event.NewContentEvent(event.ContentEventUpdated, event.ResourceFeedback, f.ID))
	return f, nil
}

func (uc *FeedbackUseCase) DeleteFeedback(ctx context.Context, id uuid.UUID) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete feedback failed: %w", err)
	}
	service.PublishInBackground(uc.publisher, uc.logger, event.NewContentEvent(event.ContentEventDeleted, event.ResourceFeedback, id))
	return nil
}

func (uc *FeedbackUseCase) GetFeedback(ctx context.Context, id uuid.UUID) (*feedback.Feedback, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *FeedbackUseCase) ListFeedback(ctx context.Context) ([]*feedback.Feedback, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback failed: %w", err)
	}
	return items, nil
}
