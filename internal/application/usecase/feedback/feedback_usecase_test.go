package feedback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-admin/internal/domain/feedback"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

type MockFeedbackRepo struct {
	mock.Mock
}

func (m *MockFeedbackRepo) Save(ctx context.Context, f *feedback.Feedback) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFeedbackRepo) Update(ctx context.Context, f *feedback.Feedback) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFeedbackRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFeedbackRepo) FindByID(ctx context.Context, id uuid.UUID) (*feedback.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feedback.Feedback), args.Error(1)
}

func (m *MockFeedbackRepo) List(ctx context.Context) ([]*feedback.Feedback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*feedback.Feedback), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestFeedbackUseCase_SubmitStartsPending(t *testing.T) {
	repo := new(MockFeedbackRepo)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(f *feedback.Feedback) bool {
		return f.Status == feedback.StatusPending
	})).Return(nil)
	uc := NewFeedbackUseCase(repo, nil, logger.NewNopLogger())

	f, err := uc.SubmitFeedback(context.Background(), SubmitFeedbackInput{Name: "Ann", Message: "Great work"})

	require.NoError(t, err)
	assert.Equal(t, feedback.StatusPending, f.Status)
	assert.Nil(t, f.RepliedAt)
	repo.AssertExpectations(t)
}

func TestFeedbackUseCase_SubmitRequiresNameAndMessage(t *testing.T) {
	repo := new(MockFeedbackRepo)
	uc := NewFeedbackUseCase(repo, nil, logger.NewNopLogger())

	_, err := uc.SubmitFeedback(context.Background(), SubmitFeedbackInput{Name: "Ann"})

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, feedback.MsgRequiredFields, appErr.Message)
}

func TestFeedbackUseCase_Review(t *testing.T) {
	newStored := func() *feedback.Feedback {
		return &feedback.Feedback{ID: uuid.New(), Name: "Ann", Message: "hi", Status: feedback.StatusPending}
	}

	t.Run("reply stamps repliedAt and second reply overwrites", func(t *testing.T) {
		stored := newStored()
		repo := new(MockFeedbackRepo)
		repo.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)
		repo.On("Update", mock.Anything, stored).Return(nil)
		uc := NewFeedbackUseCase(repo, nil, logger.NewNopLogger())

		before := time.Now().UTC()
		first, err := uc.ReviewFeedback(context.Background(), ReviewFeedbackInput{ID: stored.ID, Reply: strPtr("hello")})
		after := time.Now().UTC()
		require.NoError(t, err)
		assert.Equal(t, "hello", first.Reply)
		require.NotNil(t, first.RepliedAt)
		assert.False(t, first.RepliedAt.Before(before))
		assert.False(t, first.RepliedAt.After(after))
		firstStamp := *first.RepliedAt
		assert.Equal(t, feedback.StatusPending, first.Status)

		time.Sleep(2 * time.Millisecond)
		second, err := uc.ReviewFeedback(context.Background(), ReviewFeedbackInput{ID: stored.ID, Reply: strPtr("hello again")})
		require.NoError(t, err)
		assert.Equal(t, "hello again", second.Reply)
		assert.True(t, second.RepliedAt.After(firstStamp))
	})

	t.Run("status only leaves reply untouched", func(t *testing.T) {
		stored := newStored()
		repo := new(MockFeedbackRepo)
		repo.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)
		repo.On("Update", mock.Anything, stored).Return(nil)
		uc := NewFeedbackUseCase(repo, nil, logger.NewNopLogger())

		got, err := uc.ReviewFeedback(context.Background(), ReviewFeedbackInput{ID: stored.ID, Status: strPtr("approved")})

		require.NoError(t, err)
		assert.Equal(t, feedback.StatusApproved, got.Status)
		assert.Nil(t, got.RepliedAt)
	})

	t.Run("blank reply is ignored", func(t *testing.T) {
		stored := newStored()
		repo := new(MockFeedbackRepo)
		repo.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)
		repo.On("Update", mock.Anything, stored).Return(nil)
		uc := NewFeedbackUseCase(repo, nil, logger.NewNopLogger())

		got, err := uc.ReviewFeedback(context.Background(), ReviewFeedbackInput{
			ID: stored.ID, Status: strPtr("rejected"), Reply: strPtr("  "),
		})

		require.NoError(t, err)
		assert.Equal(t, feedback.StatusRejected, got.Status)
		assert.Empty(t, got.Reply)
		assert.Nil(t, got.RepliedAt)
	})

	t.Run("unknown status rejected before lookup", func(t *testing.T) {
		repo := new(MockFeedbackRepo)
		uc := NewFeedbackUseCase(repo, nil, logger.NewNopLogger())

		_, err := uc.ReviewFeedback(context.Background(), ReviewFeedbackInput{ID: uuid.New(), Status: strPtr("spam")})

		assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("missing record", func(t *testing.T) {
		id := uuid.New()
		repo := new(MockFeedbackRepo)
		repo.On("FindByID", mock.Anything, id).Return(nil, apperror.NewNotFound("feedback", id.String()))
		uc := NewFeedbackUseCase(repo, nil, logger.NewNopLogger())

		_, err := uc.ReviewFeedback(context.Background(), ReviewFeedbackInput{ID: id, Reply: strPtr("x")})

		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})
}
