package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	feedbackUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/feedback"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
)

type FeedbackHandler struct {
	feedbackUseCase *feedbackUC.FeedbackUseCase
}

func NewFeedbackHandler(uc *feedbackUC.FeedbackUseCase) *FeedbackHandler {
	return &FeedbackHandler{feedbackUseCase: uc}
}

func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	items, err := h.feedbackUseCase.ListFeedback(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// SubmitFeedback ignores any client-supplied status; new feedback is always pending.
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	f, err := h.feedbackUseCase.SubmitFeedback(c.Request.Context(), feedbackUC.SubmitFeedbackInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

func (h *FeedbackHandler) ReviewFeedback(c *gin.Context) {
	id, ok := parseID(c, "feedback")
	if !ok {
		return
	}
	var req ReviewFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	f, err := h.feedbackUseCase.ReviewFeedback(c.Request.Context(), feedbackUC.ReviewFeedbackInput{
		ID:     id,
		Status: req.Status,
		Reply:  req.Reply,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	id, ok := parseID(c, "feedback")
	if !ok {
		return
	}
	if err := h.feedbackUseCase.DeleteFeedback(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Feedback deleted"})
}
