package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	aboutUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/about"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
)

type AboutHandler struct {
	aboutUseCase *aboutUC.AboutUseCase
}

func NewAboutHandler(uc *aboutUC.AboutUseCase) *AboutHandler {
	return &AboutHandler{aboutUseCase: uc}
}

func (h *AboutHandler) GetAbout(c *gin.Context) {
	output, err := h.aboutUseCase.ExecuteGetAbout(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output.About)
}

func (h *AboutHandler) ReplaceAbout(c *gin.Context) {
	var req ReplaceAboutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	output, err := h.aboutUseCase.ExecuteReplaceAbout(c.Request.Context(), aboutUC.ReplaceAboutInput{
		Bio:        req.Bio,
		Skills:     req.Skills,
		Education:  req.Education,
		ResumeLink: req.ResumeLink,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output.About)
}
