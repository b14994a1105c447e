package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	experienceUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/experience"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
)

type ExperienceHandler struct {
	experienceUseCase *experienceUC.ExperienceUseCase
}

func NewExperienceHandler(uc *experienceUC.ExperienceUseCase) *ExperienceHandler {
	return &ExperienceHandler{experienceUseCase: uc}
}

// ToExperienceInput converts wire dates; shared with the admin pages.
func ToExperienceInput(req ExperienceRequest) (experienceUC.ExperienceInput, error) {
	start, err := ParseDate("startDate", req.StartDate)
	if err != nil {
		return experienceUC.ExperienceInput{}, err
	}
	end, err := ParseOptionalDate("endDate", req.EndDate)
	if err != nil {
		return experienceUC.ExperienceInput{}, err
	}
	return experienceUC.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		StartDate:   start,
		EndDate:     end,
		IsCurrent:   req.IsCurrent,
		Description: req.Description,
	}, nil
}

// parseID treats a malformed id like an unknown one.
func parseID(c *gin.Context, resource string) (uuid.UUID, bool) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		c.Error(apperror.NewNotFound(resource, raw))
		return uuid.Nil, false
	}
	return id, true
}

func (h *ExperienceHandler) ListExperiences(c *gin.Context) {
	items, err := h.experienceUseCase.ListExperiences(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ExperienceHandler) CreateExperience(c *gin.Context) {
	var req ExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	input, err := ToExperienceInput(req)
	if err != nil {
		c.Error(err)
		return
	}

	e, err := h.experienceUseCase.CreateExperience(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *ExperienceHandler) UpdateExperience(c *gin.Context) {
	id, ok := parseID(c, "experience")
	if !ok {
		return
	}
	var req ExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	input, err := ToExperienceInput(req)
	if err != nil {
		c.Error(err)
		return
	}

	e, err := h.experienceUseCase.UpdateExperience(c.Request.Context(), id, input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *ExperienceHandler) DeleteExperience(c *gin.Context) {
	id, ok := parseID(c, "experience")
	if !ok {
		return
	}
	if err := h.experienceUseCase.DeleteExperience(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Experience deleted"})
}
