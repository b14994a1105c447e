package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dashboardUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/dashboard"
)

type DashboardHandler struct {
	summaryUseCase *dashboardUC.SummaryUseCase
}

func NewDashboardHandler(uc *dashboardUC.SummaryUseCase) *DashboardHandler {
	return &DashboardHandler{summaryUseCase: uc}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	s, err := h.summaryUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, s)
}
