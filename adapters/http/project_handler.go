package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	projectUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/project"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

type ProjectHandler struct {
	createProjectUseCase *projectUC.CreateProjectUseCase
	listProjectsUseCase  *projectUC.ListProjectsUseCase
	updateProjectUseCase *projectUC.UpdateProjectUseCase
	deleteProjectUseCase *projectUC.DeleteProjectUseCase
	rssUseCase           *projectUC.RSSUseCase
	logger               logger.Logger
}

func NewProjectHandler(
	createUC *projectUC.CreateProjectUseCase,
	listUC *projectUC.ListProjectsUseCase,
	updateUC *projectUC.UpdateProjectUseCase,
	deleteUC *projectUC.DeleteProjectUseCase,
	rssUC *projectUC.RSSUseCase,
	log logger.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		createProjectUseCase: createUC,
		listProjectsUseCase:  listUC,
		updateProjectUseCase: updateUC,
		deleteProjectUseCase: deleteUC,
		rssUseCase:           rssUC,
		logger:               log,
	}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	output, err := h.createProjectUseCase.Execute(c.Request.Context(), projectUC.CreateProjectInput{
		Title:        req.Title,
		Description:  req.Description,
		Technologies: req.Technologies,
		LiveURL:      req.LiveURL,
		GithubURL:    req.GithubURL,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Project added successfully", ID: output.ProjectID.String()})
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID, ok := parseID(c, "project")
	if !ok {
		return
	}
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	output, err := h.updateProjectUseCase.Execute(c.Request.Context(), projectUC.UpdateProjectInput{
		ProjectID:    projectID,
		Title:        req.Title,
		Description:  req.Description,
		Technologies: req.Technologies,
		LiveURL:      req.LiveURL,
		GithubURL:    req.GithubURL,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output.Project)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID, ok := parseID(c, "project")
	if !ok {
		return
	}
	if err := h.deleteProjectUseCase.Execute(c.Request.Context(), projectUC.DeleteProjectInput{ProjectID: projectID}); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Project deleted successfully"})
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	output, err := h.listProjectsUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output.Projects)
}

func (h *ProjectHandler) ProjectFeed(c *gin.Context) {
	feed, err := h.rssUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(apperror.NewInternal("failed to generate RSS feed", err))
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}
