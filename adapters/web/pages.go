package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	httpapi "github.com/khoahotran/portfolio-admin/adapters/http"
	aboutUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/about"
	feedbackUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/feedback"
	projectUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/project"
	"github.com/khoahotran/portfolio-admin/internal/domain/about"
	"github.com/khoahotran/portfolio-admin/internal/domain/experience"
	"github.com/khoahotran/portfolio-admin/internal/domain/feedback"
	"github.com/khoahotran/portfolio-admin/internal/domain/project"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
)

func redirectWithNotice(c *gin.Context, path, notice string) {
	c.Redirect(http.StatusSeeOther, path+"?notice="+url.QueryEscape(notice))
}

// splitList splits on commas and newlines, dropping blanks.
func splitList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parseEducation reads one "Degree | Institution | Year" entry per line.
func parseEducation(raw string) []about.Education {
	out := []about.Education{}
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		for len(parts) < 3 {
			parts = append(parts, "")
		}
		out = append(out, about.Education{
			Degree:      strings.TrimSpace(parts[0]),
			Institution: strings.TrimSpace(parts[1]),
			Year:        strings.TrimSpace(parts[2]),
		})
	}
	return out
}

func formatEducation(items []about.Education) string {
	lines := make([]string, 0, len(items))
	for _, e := range items {
		lines = append(lines, e.Degree+" | "+e.Institution+" | "+e.Year)
	}
	return strings.Join(lines, "\n")
}

func (h *Handler) formID(c *gin.Context, resource string) (uuid.UUID, error) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.NewNotFound(resource, raw)
	}
	return id, nil
}

// notFound renders the dashboard shell with the error banner.
func (h *Handler) notFound(c *gin.Context, nav string, err error) {
	data := h.page(c, "Not found", nav)
	data["Error"] = h.userMessage(c, err)
	c.HTML(statusOf(err), "confirm_delete", data)
}

func (h *Handler) Dashboard(c *gin.Context) {
	data := h.page(c, "Dashboard", "dashboard")
	// The admin view always recomputes so it reflects writes made a moment ago.
	summary, err := h.Summary.Refresh(c.Request.Context())
	if err != nil {
		h.renderError(c, "dashboard", data, err)
		return
	}
	data["Summary"] = summary
	data["MaxPerMonth"] = maxBucket(summary.ProjectsPerMonth)
	data["Feedback"] = feedbackShares(summary.Feedback)
	c.HTML(http.StatusOK, "dashboard", data)
}

// About

type aboutForm struct {
	Bio        string
	Skills     string
	Education  string
	ResumeLink string
}

func (h *Handler) AboutPage(c *gin.Context) {
	data := h.page(c, "About", "about")
	out, err := h.About.ExecuteGetAbout(c.Request.Context())
	if err != nil {
		h.renderError(c, "about", data, err)
		return
	}
	a := out.About
	data["Form"] = aboutForm{
		Bio:        a.Bio,
		Skills:     strings.Join(a.Skills, ", "),
		Education:  formatEducation(a.Education),
		ResumeLink: a.ResumeLink,
	}
	data["UpdatedAt"] = a.UpdatedAt
	c.HTML(http.StatusOK, "about", data)
}

func (h *Handler) SaveAbout(c *gin.Context) {
	form := aboutForm{
		Bio:        c.PostForm("bio"),
		Skills:     c.PostForm("skills"),
		Education:  c.PostForm("education"),
		ResumeLink: strings.TrimSpace(c.PostForm("resume_link")),
	}
	_, err := h.About.ExecuteReplaceAbout(c.Request.Context(), aboutUC.ReplaceAboutInput{
		Bio:        form.Bio,
		Skills:     splitList(form.Skills),
		Education:  parseEducation(form.Education),
		ResumeLink: form.ResumeLink,
	})
	if err != nil {
		data := h.page(c, "About", "about")
		data["Form"] = form
		h.renderError(c, "about", data, err)
		return
	}
	redirectWithNotice(c, "/admin/about", "About section saved")
}

// Experience

type experienceForm struct {
	Action      string
	Title       string
	Company     string
	Location    string
	StartDate   string
	EndDate     string
	IsCurrent   bool
	Description string
}

func experienceFormFrom(e *experience.Experience) experienceForm {
	f := experienceForm{
		Action:      "/admin/experience/" + e.ID.String(),
		Title:       e.Title,
		Company:     e.Company,
		Location:    e.Location,
		StartDate:   e.StartDate.Format("2006-01-02"),
		IsCurrent:   e.IsCurrent,
		Description: e.Description,
	}
	if e.EndDate != nil {
		f.EndDate = e.EndDate.Format("2006-01-02")
	}
	return f
}

func bindExperienceForm(c *gin.Context, action string) experienceForm {
	return experienceForm{
		Action:      action,
		Title:       c.PostForm("title"),
		Company:     c.PostForm("company"),
		Location:    c.PostForm("location"),
		StartDate:   c.PostForm("start_date"),
		EndDate:     c.PostForm("end_date"),
		IsCurrent:   c.PostForm("is_current") != "",
		Description: c.PostForm("description"),
	}
}

func (f experienceForm) request() httpapi.ExperienceRequest {
	req := httpapi.ExperienceRequest{
		Title:       f.Title,
		Company:     f.Company,
		Location:    f.Location,
		StartDate:   f.StartDate,
		IsCurrent:   f.IsCurrent,
		Description: f.Description,
	}
	if f.EndDate != "" {
		end := f.EndDate
		req.EndDate = &end
	}
	return req
}

func (h *Handler) ExperienceList(c *gin.Context) {
	data := h.page(c, "Experience", "experience")
	items, err := h.Experience.ListExperiences(c.Request.Context())
	if err != nil {
		h.renderError(c, "experience_list", data, err)
		return
	}
	data["Items"] = items
	c.HTML(http.StatusOK, "experience_list", data)
}

func (h *Handler) NewExperience(c *gin.Context) {
	data := h.page(c, "New experience", "experience")
	data["Form"] = experienceForm{Action: "/admin/experience"}
	c.HTML(http.StatusOK, "experience_form", data)
}

func (h *Handler) CreateExperience(c *gin.Context) {
	form := bindExperienceForm(c, "/admin/experience")
	input, err := httpapi.ToExperienceInput(form.request())
	if err == nil {
		_, err = h.Experience.CreateExperience(c.Request.Context(), input)
	}
	if err != nil {
		data := h.page(c, "New experience", "experience")
		data["Form"] = form
		h.renderError(c, "experience_form", data, err)
		return
	}
	redirectWithNotice(c, "/admin/experience", "Experience added")
}

func (h *Handler) EditExperience(c *gin.Context) {
	id, err := h.formID(c, "experience")
	if err != nil {
		h.notFound(c, "experience", err)
		return
	}
	e, err := h.Experience.GetExperience(c.Request.Context(), id)
	if err != nil {
		h.notFound(c, "experience", err)
		return
	}
	data := h.page(c, "Edit experience", "experience")
	data["Form"] = experienceFormFrom(e)
	c.HTML(http.StatusOK, "experience_form", data)
}

func (h *Handler) UpdateExperience(c *gin.Context) {
	id, err := h.formID(c, "experience")
	if err != nil {
		h.notFound(c, "experience", err)
		return
	}
	form := bindExperienceForm(c, "/admin/experience/"+id.String())
	input, err := httpapi.ToExperienceInput(form.request())
	if err == nil {
		_, err = h.Experience.UpdateExperience(c.Request.Context(), id, input)
	}
	if err != nil {
		data := h.page(c, "Edit experience", "experience")
		data["Form"] = form
		h.renderError(c, "experience_form", data, err)
		return
	}
	redirectWithNotice(c, "/admin/experience", "Experience updated")
}

func (h *Handler) ConfirmDeleteExperience(c *gin.Context) {
	id, err := h.formID(c, "experience")
	if err == nil {
		var e *experience.Experience
		if e, err = h.Experience.GetExperience(c.Request.Context(), id); err == nil {
			h.confirmDelete(c, "experience", "experience", e.Title+" at "+e.Company, "/admin/experience/"+id.String()+"/delete", "/admin/experience")
			return
		}
	}
	h.notFound(c, "experience", err)
}

func (h *Handler) DeleteExperience(c *gin.Context) {
	id, err := h.formID(c, "experience")
	if err == nil {
		err = h.Experience.DeleteExperience(c.Request.Context(), id)
	}
	if err != nil {
		h.notFound(c, "experience", err)
		return
	}
	redirectWithNotice(c, "/admin/experience", "Experience deleted")
}

// Feedback

func (h *Handler) FeedbackList(c *gin.Context) {
	data := h.page(c, "Feedback", "feedback")
	items, err := h.Feedback.ListFeedback(c.Request.Context())
	if err != nil {
		h.renderError(c, "feedback_list", data, err)
		return
	}
	data["Items"] = items
	data["Statuses"] = []feedback.Status{feedback.StatusPending, feedback.StatusApproved, feedback.StatusRejected}
	c.HTML(http.StatusOK, "feedback_list", data)
}

// ReviewFeedback applies the status and reply from one row of the feedback table.
// The reply is only touched when the form carries a reply field.
func (h *Handler) ReviewFeedback(c *gin.Context) {
	id, err := h.formID(c, "feedback")
	if err != nil {
		h.notFound(c, "feedback", err)
		return
	}
	in := feedbackUC.ReviewFeedbackInput{ID: id}
	if status, ok := c.GetPostForm("status"); ok {
		in.Status = &status
	}
	if reply, ok := c.GetPostForm("reply"); ok {
		in.Reply = &reply
	}
	if _, err := h.Feedback.ReviewFeedback(c.Request.Context(), in); err != nil {
		if apperror.ToHTTPStatus(err) == http.StatusNotFound {
			h.notFound(c, "feedback", err)
			return
		}
		data := h.page(c, "Feedback", "feedback")
		items, listErr := h.Feedback.ListFeedback(c.Request.Context())
		if listErr == nil {
			data["Items"] = items
		}
		data["Statuses"] = []feedback.Status{feedback.StatusPending, feedback.StatusApproved, feedback.StatusRejected}
		h.renderError(c, "feedback_list", data, err)
		return
	}
	redirectWithNotice(c, "/admin/feedback", "Feedback updated")
}

func (h *Handler) ConfirmDeleteFeedback(c *gin.Context) {
	id, err := h.formID(c, "feedback")
	if err == nil {
		var f *feedback.Feedback
		if f, err = h.Feedback.GetFeedback(c.Request.Context(), id); err == nil {
			h.confirmDelete(c, "feedback", "feedback", "message from "+f.Name, "/admin/feedback/"+id.String()+"/delete", "/admin/feedback")
			return
		}
	}
	h.notFound(c, "feedback", err)
}

func (h *Handler) DeleteFeedback(c *gin.Context) {
	id, err := h.formID(c, "feedback")
	if err == nil {
		err = h.Feedback.DeleteFeedback(c.Request.Context(), id)
	}
	if err != nil {
		h.notFound(c, "feedback", err)
		return
	}
	redirectWithNotice(c, "/admin/feedback", "Feedback deleted")
}

// Projects

type projectForm struct {
	Action       string
	Title        string
	Description  string
	Technologies string
	LiveURL      string
	GithubURL    string
	ImageURL     string
}

func bindProjectForm(c *gin.Context, action string) projectForm {
	return projectForm{
		Action:       action,
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		Technologies: c.PostForm("technologies"),
		LiveURL:      strings.TrimSpace(c.PostForm("live_url")),
		GithubURL:    strings.TrimSpace(c.PostForm("github_url")),
		ImageURL:     strings.TrimSpace(c.PostForm("image_url")),
	}
}

func projectFormFrom(p *project.Project) projectForm {
	return projectForm{
		Action:       "/admin/projects/" + p.ID.String(),
		Title:        p.Title,
		Description:  p.Description,
		Technologies: strings.Join(p.Technologies, ", "),
		LiveURL:      p.LiveURL,
		GithubURL:    p.GithubURL,
		ImageURL:     p.ImageURL,
	}
}

func (h *Handler) ProjectList(c *gin.Context) {
	data := h.page(c, "Projects", "projects")
	out, err := h.ListProjects.Execute(c.Request.Context())
	if err != nil {
		h.renderError(c, "project_list", data, err)
		return
	}
	data["Items"] = out.Projects
	c.HTML(http.StatusOK, "project_list", data)
}

func (h *Handler) NewProject(c *gin.Context) {
	data := h.page(c, "New project", "projects")
	data["Form"] = projectForm{Action: "/admin/projects"}
	c.HTML(http.StatusOK, "project_form", data)
}

func (h *Handler) CreateProjectForm(c *gin.Context) {
	form := bindProjectForm(c, "/admin/projects")
	_, err := h.CreateProject.Execute(c.Request.Context(), projectUC.CreateProjectInput{
		Title:        form.Title,
		Description:  form.Description,
		Technologies: splitList(form.Technologies),
		LiveURL:      form.LiveURL,
		GithubURL:    form.GithubURL,
		ImageURL:     form.ImageURL,
	})
	if err != nil {
		data := h.page(c, "New project", "projects")
		data["Form"] = form
		h.renderError(c, "project_form", data, err)
		return
	}
	redirectWithNotice(c, "/admin/projects", "Project added successfully")
}

func (h *Handler) EditProject(c *gin.Context) {
	id, err := h.formID(c, "project")
	if err != nil {
		h.notFound(c, "projects", err)
		return
	}
	out, err := h.GetProject.Execute(c.Request.Context(), projectUC.GetProjectInput{ProjectID: id})
	if err != nil {
		h.notFound(c, "projects", err)
		return
	}
	data := h.page(c, "Edit project", "projects")
	data["Form"] = projectFormFrom(out.Project)
	c.HTML(http.StatusOK, "project_form", data)
}

func (h *Handler) UpdateProjectForm(c *gin.Context) {
	id, err := h.formID(c, "project")
	if err != nil {
		h.notFound(c, "projects", err)
		return
	}
	form := bindProjectForm(c, "/admin/projects/"+id.String())
	_, err = h.UpdateProject.Execute(c.Request.Context(), projectUC.UpdateProjectInput{
		ProjectID:    id,
		Title:        form.Title,
		Description:  form.Description,
		Technologies: splitList(form.Technologies),
		LiveURL:      form.LiveURL,
		GithubURL:    form.GithubURL,
		ImageURL:     form.ImageURL,
	})
	if err != nil {
		data := h.page(c, "Edit project", "projects")
		data["Form"] = form
		h.renderError(c, "project_form", data, err)
		return
	}
	redirectWithNotice(c, "/admin/projects", "Project updated successfully")
}

func (h *Handler) ConfirmDeleteProject(c *gin.Context) {
	id, err := h.formID(c, "project")
	if err == nil {
		var out *projectUC.GetProjectOutput
		if out, err = h.GetProject.Execute(c.Request.Context(), projectUC.GetProjectInput{ProjectID: id}); err == nil {
			h.confirmDelete(c, "projects", "project", out.Project.Title, "/admin/projects/"+id.String()+"/delete", "/admin/projects")
			return
		}
	}
	h.notFound(c, "projects", err)
}

func (h *Handler) DeleteProjectForm(c *gin.Context) {
	id, err := h.formID(c, "project")
	if err == nil {
		err = h.DeleteProject.Execute(c.Request.Context(), projectUC.DeleteProjectInput{ProjectID: id})
	}
	if err != nil {
		h.notFound(c, "projects", err)
		return
	}
	redirectWithNotice(c, "/admin/projects", "Project deleted successfully")
}

func (h *Handler) confirmDelete(c *gin.Context, nav, resource, name, action, cancel string) {
	data := h.page(c, "Delete "+resource, nav)
	data["Resource"] = resource
	data["Name"] = name
	data["Action"] = action
	data["Cancel"] = cancel
	c.HTML(http.StatusOK, "confirm_delete", data)
}
