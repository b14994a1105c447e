// Package web serves the server-rendered admin area. Pages talk to the same use cases as the JSON API.
package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/khoahotran/portfolio-admin/adapters/http"
	aboutUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/about"
	authUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/auth"
	dashboardUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/dashboard"
	experienceUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/experience"
	feedbackUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/feedback"
	projectUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/project"
	"github.com/khoahotran/portfolio-admin/internal/config"
	"github.com/khoahotran/portfolio-admin/internal/domain/user"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
	"github.com/khoahotran/portfolio-admin/pkg/auth"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/admin/dashboard"
)

type Deps struct {
	Config     config.Config
	Logger     logger.Logger
	// Redis backs the login rate limiter. Nil falls back to per-process counters.
	Redis      *redis.Client
	JWTService *auth.JWTService
	Auth       *authUC.LoginUseCase
	About      *aboutUC.AboutUseCase
	Experience *experienceUC.ExperienceUseCase
	Feedback   *feedbackUC.FeedbackUseCase
	Summary    *dashboardUC.SummaryUseCase

	CreateProject *projectUC.CreateProjectUseCase
	ListProjects  *projectUC.ListProjectsUseCase
	GetProject    *projectUC.GetProjectUseCase
	UpdateProject *projectUC.UpdateProjectUseCase
	DeleteProject *projectUC.DeleteProjectUseCase
}

type Handler struct {
	Deps
	cookieName   string
	cookieSecure bool
}

// Register installs the HTML renderer and every admin page on router.
func Register(router *gin.Engine, deps Deps) error {
	r, err := newHTMLRender()
	if err != nil {
		return err
	}
	router.HTMLRender = r

	h := &Handler{
		Deps:         deps,
		cookieName:   deps.Config.Auth.CookieName,
		cookieSecure: deps.Config.Auth.CookieSecure,
	}

	loginLimit := httpapi.LoginRateLimitConfig(deps.Config.Auth.LoginRateLimit)
	loginLimit.Reject = h.loginLimited

	router.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, DashboardPath) })

	site := router.Group("", h.CSRF())
	site.GET(LoginPath, h.LoginPage)
	site.POST(LoginPath, httpapi.RateLimitMiddleware(loginLimit, deps.Redis, deps.Logger), h.Login)
	site.POST("/logout", h.Logout)

	admin := site.Group("/admin", h.RequireSession())
	{
		admin.GET("", func(c *gin.Context) { c.Redirect(http.StatusFound, DashboardPath) })
		admin.GET("/dashboard", h.Dashboard)

		admin.GET("/about", h.AboutPage)
		admin.POST("/about", h.SaveAbout)

		admin.GET("/experience", h.ExperienceList)
		admin.GET("/experience/new", h.NewExperience)
		admin.POST("/experience", h.CreateExperience)
		admin.GET("/experience/:id/edit", h.EditExperience)
		admin.POST("/experience/:id", h.UpdateExperience)
		admin.GET("/experience/:id/delete", h.ConfirmDeleteExperience)
		admin.POST("/experience/:id/delete", h.DeleteExperience)

		admin.GET("/feedback", h.FeedbackList)
		admin.POST("/feedback/:id", h.ReviewFeedback)
		admin.GET("/feedback/:id/delete", h.ConfirmDeleteFeedback)
		admin.POST("/feedback/:id/delete", h.DeleteFeedback)

		admin.GET("/projects", h.ProjectList)
		admin.GET("/projects/new", h.NewProject)
		admin.POST("/projects", h.CreateProjectForm)
		admin.GET("/projects/:id/edit", h.EditProject)
		admin.POST("/projects/:id", h.UpdateProjectForm)
		admin.GET("/projects/:id/delete", h.ConfirmDeleteProject)
		admin.POST("/projects/:id/delete", h.DeleteProjectForm)
	}
	return nil
}

// RequireSession redirects to the login page unless the cookie holds a valid admin token.
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(h.cookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		claims, err := h.JWTService.ValidateToken(token)
		if err != nil || claims.Role != user.RoleAdmin {
			h.clearCookie(c)
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Set(httpapi.GinContextKeyClaims, claims)
		c.Next()
	}
}

func (h *Handler) LoginPage(c *gin.Context) {
	if token, err := c.Cookie(h.cookieName); err == nil {
		if _, err := h.JWTService.ValidateToken(token); err == nil {
			c.Redirect(http.StatusFound, DashboardPath)
			return
		}
	}
	c.HTML(http.StatusOK, "login", gin.H{"Title": "Sign in", "Email": "", "CSRF": csrfToken(c)})
}

func (h *Handler) Login(c *gin.Context) {
	email := c.PostForm("email")
	output, err := h.Auth.Execute(c.Request.Context(), authUC.LoginInput{
		Email:    email,
		Password: c.PostForm("password"),
	})
	if err != nil {
		c.HTML(statusOf(httpapi.LoginError(err)), "login", gin.H{
			"Title": "Sign in",
			"Error": h.userMessage(c, httpapi.LoginError(err)),
			"Email": email,
			"CSRF":  csrfToken(c),
		})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, output.AccessToken, int(h.Config.Auth.TokenLifespan.Seconds()), "/", "", h.cookieSecure, true)
	c.Redirect(http.StatusFound, DashboardPath)
}

func (h *Handler) loginLimited(c *gin.Context) {
	c.HTML(http.StatusTooManyRequests, "login", gin.H{
		"Title": "Sign in",
		"Error": httpapi.TooManyAttemptsMessage,
		"Email": c.PostForm("email"),
		"CSRF":  csrfToken(c),
	})
}

func (h *Handler) Logout(c *gin.Context) {
	h.clearCookie(c)
	c.Redirect(http.StatusFound, LoginPath)
}

func (h *Handler) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
}

// userMessage is the banner text for a failed action. Server faults are logged and hidden.
func (h *Handler) userMessage(c *gin.Context, err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && apperror.ToHTTPStatus(appErr) < http.StatusInternalServerError {
		return appErr.Message
	}
	h.Logger.Error("Admin page action failed", err, zap.String("path", c.Request.URL.Path))
	return "Something went wrong. Please try again."
}

func statusOf(err error) int {
	return apperror.ToHTTPStatus(err)
}

// renderError shows page again with an inline banner.
func (h *Handler) renderError(c *gin.Context, page string, data gin.H, err error) {
	data["Error"] = h.userMessage(c, err)
	c.HTML(statusOf(err), page, data)
}

func (h *Handler) userEmail(c *gin.Context) string {
	if claims, ok := httpapi.GetClaimsFromGinContext(c); ok {
		return claims.Email
	}
	return ""
}

// page builds the common template data.
func (h *Handler) page(c *gin.Context, title, nav string) gin.H {
	return gin.H{"Title": title, "Nav": nav, "User": h.userEmail(c), "Notice": c.Query("notice"), "CSRF": csrfToken(c)}
}
