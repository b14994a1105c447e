package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/khoahotran/portfolio-admin/internal/config"
	"github.com/khoahotran/portfolio-admin/internal/domain/user"
	"github.com/khoahotran/portfolio-admin/pkg/auth"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

const ServiceName = "portfolio-admin-api"

type RouterDeps struct {
	Config     config.Config
	Logger     logger.Logger
	JWTService *auth.JWTService
	Redis      *redis.Client

	Auth       *AuthHandler
	About      *AboutHandler
	Experience *ExperienceHandler
	Feedback   *FeedbackHandler
	Project    *ProjectHandler
	Dashboard  *DashboardHandler
	Media      *MediaHandler
	Backup     *BackupHandler
}

// NewEngine returns a gin engine with the shared middleware stack and no routes.
func NewEngine(cfg config.Config, log logger.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(Recovery(log))
	router.Use(RequestID())
	router.Use(otelgin.Middleware(ServiceName))
	router.Use(RequestLogger(log))
	// cors.New panics on an empty origin list
	if len(cfg.App.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.App.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", HeaderRequestID},
			ExposeHeaders:    []string{HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	router.Use(ErrorMiddleware(log))
	return router
}

// RegisterAPI mounts every JSON route under /api.
func RegisterAPI(router *gin.Engine, deps RouterDeps) {
	authMiddleware := AuthMiddleware(deps.JWTService, deps.Config.Auth.CookieName)
	adminOnly := []gin.HandlerFunc{authMiddleware, RequireRole(user.RoleAdmin)}

	// guarded applies the admin check only when auth.protect_writes is on.
	guarded := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if deps.Config.Auth.ProtectWrites {
			return append(append([]gin.HandlerFunc{}, adminOnly...), h)
		}
		return []gin.HandlerFunc{h}
	}
	admin := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, adminOnly...), h)
	}

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		authGroup := api.Group("/auth")
		authGroup.POST("/login",
			RateLimitMiddleware(LoginRateLimitConfig(deps.Config.Auth.LoginRateLimit), deps.Redis, deps.Logger),
			deps.Auth.Login,
		)
		authGroup.GET("/session", authMiddleware, deps.Auth.Session)

		api.GET("/about", deps.About.GetAbout)
		api.PUT("/about", guarded(deps.About.ReplaceAbout)...)

		experiences := api.Group("/experience")
		experiences.GET("", deps.Experience.ListExperiences)
		experiences.POST("", guarded(deps.Experience.CreateExperience)...)
		experiences.PUT("/:id", guarded(deps.Experience.UpdateExperience)...)
		experiences.DELETE("/:id", guarded(deps.Experience.DeleteExperience)...)

		feedbackGroup := api.Group("/feedback")
		feedbackGroup.GET("", deps.Feedback.ListFeedback)
		feedbackGroup.POST("", deps.Feedback.SubmitFeedback)
		feedbackGroup.PUT("/:id", guarded(deps.Feedback.ReviewFeedback)...)
		feedbackGroup.DELETE("/:id", guarded(deps.Feedback.DeleteFeedback)...)

		projects := api.Group("/project")
		projects.GET("", deps.Project.ListProjects)
		projects.GET("/rss", deps.Project.ProjectFeed)
		projects.POST("", admin(deps.Project.CreateProject)...)
		projects.PUT("/:id", admin(deps.Project.UpdateProject)...)
		projects.DELETE("/:id", admin(deps.Project.DeleteProject)...)

		api.GET("/dashboard/summary", admin(deps.Dashboard.Summary)...)
		api.POST("/media/upload", admin(deps.Media.Upload)...)
		api.POST("/backup", admin(deps.Backup.Create)...)
	}
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := NewEngine(deps.Config, deps.Logger)
	RegisterAPI(router, deps)
	return router
}
