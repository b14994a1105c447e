package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-admin/adapters/cache"
	"github.com/khoahotran/portfolio-admin/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio-admin/adapters/http"
	"github.com/khoahotran/portfolio-admin/adapters/media_storage"
	"github.com/khoahotran/portfolio-admin/adapters/persistence"
	"github.com/khoahotran/portfolio-admin/adapters/web"
	"github.com/khoahotran/portfolio-admin/internal/application/service"
	aboutUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/about"
	authUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/auth"
	backupUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/backup"
	dashboardUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/dashboard"
	experienceUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/experience"
	feedbackUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/feedback"
	mediaUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/media"
	projectUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/project"
	"github.com/khoahotran/portfolio-admin/internal/bootstrap"
	"github.com/khoahotran/portfolio-admin/internal/config"
	"github.com/khoahotran/portfolio-admin/internal/domain/dashboard"
	"github.com/khoahotran/portfolio-admin/pkg/auth"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
	"github.com/khoahotran/portfolio-admin/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start Portfolio Admin API Server...", zap.String("env", cfg.App.Env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Jaeger.OTLPEndpoint != "" {
		shutdownTracing, err := tracing.Setup(ctx, tracing.OptionsFromConfig(cfg, httpAdapter.ServiceName), appLogger)
		if err != nil {
			appLogger.Fatal("Cannot initialize tracer", err)
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				appLogger.Error("Tracer shutdown failed", err)
			}
		}()
	}

	// Stores
	stores, err := bootstrap.OpenStores(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot open store", err, zap.String("driver", cfg.DB.Driver))
	}
	defer stores.Close()

	if stores.Driver == config.DriverMemory {
		if _, err := bootstrap.EnsureAdmin(ctx, stores.Users, bootstrap.DefaultAdminEmail, bootstrap.DefaultAdminPassword, false, appLogger); err != nil {
			appLogger.Fatal("Cannot seed admin", err)
		}
	}

	redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Dashboard summary and the event path that keeps it fresh
	var summaryCache dashboard.Cache
	if redisClient != nil {
		summaryCache = cache.NewRedisSummaryCache(redisClient, cfg.Dashboard.CacheTTL)
	} else {
		summaryCache = cache.NewMemorySummaryCache(cfg.Dashboard.CacheTTL)
	}
	summaryUseCase := dashboardUC.NewSummaryUseCase(stores.Projects, stores.Experiences, stores.Feedback,
		summaryCache, cfg.Dashboard.Months, appLogger)

	var publisher service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	} else {
		appLogger.Info("No Kafka brokers configured, content events are handled in process")
		publisher = event.NewLocalPublisher(dashboardUC.NewProcessContentEventUseCase(summaryUseCase, appLogger).Execute)
	}

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Media uploads disabled", zap.Error(err))
		uploader = media_storage.NewDisabledUploader()
	}

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(stores.Users, jwtSvc, appLogger)
	aboutUseCase := aboutUC.NewAboutUseCase(stores.About, publisher, appLogger)
	experienceUseCase := experienceUC.NewExperienceUseCase(stores.Experiences, publisher, appLogger)
	feedbackUseCase := feedbackUC.NewFeedbackUseCase(stores.Feedback, publisher, appLogger)
	createProjectUseCase := projectUC.NewCreateProjectUseCase(stores.Projects, publisher, appLogger)
	listProjectsUseCase := projectUC.NewListProjectsUseCase(stores.Projects)
	getProjectUseCase := projectUC.NewGetProjectUseCase(stores.Projects)
	updateProjectUseCase := projectUC.NewUpdateProjectUseCase(stores.Projects, publisher, appLogger)
	deleteProjectUseCase := projectUC.NewDeleteProjectUseCase(stores.Projects, publisher, appLogger)
	rssUseCase := projectUC.NewRSSUseCase(stores.Projects, cfg.App.SiteURL, appLogger)
	uploadUseCase := mediaUC.NewUploadMediaUseCase(uploader, appLogger)
	backupUseCase := backupUC.NewBackupUseCase(stores.About, stores.Experiences, stores.Feedback, stores.Projects, uploader, appLogger)

	// HTTP
	router := httpAdapter.NewEngine(cfg, appLogger)
	httpAdapter.RegisterAPI(router, httpAdapter.RouterDeps{
		Config:     cfg,
		Logger:     appLogger,
		JWTService: jwtSvc,
		Redis:      redisClient,
		Auth:       httpAdapter.NewAuthHandler(loginUseCase, appLogger),
		About:      httpAdapter.NewAboutHandler(aboutUseCase),
		Experience: httpAdapter.NewExperienceHandler(experienceUseCase),
		Feedback:   httpAdapter.NewFeedbackHandler(feedbackUseCase),
		Project: httpAdapter.NewProjectHandler(
			createProjectUseCase,
			listProjectsUseCase,
			updateProjectUseCase,
			deleteProjectUseCase,
			rssUseCase,
			appLogger,
		),
		Dashboard: httpAdapter.NewDashboardHandler(summaryUseCase),
		Media:     httpAdapter.NewMediaHandler(uploadUseCase, appLogger),
		Backup:    httpAdapter.NewBackupHandler(backupUseCase),
	})
	if err := web.Register(router, web.Deps{
		Config:        cfg,
		Logger:        appLogger,
		Redis:         redisClient,
		JWTService:    jwtSvc,
		Auth:          loginUseCase,
		About:         aboutUseCase,
		Experience:    experienceUseCase,
		Feedback:      feedbackUseCase,
		Summary:       summaryUseCase,
		CreateProject: createProjectUseCase,
		ListProjects:  listProjectsUseCase,
		GetProject:    getProjectUseCase,
		UpdateProject: updateProjectUseCase,
		DeleteProject: deleteProjectUseCase,
	}); err != nil {
		appLogger.Fatal("Cannot load admin templates", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port), zap.String("driver", stores.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Cannot run server", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
	appLogger.Info("Server exited")
}
