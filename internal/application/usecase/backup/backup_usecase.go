package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-admin/internal/application/service"
	"github.com/khoahotran/portfolio-admin/internal/domain/about"
	"github.com/khoahotran/portfolio-admin/internal/domain/experience"
	"github.com/khoahotran/portfolio-admin/internal/domain/feedback"
	"github.com/khoahotran/portfolio-admin/internal/domain/project"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

const Folder = "portfolio/backups"

// Snapshot is the exported content. Admin accounts are left out so no password hash leaves the store.
type Snapshot struct {
	TakenAt     time.Time                `json:"takenAt"`
	About       *about.About             `json:"about"`
	Experiences []*experience.Experience `json:"experiences"`
	Feedback    []*feedback.Feedback     `json:"feedback"`
	Projects    []*project.Project       `json:"projects"`
}

type BackupOutput struct {
	URL         string    `json:"url"`
	PublicID    string    `json:"publicId"`
	TakenAt     time.Time `json:"takenAt"`
	Experiences int       `json:"experiences"`
	Feedback    int       `json:"feedback"`
	Projects    int       `json:"projects"`
}

type BackupUseCase struct {
	aboutRepo      about.Repository
	experienceRepo experience.Repository
	feedbackRepo   feedback.Repository
	projectRepo    project.Repository
	uploader       service.Uploader
	logger         logger.Logger
	now            func() time.Time
}

func NewBackupUseCase(
	aRepo about.Repository,
	eRepo experience.Repository,
	fRepo feedback.Repository,
	pRepo project.Repository,
	uploader service.Uploader,
	log logger.Logger,
) *BackupUseCase {
	return &BackupUseCase{
		aboutRepo:      aRepo,
		experienceRepo: eRepo,
		feedbackRepo:   fRepo,
		projectRepo:    pRepo,
		uploader:       uploader,
		logger:         log,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Snapshot reads every content collection. The About singleton is created if it does not exist yet.
func (uc *BackupUseCase) Snapshot(ctx context.Context) (*Snapshot, error) {
	now := uc.now()
	a, err := uc.aboutRepo.GetOrCreate(ctx, about.NewDefault(now))
	if err != nil {
		return nil, fmt.Errorf("read about: %w", err)
	}
	experiences, err := uc.experienceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("read experiences: %w", err)
	}
	items, err := uc.feedbackRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("read feedback: %w", err)
	}
	projects, err := uc.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("read projects: %w", err)
	}
	return &Snapshot{TakenAt: now, About: a, Experiences: experiences, Feedback: items, Projects: projects}, nil
}

// Execute uploads a JSON snapshot of all content to the media store.
func (uc *BackupUseCase) Execute(ctx context.Context) (*BackupOutput, error) {
	uc.logger.Info("Starting content backup...")

	snap, err := uc.Snapshot(ctx)
	if err != nil {
		uc.logger.Error("Content backup failed", err)
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return nil, apperror.NewInternal("encode backup", err)
	}

	publicID := "backup-" + snap.TakenAt.Format("2006-01-02_15-04-05")
	url, err := uc.uploader.Upload(ctx, &buf, Folder, publicID)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		uc.logger.Error("Failed to upload backup", err, zap.String("public_id", publicID))
		return nil, apperror.NewInternal("upload backup", err)
	}

	uc.logger.Info("Content backup uploaded",
		zap.String("url", url),
		zap.String("public_id", publicID),
		zap.Int("projects", len(snap.Projects)),
	)
	return &BackupOutput{
		URL:         url,
		PublicID:    publicID,
		TakenAt:     snap.TakenAt,
		Experiences: len(snap.Experiences),
		Feedback:    len(snap.Feedback),
		Projects:    len(snap.Projects),
	}, nil
}
