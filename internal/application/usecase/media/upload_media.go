package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-admin/internal/application/service"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

type Kind string

const (
	KindImage  Kind = "image"
	KindResume Kind = "resume"
)

// MaxUploadBytes bounds a single multipart upload.
const MaxUploadBytes = 10 << 20

var kindFolders = map[Kind]string{
	KindImage:  "portfolio/projects",
	KindResume: "portfolio/resumes",
}

var allowedExtensions = map[Kind][]string{
	KindImage:  {".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"},
	KindResume: {".pdf", ".doc", ".docx"},
}

func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if k == "" {
		k = KindImage
	}
	if _, ok := kindFolders[k]; !ok {
		return "", apperror.NewInvalidInput("kind must be one of: image resume", nil)
	}
	return k, nil
}

type UploadMediaUseCase struct {
	uploader service.Uploader
	logger   logger.Logger
}

func NewUploadMediaUseCase(u service.Uploader, log logger.Logger) *UploadMediaUseCase {
	return &UploadMediaUseCase{uploader: u, logger: log}
}

type UploadMediaInput struct {
	Kind     Kind
	Filename string
	Size     int64
	File     io.Reader
}

type UploadMediaOutput struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Kind     Kind   `json:"kind"`
}

// Execute pushes the file to the media backend and returns its public URL.
// The returned URL is meant for Project.ImageURL or About.ResumeLink.
func (uc *UploadMediaUseCase) Execute(ctx context.Context, input UploadMediaInput) (*UploadMediaOutput, error) {
	folder, ok := kindFolders[input.Kind]
	if !ok {
		return nil, apperror.NewInvalidInput("kind must be one of: image resume", nil)
	}
	if input.File == nil || input.Size == 0 {
		return nil, apperror.NewInvalidInput("file is required", nil)
	}
	if input.Size > MaxUploadBytes {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("file must be at most %d bytes", MaxUploadBytes), nil)
	}
	if !hasAllowedExtension(input.Kind, input.Filename) {
		return nil, apperror.NewInvalidInput(
			fmt.Sprintf("%s must be one of: %s", input.Kind, strings.Join(allowedExtensions[input.Kind], " ")), nil)
	}

	publicID := uuid.NewString()
	url, err := uc.uploader.Upload(ctx, input.File, folder, publicID)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal("failed to upload media file", err)
	}

	uc.logger.Info("Media uploaded",
		zap.String("kind", string(input.Kind)),
		zap.String("public_id", publicID),
		zap.String("filename", input.Filename),
	)
	return &UploadMediaOutput{URL: url, PublicID: path.Join(folder, publicID), Kind: input.Kind}, nil
}

func hasAllowedExtension(k Kind, filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	for _, allowed := range allowedExtensions[k] {
		if ext == allowed {
			return true
		}
	}
	return false
}
