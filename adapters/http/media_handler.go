package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mediaUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/media"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

type MediaHandler struct {
	uploadUseCase *mediaUC.UploadMediaUseCase
	logger        logger.Logger
}

func NewMediaHandler(uploadUC *mediaUC.UploadMediaUseCase, log logger.Logger) *MediaHandler {
	return &MediaHandler{uploadUseCase: uploadUC, logger: log}
}

func (h *MediaHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, mediaUC.MaxUploadBytes+1<<20)

	kind, err := mediaUC.ParseKind(c.PostForm("kind"))
	if err != nil {
		c.Error(err)
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("file is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInvalidInput("cannot read uploaded file", err))
		return
	}
	defer file.Close()

	output, err := h.uploadUseCase.Execute(c.Request.Context(), mediaUC.UploadMediaInput{
		Kind:     kind,
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		File:     file,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}
