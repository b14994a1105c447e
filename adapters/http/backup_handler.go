package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	backupUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/backup"
)

type BackupHandler struct {
	backupUseCase *backupUC.BackupUseCase
}

func NewBackupHandler(uc *backupUC.BackupUseCase) *BackupHandler {
	return &BackupHandler{backupUseCase: uc}
}

// Create uploads a JSON snapshot of all content and returns where it went.
func (h *BackupHandler) Create(c *gin.Context) {
	out, err := h.backupUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}
