package handlers

import (
	"net/http"

	"github.com/creditkeep/creditkeep/internal/core/domain"
	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

type backupHandler struct {
	backupService portssvc.BackupSvcFacade
}

func newBackupHandler(bs portssvc.BackupSvcFacade) *backupHandler {
	return &backupHandler{backupService: bs}
}

func registerBackupRoutes(rg *gin.RouterGroup, backupService portssvc.BackupSvcFacade) {
	h := newBackupHandler(backupService)

	backup := rg.Group("/backup")
	{
		backup.GET("", h.snapshot)
		backup.POST("/restore", h.restore)
	}
}

// snapshot godoc
// @Summary Export a full data snapshot
// @Tags backup
// @Produce json
// @Success 200 {object} domain.BackupSnapshot
// @Security BearerAuth
// @Router /backup [get]
func (h *backupHandler) snapshot(c *gin.Context) {
	snap, err := h.backupService.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build snapshot")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="creditkeep-backup.json"`)
	c.JSON(http.StatusOK, snap)
}

// restore godoc
// @Summary Restore from a snapshot
// @Description Loads a previously exported snapshot into the current database
// @Tags backup
// @Accept json
// @Success 204
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /backup/restore [post]
func (h *backupHandler) restore(c *gin.Context) {
	var snap domain.BackupSnapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		bindError(c, err)
		return
	}

	if err := h.backupService.Restore(c.Request.Context(), &snap); err != nil {
		respondError(c, err, "Failed to restore snapshot")
		return
	}
	c.Status(http.StatusNoContent)
}
