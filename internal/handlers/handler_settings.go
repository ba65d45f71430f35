package handlers

import (
	"net/http"

	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/internal/dto"
	"github.com/gin-gonic/gin"
)

type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

func newSettingsHandler(ss portssvc.SettingsSvcFacade) *settingsHandler {
	return &settingsHandler{settingsService: ss}
}

func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade) {
	h := newSettingsHandler(settingsService)

	settings := rg.Group("/settings")
	{
		settings.GET("/:key", h.getSetting)
		settings.PUT("/:key", h.setSetting)
	}
}

// getSetting godoc
// @Summary Read a setting
// @Tags settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /settings/{key} [get]
func (h *settingsHandler) getSetting(c *gin.Context) {
	key := c.Param("key")
	value, err := h.settingsService.GetSetting(c.Request.Context(), key)
	if err != nil {
		respondError(c, err, "Failed to read setting")
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

// setSetting godoc
// @Summary Write a setting
// @Tags settings
// @Accept json
// @Param key path string true "Setting key"
// @Param setting body dto.SetSettingRequest true "Setting value"
// @Success 204
// @Security BearerAuth
// @Router /settings/{key} [put]
func (h *settingsHandler) setSetting(c *gin.Context) {
	var req dto.SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.settingsService.SetSetting(c.Request.Context(), c.Param("key"), req.Value); err != nil {
		respondError(c, err, "Failed to write setting")
		return
	}
	c.Status(http.StatusNoContent)
}
