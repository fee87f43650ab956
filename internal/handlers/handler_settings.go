package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bazaarhq/storefront_backoffice/internal/core/ports/services"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
	"github.com/bazaarhq/storefront_backoffice/internal/middleware"
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

	rg.GET("/settings", h.getSettings)
	rg.PUT("/settings", h.saveSettings)
}

// getSettings godoc
// @Summary Get settings
// @Description Returns the settings document together with the chart of accounts. Defaults are created on first read.
// @Tags settings
// @Produce json
// @Success 200 {object} dto.SettingsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	settings, accounts, err := h.settingsService.GetSettingsWithAccounts(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to load settings")
		return
	}

	c.JSON(http.StatusOK, dto.SettingsResponse{Settings: *settings, Accounts: dto.ToListAccountResponse(accounts)})
}

// saveSettings godoc
// @Summary Replace settings
// @Description Replaces the whole settings document. Fields not submitted are cleared.
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body dto.SaveSettingsRequest true "Settings"
// @Success 200 {object} domain.Settings
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /settings [put]
func (h *settingsHandler) saveSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveSettings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	settings, err := h.settingsService.SaveSettings(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to save settings")
		return
	}

	logger.Info("Settings saved")
	c.JSON(http.StatusOK, settings)
}
