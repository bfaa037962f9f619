package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aurumworks/gold_ledger_app/internal/apperrors"
	portssvc "github.com/aurumworks/gold_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/gold_ledger_app/internal/dto"
	"github.com/aurumworks/gold_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settingsHandler handles HTTP requests for finance settings and
// notifications.
type settingsHandler struct {
	settingsService     portssvc.SettingsSvcFacade
	notificationService portssvc.NotificationSvcFacade
}

func newSettingsHandler(settingsService portssvc.SettingsSvcFacade, notificationService portssvc.NotificationSvcFacade) *settingsHandler {
	return &settingsHandler{
		settingsService:     settingsService,
		notificationService: notificationService,
	}
}

func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade, notificationService portssvc.NotificationSvcFacade) {
	h := newSettingsHandler(settingsService, notificationService)

	rg.GET("/settings/finance", h.getSettings)
	rg.PUT("/settings/finance", h.updateSettings)

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.POST("/:notificationID/read", h.markNotificationRead)
	}
}

// getSettings godoc
// @Summary Get the finance settings
// @Tags settings
// @Produce  json
// @Success 200 {object} domain.FinanceSettings
// @Router /settings/finance [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get finance settings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// updateSettings godoc
// @Summary Update the finance settings
// @Description Replaces the account and treasury mapping the posting engine reads
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   settings body dto.UpdateFinanceSettingsRequest true "Settings"
// @Success 200 {object} domain.FinanceSettings
// @Failure 400 {object} map[string]string "Unknown account or treasury"
// @Router /settings/finance [put]
func (h *settingsHandler) updateSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateFinanceSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateSettings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating settings", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update finance settings", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		}
		return
	}

	logger.Info("Finance settings updated")
	c.JSON(http.StatusOK, settings)
}

// listNotifications godoc
// @Summary List notifications
// @Tags notifications
// @Produce  json
// @Param   unreadOnly query bool false "Only unread notifications"
// @Param   limit query int false "Page size"
// @Success 200 {array} domain.Notification
// @Router /notifications [get]
func (h *settingsHandler) listNotifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	unreadOnly, _ := strconv.ParseBool(c.Query("unreadOnly"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), unreadOnly, limit)
	if err != nil {
		logger.Error("Failed to list notifications", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// markNotificationRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce  json
// @Param   notificationID path string true "Notification ID"
// @Success 204 "Marked read"
// @Failure 404 {object} map[string]string "Notification not found"
// @Router /notifications/{notificationID}/read [post]
func (h *settingsHandler) markNotificationRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	notificationID := c.Param("notificationID")

	if err := h.notificationService.MarkRead(c.Request.Context(), notificationID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		logger.Error("Failed to mark notification read", slog.String("error", err.Error()), slog.String("notification_id", notificationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification read"})
		return
	}

	c.Status(http.StatusNoContent)
}
