package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aurumworks/gold_ledger_app/internal/apperrors"
	portssvc "github.com/aurumworks/gold_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/gold_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// auditHandler exposes the read-only consistency checks and balance replays.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(auditService portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: auditService}
}

func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	audit := rg.Group("/audit")
	{
		audit.GET("/checks", h.runChecks)
		audit.GET("/replay/treasuries/:treasuryID", h.replayTreasury)
		audit.GET("/replay/accounts/:accountID", h.replayAccount)
	}
}

// runChecks godoc
// @Summary Run all ledger consistency checks
// @Tags audit
// @Produce  json
// @Success 200 {object} dto.AuditReport
// @Router /audit/checks [get]
func (h *auditHandler) runChecks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.auditService.RunChecks(c.Request.Context())
	if err != nil {
		logger.Error("Failed to run audit checks", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run audit checks"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// replayTreasury godoc
// @Summary Replay a treasury's transactions and compare against stored balances
// @Tags audit
// @Produce  json
// @Param   treasuryID path string true "Treasury ID"
// @Success 200 {object} dto.TreasuryReplayResult
// @Failure 404 {object} map[string]string "Treasury not found"
// @Router /audit/replay/treasuries/{treasuryID} [get]
func (h *auditHandler) replayTreasury(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	treasuryID := c.Param("treasuryID")

	result, err := h.auditService.ReplayTreasury(c.Request.Context(), treasuryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Treasury not found"})
			return
		}
		logger.Error("Failed to replay treasury", slog.String("error", err.Error()), slog.String("treasury_id", treasuryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replay treasury"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// replayAccount godoc
// @Summary Replay an account's ledger lines and compare against stored balances
// @Tags audit
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountReplayResult
// @Failure 404 {object} map[string]string "Account not found"
// @Router /audit/replay/accounts/{accountID} [get]
func (h *auditHandler) replayAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	result, err := h.auditService.ReplayAccount(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to replay account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replay account"})
		return
	}

	c.JSON(http.StatusOK, result)
}
