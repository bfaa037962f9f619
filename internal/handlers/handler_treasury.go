package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aurumworks/gold_ledger_app/internal/apperrors"
	portssvc "github.com/aurumworks/gold_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/gold_ledger_app/internal/core/services"
	"github.com/aurumworks/gold_ledger_app/internal/dto"
	"github.com/aurumworks/gold_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// treasuryHandler handles HTTP requests related to treasuries and transfers.
type treasuryHandler struct {
	treasuryService portssvc.TreasurySvcFacade
}

func newTreasuryHandler(treasuryService portssvc.TreasurySvcFacade) *treasuryHandler {
	return &treasuryHandler{treasuryService: treasuryService}
}

func registerTreasuryRoutes(rg *gin.RouterGroup, treasuryService portssvc.TreasurySvcFacade) {
	h := newTreasuryHandler(treasuryService)

	treasuries := rg.Group("/treasuries")
	{
		treasuries.POST("", h.createTreasury)
		treasuries.GET("", h.listTreasuries)
		treasuries.GET("/:treasuryID", h.getTreasury)
		treasuries.POST("/:treasuryID/transactions", h.recordTransaction)
		treasuries.GET("/:treasuryID/transactions", h.listTransactions)
	}
	transfers := rg.Group("/treasury-transfers")
	{
		transfers.POST("", h.createTransfer)
		transfers.GET("", h.listTransfers)
		transfers.GET("/:transferID", h.getTransfer)
		transfers.POST("/:transferID/complete", h.completeTransfer)
		transfers.POST("/:transferID/cancel", h.cancelTransfer)
	}
}

// createTreasury godoc
// @Summary Create a treasury
// @Tags treasuries
// @Accept  json
// @Produce  json
// @Param   treasury body dto.CreateTreasuryRequest true "Treasury details"
// @Success 201 {object} dto.TreasuryResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Duplicate code"
// @Router /treasuries [post]
func (h *treasuryHandler) createTreasury(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTreasuryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createTreasury", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID := middleware.GetActorIDFromContext(c)

	treasury, err := h.treasuryService.CreateTreasury(c.Request.Context(), req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrTreasuryNotFound), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create treasury", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create treasury"})
		}
		return
	}

	logger.Info("Treasury created", slog.String("treasury_id", treasury.TreasuryID))
	c.JSON(http.StatusCreated, dto.ToTreasuryResponse(*treasury))
}

// getTreasury godoc
// @Summary Get a treasury
// @Tags treasuries
// @Produce  json
// @Param   treasuryID path string true "Treasury ID"
// @Success 200 {object} dto.TreasuryResponse
// @Failure 404 {object} map[string]string "Treasury not found"
// @Router /treasuries/{treasuryID} [get]
func (h *treasuryHandler) getTreasury(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	treasuryID := c.Param("treasuryID")

	treasury, err := h.treasuryService.GetTreasuryByID(c.Request.Context(), treasuryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Treasury not found"})
			return
		}
		logger.Error("Failed to get treasury", slog.String("error", err.Error()), slog.String("treasury_id", treasuryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve treasury"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTreasuryResponse(*treasury))
}

// listTreasuries godoc
// @Summary List treasuries
// @Tags treasuries
// @Produce  json
// @Success 200 {array} dto.TreasuryResponse
// @Router /treasuries [get]
func (h *treasuryHandler) listTreasuries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	treasuries, err := h.treasuryService.ListTreasuries(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list treasuries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list treasuries"})
		return
	}

	responses := make([]dto.TreasuryResponse, len(treasuries))
	for i, t := range treasuries {
		responses[i] = dto.ToTreasuryResponse(t)
	}
	c.JSON(http.StatusOK, responses)
}

// recordTransaction godoc
// @Summary Record a treasury transaction
// @Description Records a custody movement and posts its GL entry when configuration allows
// @Tags treasuries
// @Accept  json
// @Produce  json
// @Param   treasuryID path string true "Treasury ID"
// @Param   transaction body dto.RecordTreasuryTransactionRequest true "Transaction details"
// @Success 201 {object} domain.TreasuryTransaction
// @Failure 400 {object} map[string]string "Invalid transaction"
// @Failure 404 {object} map[string]string "Treasury not found"
// @Router /treasuries/{treasuryID}/transactions [post]
func (h *treasuryHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordTreasuryTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for recordTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	req.TreasuryID = c.Param("treasuryID")

	creatorID := middleware.GetActorIDFromContext(c)

	txn, err := h.treasuryService.RecordTransaction(c.Request.Context(), req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Treasury not found"})
		case errors.Is(err, services.ErrDirectTransferRecord), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error recording treasury transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record treasury transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record transaction"})
		}
		return
	}

	logger.Info("Treasury transaction recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, txn)
}

// listTransactions godoc
// @Summary List a treasury's transactions
// @Tags treasuries
// @Produce  json
// @Param   treasuryID path string true "Treasury ID"
// @Success 200 {array} domain.TreasuryTransaction
// @Router /treasuries/{treasuryID}/transactions [get]
func (h *treasuryHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	treasuryID := c.Param("treasuryID")

	txns, err := h.treasuryService.ListTransactions(c.Request.Context(), treasuryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Treasury not found"})
			return
		}
		logger.Error("Failed to list treasury transactions", slog.String("error", err.Error()), slog.String("treasury_id", treasuryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, txns)
}

// createTransfer godoc
// @Summary Create a pending treasury transfer
// @Tags treasury-transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTreasuryTransferRequest true "Transfer details"
// @Success 201 {object} domain.TreasuryTransfer
// @Failure 400 {object} map[string]string "Invalid transfer"
// @Router /treasury-transfers [post]
func (h *treasuryHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTreasuryTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID := middleware.GetActorIDFromContext(c)

	transfer, err := h.treasuryService.CreateTransfer(c.Request.Context(), req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Treasury not found"})
		case errors.Is(err, services.ErrTransferSameTreasury),
			errors.Is(err, services.ErrTransferEmpty),
			errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transfer"})
		}
		return
	}

	logger.Info("Treasury transfer created", slog.String("transfer_id", transfer.TransferID))
	c.JSON(http.StatusCreated, transfer)
}

// getTransfer godoc
// @Summary Get a treasury transfer
// @Tags treasury-transfers
// @Produce  json
// @Param   transferID path string true "Transfer ID"
// @Success 200 {object} domain.TreasuryTransfer
// @Failure 404 {object} map[string]string "Transfer not found"
// @Router /treasury-transfers/{transferID} [get]
func (h *treasuryHandler) getTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	transfer, err := h.treasuryService.GetTransferByID(c.Request.Context(), transferID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transfer not found"})
			return
		}
		logger.Error("Failed to get transfer", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transfer"})
		return
	}

	c.JSON(http.StatusOK, transfer)
}

// listTransfers godoc
// @Summary List treasury transfers
// @Tags treasury-transfers
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListTransfersResponse
// @Router /treasury-transfers [get]
func (h *treasuryHandler) listTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.treasuryService.ListTransfers(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list transfers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transfers"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// completeTransfer godoc
// @Summary Complete a pending transfer
// @Description Moves custody out of the source and into the destination treasury; idempotent
// @Tags treasury-transfers
// @Produce  json
// @Param   transferID path string true "Transfer ID"
// @Success 200 {object} domain.TreasuryTransfer
// @Failure 404 {object} map[string]string "Transfer not found"
// @Failure 409 {object} map[string]string "Transfer cancelled"
// @Router /treasury-transfers/{transferID}/complete [post]
func (h *treasuryHandler) completeTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	actorID := middleware.GetActorIDFromContext(c)

	transfer, err := h.treasuryService.CompleteTransfer(c.Request.Context(), transferID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transfer not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to complete transfer", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete transfer"})
		}
		return
	}

	logger.Info("Treasury transfer completed", slog.String("transfer_id", transferID))
	c.JSON(http.StatusOK, transfer)
}

// cancelTransfer godoc
// @Summary Cancel a pending transfer
// @Tags treasury-transfers
// @Produce  json
// @Param   transferID path string true "Transfer ID"
// @Success 200 {object} domain.TreasuryTransfer
// @Failure 404 {object} map[string]string "Transfer not found"
// @Failure 409 {object} map[string]string "Transfer not pending"
// @Router /treasury-transfers/{transferID}/cancel [post]
func (h *treasuryHandler) cancelTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	actorID := middleware.GetActorIDFromContext(c)

	transfer, err := h.treasuryService.CancelTransfer(c.Request.Context(), transferID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transfer not found"})
		case errors.Is(err, services.ErrTransferNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to cancel transfer", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel transfer"})
		}
		return
	}

	logger.Info("Treasury transfer cancelled", slog.String("transfer_id", transferID))
	c.JSON(http.StatusOK, transfer)
}
