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

// workshopHandler handles HTTP requests related to workshops.
type workshopHandler struct {
	workshopService portssvc.WorkshopSvcFacade
}

func newWorkshopHandler(workshopService portssvc.WorkshopSvcFacade) *workshopHandler {
	return &workshopHandler{workshopService: workshopService}
}

func registerWorkshopRoutes(rg *gin.RouterGroup, workshopService portssvc.WorkshopSvcFacade) {
	h := newWorkshopHandler(workshopService)

	workshops := rg.Group("/workshops")
	{
		workshops.POST("", h.createWorkshop)
		workshops.GET("", h.listWorkshops)
		workshops.GET("/:workshopID", h.getWorkshop)
		workshops.GET("/:workshopID/transfers", h.listWorkshopTransfers)
		workshops.POST("/:workshopID/settlements", h.recordSettlement)
		workshops.GET("/:workshopID/settlements", h.listSettlements)
	}
	transfers := rg.Group("/workshop-transfers")
	{
		transfers.POST("", h.createWorkshopTransfer)
		transfers.POST("/:transferID/complete", h.completeWorkshopTransfer)
	}
}

// createWorkshop godoc
// @Summary Create a workshop
// @Tags workshops
// @Accept  json
// @Produce  json
// @Param   workshop body dto.CreateWorkshopRequest true "Workshop details"
// @Success 201 {object} dto.WorkshopResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /workshops [post]
func (h *workshopHandler) createWorkshop(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateWorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createWorkshop", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID := middleware.GetActorIDFromContext(c)

	workshop, err := h.workshopService.CreateWorkshop(c.Request.Context(), req, creatorID)
	if err != nil {
		logger.Error("Failed to create workshop", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create workshop"})
		return
	}

	logger.Info("Workshop created", slog.String("workshop_id", workshop.WorkshopID))
	c.JSON(http.StatusCreated, dto.ToWorkshopResponse(*workshop))
}

// getWorkshop godoc
// @Summary Get a workshop with its custody balances
// @Tags workshops
// @Produce  json
// @Param   workshopID path string true "Workshop ID"
// @Success 200 {object} dto.WorkshopResponse
// @Failure 404 {object} map[string]string "Workshop not found"
// @Router /workshops/{workshopID} [get]
func (h *workshopHandler) getWorkshop(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workshopID := c.Param("workshopID")

	workshop, err := h.workshopService.GetWorkshopByID(c.Request.Context(), workshopID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Workshop not found"})
			return
		}
		logger.Error("Failed to get workshop", slog.String("error", err.Error()), slog.String("workshop_id", workshopID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workshop"})
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkshopResponse(*workshop))
}

// listWorkshops godoc
// @Summary List workshops
// @Tags workshops
// @Produce  json
// @Success 200 {array} dto.WorkshopResponse
// @Router /workshops [get]
func (h *workshopHandler) listWorkshops(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	workshops, err := h.workshopService.ListWorkshops(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list workshops", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list workshops"})
		return
	}

	responses := make([]dto.WorkshopResponse, len(workshops))
	for i, w := range workshops {
		responses[i] = dto.ToWorkshopResponse(w)
	}
	c.JSON(http.StatusOK, responses)
}

// createWorkshopTransfer godoc
// @Summary Create a pending workshop-to-workshop gold transfer
// @Tags workshop-transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateWorkshopTransferRequest true "Transfer details"
// @Success 201 {object} domain.WorkshopTransfer
// @Failure 400 {object} map[string]string "Invalid transfer"
// @Router /workshop-transfers [post]
func (h *workshopHandler) createWorkshopTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateWorkshopTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createWorkshopTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID := middleware.GetActorIDFromContext(c)

	transfer, err := h.workshopService.CreateWorkshopTransfer(c.Request.Context(), req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Workshop not found"})
		case errors.Is(err, services.ErrWorkshopSameWorkshop),
			errors.Is(err, services.ErrWorkshopTransferEmpty),
			errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create workshop transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create workshop transfer"})
		}
		return
	}

	logger.Info("Workshop transfer created", slog.String("transfer_id", transfer.TransferID))
	c.JSON(http.StatusCreated, transfer)
}

// completeWorkshopTransfer godoc
// @Summary Complete a pending workshop transfer
// @Description Moves gold custody between workshops; blocks when the source lacks the weight
// @Tags workshop-transfers
// @Produce  json
// @Param   transferID path string true "Transfer ID"
// @Success 200 {object} domain.WorkshopTransfer
// @Failure 404 {object} map[string]string "Transfer not found"
// @Failure 409 {object} map[string]string "Insufficient workshop gold"
// @Router /workshop-transfers/{transferID}/complete [post]
func (h *workshopHandler) completeWorkshopTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	actorID := middleware.GetActorIDFromContext(c)

	transfer, err := h.workshopService.CompleteWorkshopTransfer(c.Request.Context(), transferID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transfer not found"})
		case errors.Is(err, services.ErrInsufficientWorkshopGold), errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to complete workshop transfer", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete workshop transfer"})
		}
		return
	}

	logger.Info("Workshop transfer completed", slog.String("transfer_id", transferID))
	c.JSON(http.StatusOK, transfer)
}

// listWorkshopTransfers godoc
// @Summary List a workshop's transfers
// @Tags workshops
// @Produce  json
// @Param   workshopID path string true "Workshop ID"
// @Success 200 {array} domain.WorkshopTransfer
// @Router /workshops/{workshopID}/transfers [get]
func (h *workshopHandler) listWorkshopTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workshopID := c.Param("workshopID")

	transfers, err := h.workshopService.ListWorkshopTransfers(c.Request.Context(), workshopID)
	if err != nil {
		logger.Error("Failed to list workshop transfers", slog.String("error", err.Error()), slog.String("workshop_id", workshopID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list workshop transfers"})
		return
	}

	c.JSON(http.StatusOK, transfers)
}

// recordSettlement godoc
// @Summary Record a workshop settlement
// @Description Settles labor, gold, scrap or powder against an external workshop
// @Tags workshops
// @Accept  json
// @Produce  json
// @Param   workshopID path string true "Workshop ID"
// @Param   settlement body dto.RecordSettlementRequest true "Settlement details"
// @Success 201 {object} domain.WorkshopSettlement
// @Failure 400 {object} map[string]string "Invalid settlement"
// @Failure 404 {object} map[string]string "Workshop not found"
// @Router /workshops/{workshopID}/settlements [post]
func (h *workshopHandler) recordSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for recordSettlement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	req.WorkshopID = c.Param("workshopID")

	creatorID := middleware.GetActorIDFromContext(c)

	settlement, err := h.workshopService.RecordSettlement(c.Request.Context(), req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Workshop not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record settlement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record settlement"})
		}
		return
	}

	logger.Info("Workshop settlement recorded", slog.String("settlement_id", settlement.SettlementID))
	c.JSON(http.StatusCreated, settlement)
}

// listSettlements godoc
// @Summary List a workshop's settlements
// @Tags workshops
// @Produce  json
// @Param   workshopID path string true "Workshop ID"
// @Success 200 {array} domain.WorkshopSettlement
// @Router /workshops/{workshopID}/settlements [get]
func (h *workshopHandler) listSettlements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workshopID := c.Param("workshopID")

	settlements, err := h.workshopService.ListSettlements(c.Request.Context(), workshopID)
	if err != nil {
		logger.Error("Failed to list settlements", slog.String("error", err.Error()), slog.String("workshop_id", workshopID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list settlements"})
		return
	}

	c.JSON(http.StatusOK, settlements)
}
