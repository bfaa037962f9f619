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

// voucherHandler handles HTTP requests related to expense and receipt
// vouchers.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

func newVoucherHandler(voucherService portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{voucherService: voucherService}
}

func registerVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	h := newVoucherHandler(voucherService)

	expenses := rg.Group("/expense-vouchers")
	{
		expenses.POST("", h.createExpenseVoucher)
		expenses.GET("", h.listExpenseVouchers)
		expenses.GET("/:voucherID", h.getExpenseVoucher)
		expenses.POST("/:voucherID/approve", h.approveExpenseVoucher)
		expenses.POST("/:voucherID/reject", h.rejectExpenseVoucher)
		expenses.POST("/:voucherID/cancel", h.cancelExpenseVoucher)
		expenses.POST("/:voucherID/pay", h.payExpenseVoucher)
	}
	receipts := rg.Group("/receipt-vouchers")
	{
		receipts.POST("", h.createReceiptVoucher)
		receipts.GET("", h.listReceiptVouchers)
		receipts.GET("/:voucherID", h.getReceiptVoucher)
		receipts.POST("/:voucherID/confirm", h.confirmReceiptVoucher)
		receipts.POST("/:voucherID/cancel", h.cancelReceiptVoucher)
	}
}

// createExpenseVoucher godoc
// @Summary Create an expense voucher
// @Tags expense-vouchers
// @Accept  json
// @Produce  json
// @Param   voucher body dto.CreateExpenseVoucherRequest true "Voucher details"
// @Success 201 {object} domain.ExpenseVoucher
// @Failure 400 {object} map[string]string "Invalid voucher"
// @Router /expense-vouchers [post]
func (h *voucherHandler) createExpenseVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateExpenseVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createExpenseVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID := middleware.GetActorIDFromContext(c)

	voucher, err := h.voucherService.CreateExpenseVoucher(c.Request.Context(), req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Treasury not found"})
		case errors.Is(err, services.ErrVoucherAmountInvalid), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create expense voucher", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense voucher"})
		}
		return
	}

	logger.Info("Expense voucher created", slog.String("voucher_id", voucher.VoucherID))
	c.JSON(http.StatusCreated, voucher)
}

// approveExpenseVoucher godoc
// @Summary Approve a pending expense voucher
// @Tags expense-vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} domain.ExpenseVoucher
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher not pending"
// @Router /expense-vouchers/{voucherID}/approve [post]
func (h *voucherHandler) approveExpenseVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	actorID := middleware.GetActorIDFromContext(c)

	voucher, err := h.voucherService.ApproveExpenseVoucher(c.Request.Context(), voucherID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		case errors.Is(err, services.ErrVoucherNotPending), errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to approve expense voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve expense voucher"})
		}
		return
	}

	logger.Info("Expense voucher approved", slog.String("voucher_id", voucherID))
	c.JSON(http.StatusOK, voucher)
}

// rejectExpenseVoucher godoc
// @Summary Reject a pending expense voucher
// @Tags expense-vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} domain.ExpenseVoucher
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher not pending"
// @Router /expense-vouchers/{voucherID}/reject [post]
func (h *voucherHandler) rejectExpenseVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	actorID := middleware.GetActorIDFromContext(c)

	voucher, err := h.voucherService.RejectExpenseVoucher(c.Request.Context(), voucherID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		case errors.Is(err, services.ErrVoucherNotPending), errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reject expense voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject expense voucher"})
		}
		return
	}

	logger.Info("Expense voucher rejected", slog.String("voucher_id", voucherID))
	c.JSON(http.StatusOK, voucher)
}

// cancelExpenseVoucher godoc
// @Summary Cancel an unpaid expense voucher
// @Tags expense-vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} domain.ExpenseVoucher
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher already paid"
// @Router /expense-vouchers/{voucherID}/cancel [post]
func (h *voucherHandler) cancelExpenseVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	actorID := middleware.GetActorIDFromContext(c)

	voucher, err := h.voucherService.CancelExpenseVoucher(c.Request.Context(), voucherID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to cancel expense voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel expense voucher"})
		}
		return
	}

	logger.Info("Expense voucher cancelled", slog.String("voucher_id", voucherID))
	c.JSON(http.StatusOK, voucher)
}

// payExpenseVoucher godoc
// @Summary Pay an approved expense voucher
// @Description Records the cash_out movement and posts its GL entry; idempotent
// @Tags expense-vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} domain.ExpenseVoucher
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher not approved"
// @Router /expense-vouchers/{voucherID}/pay [post]
func (h *voucherHandler) payExpenseVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	actorID := middleware.GetActorIDFromContext(c)

	voucher, err := h.voucherService.PayExpenseVoucher(c.Request.Context(), voucherID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		case errors.Is(err, services.ErrVoucherNotApproved), errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to pay expense voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pay expense voucher"})
		}
		return
	}

	logger.Info("Expense voucher paid", slog.String("voucher_id", voucherID))
	c.JSON(http.StatusOK, voucher)
}

// getExpenseVoucher godoc
// @Summary Get an expense voucher
// @Tags expense-vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} domain.ExpenseVoucher
// @Failure 404 {object} map[string]string "Voucher not found"
// @Router /expense-vouchers/{voucherID} [get]
func (h *voucherHandler) getExpenseVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	voucher, err := h.voucherService.GetExpenseVoucherByID(c.Request.Context(), voucherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
			return
		}
		logger.Error("Failed to get expense voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve expense voucher"})
		return
	}

	c.JSON(http.StatusOK, voucher)
}

// listExpenseVouchers godoc
// @Summary List expense vouchers
// @Tags expense-vouchers
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListExpenseVouchersResponse
// @Router /expense-vouchers [get]
func (h *voucherHandler) listExpenseVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.voucherService.ListExpenseVouchers(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list expense vouchers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list expense vouchers"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// createReceiptVoucher godoc
// @Summary Create a receipt voucher draft
// @Tags receipt-vouchers
// @Accept  json
// @Produce  json
// @Param   voucher body dto.CreateReceiptVoucherRequest true "Voucher details"
// @Success 201 {object} domain.ReceiptVoucher
// @Failure 400 {object} map[string]string "Invalid voucher"
// @Router /receipt-vouchers [post]
func (h *voucherHandler) createReceiptVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateReceiptVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createReceiptVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID := middleware.GetActorIDFromContext(c)

	voucher, err := h.voucherService.CreateReceiptVoucher(c.Request.Context(), req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Treasury not found"})
		case errors.Is(err, services.ErrReceiptEmpty), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create receipt voucher", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create receipt voucher"})
		}
		return
	}

	logger.Info("Receipt voucher created", slog.String("voucher_id", voucher.VoucherID))
	c.JSON(http.StatusCreated, voucher)
}

// confirmReceiptVoucher godoc
// @Summary Confirm a draft receipt voucher
// @Description Records the inbound movement and posts its GL entry; idempotent
// @Tags receipt-vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} domain.ReceiptVoucher
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher not draft"
// @Router /receipt-vouchers/{voucherID}/confirm [post]
func (h *voucherHandler) confirmReceiptVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	actorID := middleware.GetActorIDFromContext(c)

	voucher, err := h.voucherService.ConfirmReceiptVoucher(c.Request.Context(), voucherID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to confirm receipt voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm receipt voucher"})
		}
		return
	}

	logger.Info("Receipt voucher confirmed", slog.String("voucher_id", voucherID))
	c.JSON(http.StatusOK, voucher)
}

// cancelReceiptVoucher godoc
// @Summary Cancel a draft receipt voucher
// @Tags receipt-vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} domain.ReceiptVoucher
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher already confirmed"
// @Router /receipt-vouchers/{voucherID}/cancel [post]
func (h *voucherHandler) cancelReceiptVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	actorID := middleware.GetActorIDFromContext(c)

	voucher, err := h.voucherService.CancelReceiptVoucher(c.Request.Context(), voucherID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to cancel receipt voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel receipt voucher"})
		}
		return
	}

	logger.Info("Receipt voucher cancelled", slog.String("voucher_id", voucherID))
	c.JSON(http.StatusOK, voucher)
}

// getReceiptVoucher godoc
// @Summary Get a receipt voucher
// @Tags receipt-vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} domain.ReceiptVoucher
// @Failure 404 {object} map[string]string "Voucher not found"
// @Router /receipt-vouchers/{voucherID} [get]
func (h *voucherHandler) getReceiptVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	voucher, err := h.voucherService.GetReceiptVoucherByID(c.Request.Context(), voucherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
			return
		}
		logger.Error("Failed to get receipt voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve receipt voucher"})
		return
	}

	c.JSON(http.StatusOK, voucher)
}

// listReceiptVouchers godoc
// @Summary List receipt vouchers
// @Tags receipt-vouchers
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListReceiptVouchersResponse
// @Router /receipt-vouchers [get]
func (h *voucherHandler) listReceiptVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.voucherService.ListReceiptVouchers(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list receipt vouchers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list receipt vouchers"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
