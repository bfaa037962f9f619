package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/aurumworks/gold_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/gold_ledger_app/internal/dto"
	"github.com/aurumworks/gold_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler exposes the posting hook for confirmed sales invoices.
type invoiceHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newInvoiceHandler(postingService portssvc.PostingSvcFacade) *invoiceHandler {
	return &invoiceHandler{postingService: postingService}
}

func registerInvoiceRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newInvoiceHandler(postingService)

	rg.POST("/invoices/confirm", h.confirmInvoice)
}

// confirmInvoice godoc
// @Summary Post the revenue entry for a confirmed sales invoice
// @Description Maps the invoice to a balanced journal entry keyed by its invoice number. When the finance settings are incomplete the posting is skipped and the response carries no entry.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.ConfirmInvoiceRequest true "Confirmed invoice"
// @Success 200 {object} dto.ConfirmInvoiceResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /invoices/confirm [post]
func (h *invoiceHandler) confirmInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConfirmInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for confirmInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID := middleware.GetActorIDFromContext(c)
	invoice := req.ToDomainInvoice()

	entry, err := h.postingService.PostInvoice(c.Request.Context(), invoice, creatorID)
	if err != nil {
		logger.Error("Failed to post invoice entry", slog.String("error", err.Error()), slog.String("invoice_number", req.InvoiceNumber))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post invoice"})
		return
	}

	commissionEntry, err := h.postingService.PostCommission(c.Request.Context(), invoice, creatorID)
	if err != nil {
		logger.Error("Failed to post commission entry", slog.String("error", err.Error()), slog.String("invoice_number", req.InvoiceNumber))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post commission"})
		return
	}

	resp := dto.ConfirmInvoiceResponse{}
	if commissionEntry != nil {
		commissionResp := dto.ToJournalEntryResponse(*commissionEntry)
		resp.CommissionEntry = &commissionResp
	}

	// A nil entry means the posting was skipped; the invoice confirmation
	// itself still succeeds.
	if entry == nil {
		logger.Warn("Invoice posting skipped", slog.String("invoice_number", req.InvoiceNumber))
		c.JSON(http.StatusOK, resp)
		return
	}

	logger.Info("Invoice posted", slog.String("invoice_number", req.InvoiceNumber), slog.String("entry_id", entry.EntryID))
	entryResp := dto.ToJournalEntryResponse(*entry)
	resp.Posted = true
	resp.Entry = &entryResp
	c.JSON(http.StatusOK, resp)
}
