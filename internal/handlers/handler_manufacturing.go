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

// manufacturingHandler handles HTTP requests related to manufacturing orders.
type manufacturingHandler struct {
	manufacturingService portssvc.ManufacturingSvcFacade
}

func newManufacturingHandler(manufacturingService portssvc.ManufacturingSvcFacade) *manufacturingHandler {
	return &manufacturingHandler{manufacturingService: manufacturingService}
}

func registerManufacturingRoutes(rg *gin.RouterGroup, manufacturingService portssvc.ManufacturingSvcFacade) {
	h := newManufacturingHandler(manufacturingService)

	orders := rg.Group("/manufacturing-orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:orderID", h.getOrder)
		orders.POST("/:orderID/issue", h.issueOrder)
		orders.POST("/:orderID/stages", h.recordStage)
		orders.GET("/:orderID/stages", h.listStages)
		orders.POST("/:orderID/complete", h.completeOrder)
		orders.POST("/:orderID/stones", h.addOrderStone)
		orders.GET("/:orderID/stones", h.listOrderStones)
	}
}

// createOrder godoc
// @Summary Create a manufacturing order draft
// @Tags manufacturing-orders
// @Accept  json
// @Produce  json
// @Param   order body dto.CreateOrderRequest true "Order details"
// @Success 201 {object} domain.ManufacturingOrder
// @Failure 400 {object} map[string]string "Invalid order"
// @Router /manufacturing-orders [post]
func (h *manufacturingHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID := middleware.GetActorIDFromContext(c)

	order, err := h.manufacturingService.CreateOrder(c.Request.Context(), req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Referenced resource not found"})
		case errors.Is(err, services.ErrOrderInputInvalid), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create manufacturing order", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	logger.Info("Manufacturing order created", slog.String("order_id", order.OrderID))
	c.JSON(http.StatusCreated, order)
}

// getOrder godoc
// @Summary Get a manufacturing order
// @Tags manufacturing-orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} domain.ManufacturingOrder
// @Failure 404 {object} map[string]string "Order not found"
// @Router /manufacturing-orders/{orderID} [get]
func (h *manufacturingHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	order, err := h.manufacturingService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		logger.Error("Failed to get manufacturing order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// listOrders godoc
// @Summary List manufacturing orders
// @Tags manufacturing-orders
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListOrdersResponse
// @Router /manufacturing-orders [get]
func (h *manufacturingHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.manufacturingService.ListOrders(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list manufacturing orders", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// issueOrder godoc
// @Summary Issue a draft order into production
// @Description Deducts the raw-material lot and moves the input weight into workshop custody
// @Tags manufacturing-orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} domain.ManufacturingOrder
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 409 {object} map[string]string "Order not draft or lot short"
// @Router /manufacturing-orders/{orderID}/issue [post]
func (h *manufacturingHandler) issueOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	actorID := middleware.GetActorIDFromContext(c)

	order, err := h.manufacturingService.IssueOrder(c.Request.Context(), orderID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, services.ErrOrderNotDraft),
			errors.Is(err, services.ErrInsufficientRawLot),
			errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrOrderInputInvalid), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to issue order", slog.String("error", err.Error()), slog.String("order_id", orderID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue order"})
		}
		return
	}

	logger.Info("Manufacturing order issued", slog.String("order_id", orderID))
	c.JSON(http.StatusOK, order)
}

// recordStage godoc
// @Summary Record a production stage
// @Description Appends a stage, derives its loss, and chains a workshop transfer when a next workshop is named
// @Tags manufacturing-orders
// @Accept  json
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Param   stage body dto.RecordStageRequest true "Stage details"
// @Success 201 {object} domain.ProductionStage
// @Failure 400 {object} map[string]string "Invalid stage"
// @Failure 409 {object} map[string]string "Order not active"
// @Router /manufacturing-orders/{orderID}/stages [post]
func (h *manufacturingHandler) recordStage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	var req dto.RecordStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for recordStage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID := middleware.GetActorIDFromContext(c)

	stage, err := h.manufacturingService.RecordStage(c.Request.Context(), orderID, req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, services.ErrOrderNotActive),
			errors.Is(err, services.ErrInsufficientWorkshopGold),
			errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record stage", slog.String("error", err.Error()), slog.String("order_id", orderID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record stage"})
		}
		return
	}

	logger.Info("Production stage recorded", slog.String("stage_id", stage.StageID), slog.String("order_id", orderID))
	c.JSON(http.StatusCreated, stage)
}

// listStages godoc
// @Summary List an order's production stages
// @Tags manufacturing-orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {array} domain.ProductionStage
// @Router /manufacturing-orders/{orderID}/stages [get]
func (h *manufacturingHandler) listStages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	stages, err := h.manufacturingService.ListStages(c.Request.Context(), orderID)
	if err != nil {
		logger.Error("Failed to list stages", slog.String("error", err.Error()), slog.String("order_id", orderID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stages"})
		return
	}

	c.JSON(http.StatusOK, stages)
}

// completeOrder godoc
// @Summary Complete an active manufacturing order
// @Description Consumes workshop gold, settles filings and labor, draws laser gain from tool stock and optionally creates the finished item
// @Tags manufacturing-orders
// @Accept  json
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Param   completion body dto.CompleteOrderRequest true "Completion weights"
// @Success 200 {object} domain.ManufacturingOrder
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 409 {object} map[string]string "Order not active or custody short"
// @Router /manufacturing-orders/{orderID}/complete [post]
func (h *manufacturingHandler) completeOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	var req dto.CompleteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for completeOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)

	order, err := h.manufacturingService.CompleteOrder(c.Request.Context(), orderID, req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, services.ErrOrderNotActive),
			errors.Is(err, services.ErrInsufficientWorkshopGold),
			errors.Is(err, services.ErrInsufficientToolStock),
			errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to complete order", slog.String("error", err.Error()), slog.String("order_id", orderID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete order"})
		}
		return
	}

	logger.Info("Manufacturing order completed", slog.String("order_id", orderID))
	c.JSON(http.StatusOK, order)
}

// addOrderStone godoc
// @Summary Add a stone line to an order
// @Tags manufacturing-orders
// @Accept  json
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Param   stone body dto.AddOrderStoneRequest true "Stone details"
// @Success 201 {object} domain.OrderStone
// @Failure 409 {object} map[string]string "Order already terminal"
// @Router /manufacturing-orders/{orderID}/stones [post]
func (h *manufacturingHandler) addOrderStone(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	var req dto.AddOrderStoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for addOrderStone", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID := middleware.GetActorIDFromContext(c)

	stone, err := h.manufacturingService.AddOrderStone(c.Request.Context(), orderID, req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to add order stone", slog.String("error", err.Error()), slog.String("order_id", orderID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add stone"})
		}
		return
	}

	logger.Info("Order stone added", slog.String("order_stone_id", stone.OrderStoneID), slog.String("order_id", orderID))
	c.JSON(http.StatusCreated, stone)
}

// listOrderStones godoc
// @Summary List an order's stone lines
// @Tags manufacturing-orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {array} domain.OrderStone
// @Router /manufacturing-orders/{orderID}/stones [get]
func (h *manufacturingHandler) listOrderStones(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	stones, err := h.manufacturingService.ListOrderStones(c.Request.Context(), orderID)
	if err != nil {
		logger.Error("Failed to list order stones", slog.String("error", err.Error()), slog.String("order_id", orderID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stones"})
		return
	}

	c.JSON(http.StatusOK, stones)
}
