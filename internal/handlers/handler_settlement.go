package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laquila/backend/internal/apperrors"
	portssvc "github.com/laquila/backend/internal/core/ports/services"
	"github.com/laquila/backend/internal/dto"
	"github.com/laquila/backend/internal/middleware"
)

// settlementHandler handles HTTP requests that apply payments to orders.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

// newSettlementHandler creates a new settlementHandler.
func newSettlementHandler(ss portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{settlementService: ss}
}

// registerSettlementRoutes registers routes related to settlements.
func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := newSettlementHandler(settlementService)

	settlements := rg.Group("/settlements")
	{
		settlements.POST("", h.recordSettlement)
	}
}

// recordSettlement godoc
// @Summary Record a settlement against an order
// @Description Applies a payment to an order: bumps its settled amount, rederives the payment status and appends the matching income ledger entry atomically
// @Tags settlements
// @Accept  json
// @Produce  json
// @Param   settlement body dto.RecordSettlementRequest true "Settlement details"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Order, wallet or income category not found"
// @Failure 409 {object} map[string]string "Order is cancelled, fully settled, or the amount exceeds the remaining balance"
// @Failure 500 {object} map[string]string "Failed to record settlement"
// @Router /settlements [post]
func (h *settlementHandler) recordSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordSettlement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	order, err := h.settlementService.RecordSettlement(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record settlement in service", slog.String("error", err.Error()), slog.String("order_id", req.OrderID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record settlement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
