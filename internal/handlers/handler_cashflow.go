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

// cashFlowHandler handles HTTP requests related to the cash-flow ledger.
type cashFlowHandler struct {
	cashFlowService portssvc.CashFlowSvcFacade
}

// newCashFlowHandler creates a new cashFlowHandler.
func newCashFlowHandler(cs portssvc.CashFlowSvcFacade) *cashFlowHandler {
	return &cashFlowHandler{cashFlowService: cs}
}

// registerCashFlowRoutes registers routes related to the cash-flow ledger.
func registerCashFlowRoutes(rg *gin.RouterGroup, cashFlowService portssvc.CashFlowSvcFacade) {
	h := newCashFlowHandler(cashFlowService)

	cashflows := rg.Group("/cashflows")
	{
		cashflows.POST("", h.createEntry)
		cashflows.GET("", h.listEntries)
		cashflows.PUT("/:entryID", h.updateEntry)
		cashflows.DELETE("/:entryID", h.deleteEntry)
	}
}

// createEntry godoc
// @Summary Append a manual ledger entry
// @Description Appends an income, expense or transfer entry to the cash-flow ledger
// @Tags cashflows
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateCashFlowEntryRequest true "Entry details"
// @Success 201 {object} dto.CashFlowEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Wallet or category not found"
// @Failure 500 {object} map[string]string "Failed to append entry"
// @Router /cashflows [post]
func (h *cashFlowHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCashFlowEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCashFlowEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.cashFlowService.AppendManualEntry(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to append ledger entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to append entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCashFlowEntryResponse(entry))
}

// listEntries godoc
// @Summary List ledger entries
// @Description Retrieves a filtered, cursor-paginated list of cash-flow entries
// @Tags cashflows
// @Produce  json
// @Param   type query string false "Entry type filter (income, expense or transfer)"
// @Param   walletID query string false "Wallet filter (matches source and transfer destination)"
// @Param   category query string false "Category name filter"
// @Param   from query string false "Occurrence time lower bound (RFC3339)"
// @Param   to query string false "Occurrence time upper bound (RFC3339)"
// @Param   q query string false "Free text search over description and category"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListCashFlowEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /cashflows [get]
func (h *cashFlowHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListCashFlowParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListCashFlowEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	result, err := h.cashFlowService.ListEntries(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list ledger entries from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// updateEntry godoc
// @Summary Update a manual ledger entry
// @Description Rewrites a manually entered ledger row; settlement-originated entries are immutable
// @Tags cashflows
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateCashFlowEntryRequest true "Fields to update"
// @Success 200 {object} dto.CashFlowEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry belongs to a settlement"
// @Failure 500 {object} map[string]string "Failed to update entry"
// @Router /cashflows/{entryID} [put]
func (h *cashFlowHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.UpdateCashFlowEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCashFlowEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.cashFlowService.UpdateManualEntry(c.Request.Context(), entryID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update ledger entry in service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCashFlowEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a manual ledger entry
// @Description Removes a manually entered ledger row; settlement-originated entries are immutable
// @Tags cashflows
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 204 "Entry deleted"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry belongs to a settlement"
// @Failure 500 {object} map[string]string "Failed to delete entry"
// @Router /cashflows/{entryID} [delete]
func (h *cashFlowHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	if err := h.cashFlowService.DeleteManualEntry(c.Request.Context(), entryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to delete ledger entry in service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
