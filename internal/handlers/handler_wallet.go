package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/laquila/backend/internal/apperrors"
	portssvc "github.com/laquila/backend/internal/core/ports/services"
	"github.com/laquila/backend/internal/dto"
	"github.com/laquila/backend/internal/middleware"
)

// walletHandler handles HTTP requests related to wallets and their projected
// balances.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

// newWalletHandler creates a new walletHandler.
func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws}
}

// registerWalletRoutes registers routes related to wallets.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService)

	wallets := rg.Group("/wallets")
	{
		wallets.GET("", h.listWallets)
		wallets.GET("/:walletID", h.getWallet)
		wallets.GET("/:walletID/balance", h.getBalance)
	}
}

// listWallets godoc
// @Summary List wallets
// @Tags wallets
// @Produce  json
// @Success 200 {array} dto.WalletResponse
// @Failure 500 {object} map[string]string "Failed to list wallets"
// @Router /wallets [get]
func (h *walletHandler) listWallets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	wallets, err := h.walletService.ListWallets(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list wallets from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list wallets"})
		return
	}

	responses := make([]dto.WalletResponse, len(wallets))
	for i := range wallets {
		responses[i] = dto.ToWalletResponse(&wallets[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getWallet godoc
// @Summary Get a wallet by ID
// @Tags wallets
// @Produce  json
// @Param   walletID path string true "Wallet ID"
// @Success 200 {object} dto.WalletResponse
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 500 {object} map[string]string "Failed to retrieve wallet"
// @Router /wallets/{walletID} [get]
func (h *walletHandler) getWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("walletID")

	wallet, err := h.walletService.GetWalletByID(c.Request.Context(), walletID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		} else {
			logger.Error("Failed to get wallet from service", slog.String("error", err.Error()), slog.String("wallet_id", walletID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve wallet"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// getBalance godoc
// @Summary Get a wallet's projected balance
// @Description Replays the ledger entries touching the wallet, optionally up to a cutoff; the balance is never stored
// @Tags wallets
// @Produce  json
// @Param   walletID path string true "Wallet ID"
// @Param   asOf query string false "Cutoff timestamp (RFC3339)"
// @Success 200 {object} dto.WalletBalanceResponse
// @Failure 400 {object} map[string]string "Invalid asOf timestamp"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 500 {object} map[string]string "Failed to project balance"
// @Router /wallets/{walletID}/balance [get]
func (h *walletHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("walletID")

	var asOf *time.Time
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf timestamp: " + err.Error()})
			return
		}
		asOf = &parsed
	}

	balance, err := h.walletService.BalanceOf(c.Request.Context(), walletID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		} else {
			logger.Error("Failed to project wallet balance", slog.String("error", err.Error()), slog.String("wallet_id", walletID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to project balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.WalletBalanceResponse{WalletID: walletID, Balance: balance, AsOf: asOf})
}
