package http

import (
	"net/http"

	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	wallet WalletService
	logger logging.Logger
}

func NewWalletHandler(wallet WalletService, logger logging.Logger) *WalletHandler {
	return &WalletHandler{
		wallet: wallet,
		logger: logger,
	}
}

func (h *WalletHandler) GetProfile(c *gin.Context) {
	profile, err := h.wallet.GetProfile(c.Request.Context(), userID(c))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, walletResponse{
		UserID:  profile.UserID,
		Balance: profile.Balance,
		Orders:  toOrderResponses(profile.Orders),
	})
}

func (h *WalletHandler) OrderHistory(c *gin.Context) {
	orders, err := h.wallet.OrderHistory(c.Request.Context(), userID(c))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": toOrderResponses(orders)})
}
