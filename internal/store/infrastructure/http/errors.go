package http

import (
	"net/http"

	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
	"github.com/gin-gonic/gin"
)

func statusOf(reason domain.RejectionReason) int {
	switch reason {
	case domain.ReasonItemNotFound, domain.ReasonCategoryNotFound:
		return http.StatusNotFound
	case domain.ReasonOutOfStock, domain.ReasonCartChanged:
		return http.StatusConflict
	case domain.ReasonInsufficientFunds:
		return http.StatusPaymentRequired
	case domain.ReasonInvalidCoupon, domain.ReasonCouponExpired, domain.ReasonEmptyCart, domain.ReasonInvalidArguments:
		return http.StatusBadRequest
	default:
		return http.StatusServiceUnavailable
	}
}

func handleError(c *gin.Context, logger logging.Logger, err error) {
	rejection := domain.RejectionOf(err)
	if rejection.Reason == domain.ReasonStoreUnavailable {
		logger.Error("request failed", "path", c.FullPath(), "error", err)
	}

	c.JSON(statusOf(rejection.Reason), gin.H{
		"errors":    rejection.Message,
		"reason":    rejection.Reason,
		"retryable": rejection.Retryable,
	})
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body"})
}
