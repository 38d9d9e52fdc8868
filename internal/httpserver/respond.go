package httpserver

import (
	"errors"
	"net/http"

	"gardenshop/internal/domain"
	"gardenshop/internal/shopapi"
	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy onto HTTP. Validation failures are
// inline 400s; upstream trouble is a retryable 502 banner; verification
// failure is terminal and points at support.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
		return
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrGatewayNotReady):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":     "Payment gateway is still loading. Please wait a moment and try again.",
			"retryable": true,
		})
	case errors.Is(err, domain.ErrCheckoutInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "A checkout is already in progress."})
	case errors.Is(err, domain.ErrSessionSettled):
		c.JSON(http.StatusConflict, gin.H{"error": "This payment session is already settled."})
	case errors.Is(err, domain.ErrCancellationNotAllowed):
		c.JSON(http.StatusConflict, gin.H{"error": "This order can no longer be cancelled."})
	case errors.Is(err, domain.ErrVerificationFailed):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":   "We could not verify your payment. Please contact support with your order details.",
			"support": true,
		})
	case errors.Is(err, domain.ErrUnknownStatus):
		c.JSON(http.StatusBadGateway, gin.H{"error": "unexpected order data from shop"})
	default:
		var apiErr *shopapi.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Message, "retryable": true})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "Something went wrong talking to the shop. Please try again.",
			"retryable": true,
		})
	}
}
