package httpserver

import (
	"log"
	"net/http"

	"gardenshop/internal/gateway"
	"gardenshop/internal/order"
	checkoutsvc "gardenshop/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

func submitCheckoutHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutsvc.SubmitInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		user := currentUser(c)
		if in.Prefill == (gateway.Prefill{}) {
			in.Prefill = gateway.Prefill{Name: user.Name, Email: user.Email, Contact: user.Phone}
		}

		res, err := svc.Submit(c.Request.Context(), user.ID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		if res.Order != nil {
			c.JSON(http.StatusCreated, gin.H{
				"success": true,
				"order":   order.BuildView(*res.Order),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"payment": res.Payment})
	}
}

func completeCheckoutHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in gateway.Success
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		user := currentUser(c)
		placed, err := svc.Complete(c.Request.Context(), user.ID, c.Param("sessionId"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"order":   order.BuildView(*placed),
		})
	}
}

func dismissCheckoutHandler(logger *log.Logger, svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// The body is optional: a bare dismissal sends nothing, a widget
		// failure sends the tagged result with its reason.
		var result gateway.Result
		_ = c.ShouldBindJSON(&result)
		user := currentUser(c)
		if result.Kind == gateway.ResultFailure && result.FailureReason != "" {
			logger.Printf("gateway failure for session %s: %s", c.Param("sessionId"), result.FailureReason)
		}
		if err := svc.Dismiss(c.Request.Context(), user.ID, c.Param("sessionId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":   checkoutsvc.MsgPaymentCancelled,
			"retryable": true,
		})
	}
}
