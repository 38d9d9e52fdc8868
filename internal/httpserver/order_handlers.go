package httpserver

import (
	"net/http"

	"gardenshop/internal/order"
	"github.com/gin-gonic/gin"
)

func listOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		orders, err := svc.List(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		views := make([]order.View, 0, len(orders))
		for _, o := range orders {
			views = append(views, order.BuildView(o))
		}
		c.JSON(http.StatusOK, gin.H{"orders": views})
	}
}

func getOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		o, err := svc.Get(c.Request.Context(), user.ID, c.Param("orderId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order.BuildView(*o))
	}
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

func cancelOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cancelOrderRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		user := currentUser(c)
		o, err := svc.RequestCancellation(c.Request.Context(), user.ID, c.Param("orderId"), in.Reason)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order.BuildView(*o))
	}
}
