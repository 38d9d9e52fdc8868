package httpserver

import (
	"net/http"

	"gardenshop/internal/domain"
	cartsvc "gardenshop/internal/service/cart"
	"github.com/gin-gonic/gin"
)

type cartResponse struct {
	LineItems []domain.CartLine `json:"lineItems"`
	Total     int64             `json:"total"`
	Count     int               `json:"count"`
}

func toCartResponse(lines []domain.CartLine) cartResponse {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return cartResponse{
		LineItems: lines,
		Total:     domain.CartTotal(lines),
		Count:     domain.CartCount(lines),
	}
}

func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		lines, err := svc.Get(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(lines))
	}
}

func addCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cartsvc.AddInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		user := currentUser(c)
		lines, err := svc.Add(c.Request.Context(), user.ID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(lines))
	}
}

type updateQuantityRequest struct {
	ProductID string `json:"productId"`
	IsCombo   bool   `json:"isCombo"`
	Quantity  int    `json:"quantity"`
}

func updateCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in updateQuantityRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if in.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		user := currentUser(c)
		lines, err := svc.UpdateQuantity(c.Request.Context(), user.ID, in.ProductID, in.IsCombo, in.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(lines))
	}
}

func removeCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		isCombo := c.Query("combo") == "true"
		lines, err := svc.Remove(c.Request.Context(), user.ID, c.Param("productId"), isCombo)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(lines))
	}
}

func popupStateHandler(svc PopupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		c.JSON(http.StatusOK, svc.State(user.ID))
	}
}

func hidePopupHandler(svc PopupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		svc.Hide(user.ID)
		c.Status(http.StatusNoContent)
	}
}
