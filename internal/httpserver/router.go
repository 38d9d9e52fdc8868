package httpserver

import (
	"context"
	"errors"
	"log"

	"gardenshop/internal/domain"
	"gardenshop/internal/gateway"
	"gardenshop/internal/identity"
	cartsvc "gardenshop/internal/service/cart"
	checkoutsvc "gardenshop/internal/service/checkout"
	"gardenshop/internal/service/popup"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CartService is the slice of the cart service the HTTP layer needs.
type CartService interface {
	Get(ctx context.Context, userID string) ([]domain.CartLine, error)
	Add(ctx context.Context, userID string, in cartsvc.AddInput) ([]domain.CartLine, error)
	Remove(ctx context.Context, userID, productID string, isCombo bool) ([]domain.CartLine, error)
	UpdateQuantity(ctx context.Context, userID, productID string, isCombo bool, quantity int) ([]domain.CartLine, error)
}

// PopupService exposes popup state and manual dismissal. Showing happens
// inside the cart service on add.
type PopupService interface {
	State(userID string) popup.State
	Hide(userID string)
}

// CheckoutService drives submissions and settles online sessions.
type CheckoutService interface {
	Submit(ctx context.Context, userID string, in checkoutsvc.SubmitInput) (*checkoutsvc.SubmitResult, error)
	Complete(ctx context.Context, userID, sessionID string, success gateway.Success) (*domain.Order, error)
	Dismiss(ctx context.Context, userID, sessionID string) error
}

// OrderService reads orders and raises cancellation requests.
type OrderService interface {
	Get(ctx context.Context, userID, orderID string) (*domain.Order, error)
	List(ctx context.Context, userID string) ([]domain.Order, error)
	RequestCancellation(ctx context.Context, userID, orderID, reason string) (*domain.Order, error)
}

// Deps carries everything the router wires.
type Deps struct {
	Resolver    identity.Resolver
	CartSvc     CartService
	PopupSvc    PopupService
	CheckoutSvc CheckoutService
	OrderSvc    OrderService
	CORSOrigins []string
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Resolver == nil {
		return nil, errors.New("identity resolver required")
	}
	if deps.CartSvc == nil || deps.PopupSvc == nil || deps.CheckoutSvc == nil || deps.OrderSvc == nil {
		return nil, errors.New("all services required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = deps.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	authed := router.Group("/", authMiddleware(deps.Resolver))
	{
		authed.GET("/cart", getCartHandler(deps.CartSvc))
		authed.POST("/cart/items", addCartItemHandler(deps.CartSvc))
		authed.PATCH("/cart/items", updateCartItemHandler(deps.CartSvc))
		authed.DELETE("/cart/items/:productId", removeCartItemHandler(deps.CartSvc))
		authed.GET("/cart/popup", popupStateHandler(deps.PopupSvc))
		authed.DELETE("/cart/popup", hidePopupHandler(deps.PopupSvc))

		authed.POST("/checkout", submitCheckoutHandler(deps.CheckoutSvc))
		authed.POST("/checkout/:sessionId/complete", completeCheckoutHandler(deps.CheckoutSvc))
		authed.POST("/checkout/:sessionId/dismiss", dismissCheckoutHandler(logger, deps.CheckoutSvc))

		authed.GET("/orders", listOrdersHandler(deps.OrderSvc))
		authed.GET("/orders/:orderId", getOrderHandler(deps.OrderSvc))
		authed.POST("/orders/:orderId/cancel", cancelOrderHandler(deps.OrderSvc))
	}

	return router, nil
}
