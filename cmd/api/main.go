package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"gardenshop/internal/config"
	"gardenshop/internal/db"
	"gardenshop/internal/gateway"
	"gardenshop/internal/httpserver"
	"gardenshop/internal/identity"
	"gardenshop/internal/order"
	cartrepo "gardenshop/internal/repository/cart"
	cartsvc "gardenshop/internal/service/cart"
	checkoutsvc "gardenshop/internal/service/checkout"
	"gardenshop/internal/service/popup"
	"gardenshop/internal/shopapi"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var (
		dbpool   *pgxpool.Pool
		cartRepo cartrepo.Repository
	)
	switch cfg.CartStore {
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DBConnString, int32(cfg.DBMaxConns))
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()
		dbpool = pool
		cartRepo = cartrepo.NewPostgres(pool)
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		defer client.Close()
		cartRepo = cartrepo.NewRedis(client)
	case "memory":
		logger.Printf("using in-memory cart store, carts will not survive restarts")
		cartRepo = cartrepo.NewMemory()
	default:
		logger.Fatalf("unknown CART_STORE %q", cfg.CartStore)
	}

	apiClient := shopapi.New(cfg.ShopAPIURL, shopapi.ContextTokens{})
	resolver := identity.NewHTTPResolver(cfg.ShopAPIURL)

	bridge := gateway.New(gateway.Config{
		Key:       cfg.GatewayKey,
		Currency:  cfg.GatewayCurrency,
		StoreName: cfg.StoreName,
		StoreImg:  cfg.StoreImage,
		Theme:     cfg.GatewayTheme,
	}, logger)

	popupSvc := popup.New(cfg.PopupDelay)
	defer popupSvc.Close()

	cartService := cartsvc.New(cartRepo, popupSvc)
	checkoutService := checkoutsvc.New(cartService, apiClient, bridge, checkoutsvc.Pricing{
		ShippingPrice:     cfg.ShippingPrice,
		FreeShippingAbove: cfg.FreeShippingAbove,
	}, logger)
	checkoutService.SetSessionTTL(cfg.SessionTTL)
	orderService := order.New(apiClient)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Resolver:    resolver,
		CartSvc:     cartService,
		PopupSvc:    popupSvc,
		CheckoutSvc: checkoutService,
		OrderSvc:    orderService,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
