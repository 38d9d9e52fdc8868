package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"gardenshop/internal/config"
	"gardenshop/internal/db"
	cartrepo "gardenshop/internal/repository/cart"
	"gardenshop/internal/seed"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, int32(cfg.DBMaxConns))
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := seed.Apply(ctx, cartrepo.NewPostgres(pool)); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seeded demo cart for %s", seed.DemoUserID)
}
