package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shophub-api/internal/cart"
	"shophub-api/internal/config"
	"shophub-api/internal/outbox"
	"shophub-api/internal/pricing"
	"shophub-api/internal/product"
)

func registerModules(router *gin.Engine, cfg config.Config, db *sql.DB, rdb *redis.Client, logger *zap.Logger) {
	// --- Repositories ---
	productRepo := product.NewRepository(db)
	cartRepo := cart.NewRepository(db)
	outboxRepo := outbox.NewRepository(db)

	// --- Services ---
	productService := product.NewService(productRepo)
	pricer := pricing.NewCalculator(pricing.Config{
		MinimumForDiscount: cfg.MinimumForDiscount,
		DiscountAmount:     cfg.DiscountAmount,
	})
	cartService := cart.NewService(cart.Deps{
		DB:         db,
		Repo:       cartRepo,
		Products:   productService,
		OutboxRepo: outboxRepo,
		Cache:      cart.NewCountCache(rdb),
		Pricer:     pricer,
		Logger:     logger,
	})

	// --- Handlers ---
	productHandler := product.NewHandler(productService)
	cartHandler := cart.NewHandler(cartService)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		product.RegisterRoutes(api, productHandler, cfg.JWTSecret)
		cart.RegisterRoutes(api, cartHandler)
	}
}
