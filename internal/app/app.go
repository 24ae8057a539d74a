package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shophub-api/internal/config"
	"shophub-api/internal/middleware"
)

func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) error {
	db, err := ConnectDBWithRetry(cfg.DBURL, 5)
	if err != nil {
		return err
	}

	rdb, err := ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		// The count projection degrades to store reads without Redis.
		logger.Warn("redis unavailable, count projection disabled", zap.Error(err))
		rdb = nil
	}

	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))

	registerModules(router, cfg, db, rdb, logger)

	return nil
}
