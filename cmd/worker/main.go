package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"shophub-api/internal/app"
	"shophub-api/internal/config"
	"shophub-api/internal/messaging/kafka/producer"
	"shophub-api/internal/outbox"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := app.ConnectDBWithRetry(cfg.DBURL, 5)
	if err != nil {
		logger.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()

	writer, err := app.ConnectKafkaWithRetry(cfg.KafkaBroker, 5)
	if err != nil {
		logger.Fatal("kafka unavailable", zap.Error(err))
	}
	defer writer.Close()

	processor := outbox.NewProcessor(
		outbox.NewRepository(db),
		producer.NewKafkaPublisher(writer),
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go processor.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()
}
