package consumer

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"shophub-api/internal/cart"
)

// ConsumeMessages reads cart events and keeps the badge-count projection
// in sync. Unknown event types are committed and skipped.
func ConsumeMessages(ctx context.Context, reader *kafka.Reader, cache *cart.CountCache, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("fetch failed", zap.Error(err))
			continue
		}

		eventType := getHeader(msg.Headers, "event_type")

		switch eventType {
		case cart.EventCartUpdated, cart.EventCartCleared:
			if err := handleCartEvent(ctx, eventType, msg.Value, cache); err != nil {
				logger.Error("handle failed",
					zap.String("event_type", eventType),
					zap.Error(err))
				continue
			}
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error("commit failed", zap.Error(err))
		}
	}
}

func getHeader(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
