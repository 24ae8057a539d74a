package outbox

import (
	"context"
	"time"

	"go.uber.org/zap"

	"shophub-api/internal/messaging/kafka/producer"
)

// Processor polls pending outbox rows and hands them to the publisher.
// Publish failures mark the row FAILED and move on; the row is retried by
// an operator, not by this loop.
type Processor struct {
	repo      Repository
	publisher producer.Publisher
	interval  time.Duration
	batchSize int32
	logger    *zap.Logger
}

func NewProcessor(repo Repository, publisher producer.Publisher, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		repo:      repo,
		publisher: publisher,
		interval:  5 * time.Second,
		batchSize: 10,
		logger:    logger,
	}
}

func (p *Processor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("outbox processor started", zap.Duration("interval", p.interval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.processPending(ctx); err != nil {
				p.logger.Error("outbox batch failed", zap.Error(err))
			}
		}
	}
}

func (p *Processor) processPending(ctx context.Context) error {
	events, err := p.repo.ListPending(ctx, p.batchSize)
	if err != nil {
		return err
	}

	for _, event := range events {
		if err := p.publisher.Publish(ctx, producer.Message{
			Key:           event.AggregateID,
			EventType:     event.EventType,
			AggregateType: event.AggregateType,
			Payload:       event.Payload,
		}); err != nil {
			p.logger.Error("publish failed",
				zap.String("event_id", event.ID.String()),
				zap.Error(err))
			_ = p.repo.MarkFailed(ctx, event.ID)
			continue
		}

		if err := p.repo.MarkSent(ctx, event.ID); err != nil {
			p.logger.Error("mark sent failed",
				zap.String("event_id", event.ID.String()),
				zap.Error(err))
		}
	}

	return nil
}
