package consumer

import (
	"context"
	"encoding/json"

	"shophub-api/internal/cart"
)

func handleCartEvent(ctx context.Context, eventType string, payload []byte, cache *cart.CountCache) error {
	var data cart.CartEventPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		return err
	}

	if eventType == cart.EventCartCleared {
		cache.Invalidate(ctx, data.UserID)
		return nil
	}

	cache.Set(ctx, data.UserID, int64(data.Count))
	return nil
}
