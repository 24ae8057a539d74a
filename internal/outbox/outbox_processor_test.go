package outbox

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"shophub-api/internal/messaging/kafka/producer"
	"shophub-api/internal/shared/database"
)

type fakeRepo struct {
	pending []Event
	sent    []uuid.UUID
	failed  []uuid.UUID
}

func (f *fakeRepo) WithTx(tx database.DBTX) Repository { return f }

func (f *fakeRepo) Enqueue(ctx context.Context, e Event) error {
	f.pending = append(f.pending, e)
	return nil
}

func (f *fakeRepo) ListPending(ctx context.Context, limit int32) ([]Event, error) {
	if int32(len(f.pending)) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeRepo) MarkFailed(ctx context.Context, id uuid.UUID) error {
	f.failed = append(f.failed, id)
	return nil
}

type fakePublisher struct {
	published []producer.Message
	failOn    string
}

func (f *fakePublisher) Publish(ctx context.Context, msg producer.Message) error {
	if f.failOn != "" && msg.Key == f.failOn {
		return errors.New("broker unavailable")
	}
	f.published = append(f.published, msg)
	return nil
}

func TestProcessPending_PublishesAndMarksSent(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepo{pending: []Event{{
		ID:            id,
		AggregateType: "cart",
		AggregateID:   "user_42",
		EventType:     "CART_UPDATED",
		Payload:       []byte(`{"user_id":"user_42","count":2}`),
		Status:        StatusPending,
	}}}
	pub := &fakePublisher{}

	p := NewProcessor(repo, pub, nil)
	err := p.processPending(context.Background())
	assert.NoError(t, err)

	assert.Len(t, pub.published, 1)
	assert.Equal(t, "user_42", pub.published[0].Key)
	assert.Equal(t, "CART_UPDATED", pub.published[0].EventType)
	assert.Equal(t, []uuid.UUID{id}, repo.sent)
	assert.Empty(t, repo.failed)
}

func TestProcessPending_FailureMarksFailedAndContinues(t *testing.T) {
	bad := uuid.New()
	good := uuid.New()
	repo := &fakeRepo{pending: []Event{
		{ID: bad, AggregateID: "user_bad", EventType: "CART_UPDATED"},
		{ID: good, AggregateID: "user_good", EventType: "CART_CLEARED"},
	}}
	pub := &fakePublisher{failOn: "user_bad"}

	p := NewProcessor(repo, pub, nil)
	err := p.processPending(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, []uuid.UUID{bad}, repo.failed)
	assert.Equal(t, []uuid.UUID{good}, repo.sent)
	assert.Len(t, pub.published, 1)
}

func TestProcessPending_RespectsBatchSize(t *testing.T) {
	repo := &fakeRepo{}
	for i := 0; i < 15; i++ {
		repo.pending = append(repo.pending, Event{ID: uuid.New(), AggregateID: "u", EventType: "CART_UPDATED"})
	}
	pub := &fakePublisher{}

	p := NewProcessor(repo, pub, nil)
	err := p.processPending(context.Background())
	assert.NoError(t, err)
	assert.Len(t, pub.published, 10)
}
