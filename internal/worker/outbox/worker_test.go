package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/minishop/order/internal/service/models/outbox"
	"github.com/spf13/viper"
)

type retryCall struct {
	id          int64
	retryCount  int
	lastError   string
	nextRetryAt time.Time
}

type fakeOutboxRepo struct {
	mu      sync.Mutex
	pending []outbox.Message
	retries []retryCall
	deleted []int64
}

func (r *fakeOutboxRepo) Insert(_ context.Context, _ outbox.Message) error {
	return nil
}

func (r *fakeOutboxRepo) GetPendingMessages(_ context.Context, limit int) ([]outbox.Message, error) {
	if len(r.pending) > limit {
		return r.pending[:limit], nil
	}

	return r.pending, nil
}

func (r *fakeOutboxRepo) UpdateRetry(_ context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retries = append(r.retries, retryCall{id, retryCount, lastError, nextRetryAt})

	return nil
}

func (r *fakeOutboxRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)

	return nil
}

type fakeBroker struct {
	mu          sync.Mutex
	published   []string
	failKeys    map[string]error
	inFlight    int
	maxInFlight int
}

func (b *fakeBroker) Publish(_ string, routingKey, _ string, _ []byte) error {
	b.mu.Lock()
	b.inFlight++
	if b.inFlight > b.maxInFlight {
		b.maxInFlight = b.inFlight
	}
	b.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.inFlight--

	if err, ok := b.failKeys[routingKey]; ok {
		return err
	}
	b.published = append(b.published, routingKey)

	return nil
}

func pendingMessage(id int64, routingKey string, retryCount int) outbox.Message {
	return outbox.Message{
		ID:          id,
		QueueName:   routingKey,
		RoutingKey:  routingKey,
		Payload:     []byte(`{}`),
		ContentType: "application/json",
		RetryCount:  retryCount,
		MaxRetries:  5,
	}
}

func TestProcessMessages_PublishesAndDeletes(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []outbox.Message{
		pendingMessage(1, "minishop.order.created", 0),
		pendingMessage(2, "minishop.order.created", 0),
	}}
	broker := &fakeBroker{}

	w := NewWorker(repo, broker)
	w.processMessages(context.Background())

	if len(broker.published) != 2 {
		t.Fatalf("expected 2 published messages, got %d", len(broker.published))
	}
	if len(repo.deleted) != 2 {
		t.Errorf("expected 2 deleted messages, got %d", len(repo.deleted))
	}
	if len(repo.retries) != 0 {
		t.Errorf("expected no retries, got %+v", repo.retries)
	}
}

func TestProcessMessages_RetryBackoffUsesConfiguredInterval(t *testing.T) {
	viper.Set("rabbitmq.outbox.retry_interval_seconds", 40)
	t.Cleanup(func() { viper.Set("rabbitmq.outbox.retry_interval_seconds", 0) })

	repo := &fakeOutboxRepo{pending: []outbox.Message{
		pendingMessage(7, "dead.queue", 1),
	}}
	broker := &fakeBroker{failKeys: map[string]error{
		"dead.queue": errors.New("channel closed"),
	}}

	w := NewWorker(repo, broker)
	w.processMessages(context.Background())

	if len(repo.deleted) != 0 {
		t.Errorf("expected no deletes, got %v", repo.deleted)
	}
	if len(repo.retries) != 1 {
		t.Fatalf("expected 1 retry update, got %d", len(repo.retries))
	}

	retry := repo.retries[0]
	if retry.id != 7 || retry.retryCount != 2 {
		t.Errorf("unexpected retry bookkeeping: %+v", retry)
	}
	if retry.lastError != "channel closed" {
		t.Errorf("expected publish error recorded, got %q", retry.lastError)
	}

	// Second retry of a 40s interval backs off 2^2 * 40s = 160s.
	want := time.Now().Add(160 * time.Second)
	if diff := retry.nextRetryAt.Sub(want); diff < -5*time.Second || diff > 5*time.Second {
		t.Errorf("expected next retry around %v, got %v", want, retry.nextRetryAt)
	}
}

func TestProcessMessages_BoundedParallelism(t *testing.T) {
	var pending []outbox.Message
	for i := int64(1); i <= 12; i++ {
		pending = append(pending, pendingMessage(i, "minishop.order.created", 0))
	}
	repo := &fakeOutboxRepo{pending: pending}
	broker := &fakeBroker{}

	w := NewWorker(repo, broker)
	w.processMessages(context.Background())

	if len(broker.published) != 12 {
		t.Fatalf("expected all 12 messages published, got %d", len(broker.published))
	}
	if broker.maxInFlight > maxPublishConcurrency {
		t.Errorf("expected at most %d concurrent publishes, observed %d",
			maxPublishConcurrency, broker.maxInFlight)
	}
}
