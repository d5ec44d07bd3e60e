package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/minishop/order/internal/dal/interfaces/ioutboxrepo"
	"github.com/minishop/order/internal/dal/rabbitmq"
	"github.com/minishop/order/internal/service/models/order"
	"github.com/minishop/order/internal/service/models/outbox"
	"github.com/streadway/amqp"
)

const orderCreatedQueue = "minishop.order.created"

// AuditRabbitMQRepository publishes order-created events. A failed publish is
// parked in the outbox table and retried by the outbox worker.
type AuditRabbitMQRepository struct {
	client     *rabbitmq.Client
	outboxRepo ioutboxrepo.IOutboxRepository
	queue      amqp.Queue
}

func NewAuditRabbitMQRepository(
	client *rabbitmq.Client,
	outboxRepo ioutboxrepo.IOutboxRepository,
) *AuditRabbitMQRepository {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       orderCreatedQueue,
		Durable:    true,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &AuditRabbitMQRepository{
		client:     client,
		outboxRepo: outboxRepo,
		queue:      queue,
	}
}

// LogOrderCreated publishes one order-created event. The order is already
// committed at this point; on publish failure the event is stored in the
// outbox instead of failing the request.
func (r *AuditRabbitMQRepository) LogOrderCreated(ctx context.Context, o order.Order) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return err
	}

	publishErr := r.client.Publish("", r.queue.Name, "application/json", payload)
	if publishErr == nil {
		return nil
	}

	now := time.Now()

	return r.outboxRepo.Insert(ctx, outbox.Message{
		QueueName:   r.queue.Name,
		RoutingKey:  r.queue.Name,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  5,
		LastError:   publishErr.Error(),
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	})
}
