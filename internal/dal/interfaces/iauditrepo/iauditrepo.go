package iauditrepo

import (
	"context"

	"github.com/minishop/order/internal/service/models/order"
)

// IAuditRepository publishes order lifecycle events for downstream consumers.
type IAuditRepository interface {
	LogOrderCreated(ctx context.Context, o order.Order) error
}
