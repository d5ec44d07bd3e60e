package iorderrepo

import (
	"context"

	"github.com/minishop/order/internal/service/models/order"
)

// IOrderRepository is an interface for the order postgres repository.
type IOrderRepository interface {
	Insert(ctx context.Context, o order.Order) (*order.Order, error)
	GetByID(ctx context.Context, id int64) (*order.Order, error)
	GetByCode(ctx context.Context, code string) (*order.Order, error)
	QueryByUserID(ctx context.Context, userID int64) ([]order.Order, error)
	List(ctx context.Context, filter *order.ListOrdersModel) ([]order.Summary, error)
	UpdateStatus(ctx context.Context, id int64, status order.Status) (int64, error)
	CancelIfPending(ctx context.Context, id int64) (int64, error)
}
