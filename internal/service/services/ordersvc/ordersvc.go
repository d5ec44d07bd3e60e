package ordersvc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/minishop/order/internal/dal/interfaces/iauditrepo"
	"github.com/minishop/order/internal/dal/interfaces/iorderitemrepo"
	"github.com/minishop/order/internal/dal/interfaces/iorderrepo"
	"github.com/minishop/order/internal/dal/postgres"
	"github.com/minishop/order/internal/dal/uow"
	"github.com/minishop/order/internal/service/models/order"
	"github.com/minishop/order/internal/service/models/orderitem"
	"github.com/spf13/viper"
)

// OrderService is a service for managing orders.
type OrderService struct {
	pgClient   *postgres.Client
	auditRepo  iauditrepo.IAuditRepository
	uowFactory func() UnitOfWork
	codePrefix string
}

// UnitOfWork scopes the order repositories to one transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
}

func (s *OrderService) newUOW() UnitOfWork {
	if s.uowFactory != nil {
		return s.uowFactory()
	}

	return uow.NewUnitOfWork(s.pgClient)
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		codePrefix: viper.GetString("order.code_prefix"),
	}
	if s.codePrefix == "" {
		s.codePrefix = "MM"
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithAuditRepository sets the order event publisher for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuditRepository(auditRepo iauditrepo.IAuditRepository) option {
	return func(s *OrderService) {
		s.auditRepo = auditRepo
	}
}

// WithUnitOfWorkFactory overrides the transaction factory.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() UnitOfWork) option {
	return func(s *OrderService) {
		s.uowFactory = factory
	}
}

// Create validates the request, generates an order code and persists the
// header together with all items in one transaction. The returned aggregate
// is re-read through the same path as GetByID.
func (s *OrderService) Create(ctx context.Context, o order.Order) (*order.Order, error) {
	if err := validateCreate(&o); err != nil {
		return nil, err
	}

	if o.PaymentMethod == "" {
		o.PaymentMethod = order.PaymentMethodCOD
	}

	created, err := s.insertAggregate(ctx, o)
	if isOrderCodeCollision(err) {
		// Timestamp+random codes can collide under concurrency; the unique
		// constraint surfaces it and one regenerated attempt resolves it.
		slog.Warn("order code collision, retrying with a new code", "userId", o.UserID)
		created, err = s.insertAggregate(ctx, o)
	}
	if err != nil {
		return nil, err
	}

	agg, err := s.GetByID(ctx, created.ID)
	if err != nil {
		return nil, err
	}

	if s.auditRepo != nil {
		if err := s.auditRepo.LogOrderCreated(ctx, *agg); err != nil {
			slog.Error("Failed to record order created event", "orderId", agg.ID, "error", err)
		}
	}

	return agg, nil
}

func (s *OrderService) insertAggregate(ctx context.Context, o order.Order) (*order.Order, error) {
	o.OrderCode = order.NewOrderCode(s.codePrefix)

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}

	inserted, err := work.OrderRepository().Insert(ctx, o)
	if err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	items := make([]orderitem.OrderItem, len(o.Items))
	copy(items, o.Items)
	for i := range items {
		items[i].OrderID = inserted.ID
	}

	insertedItems, err := work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	inserted.Items = insertedItems

	return inserted, nil
}

func validateCreate(o *order.Order) error {
	if o.UserID <= 0 {
		return NewValidationError("userId is required")
	}
	if len(o.Items) == 0 {
		return NewValidationError("order must contain at least one item")
	}
	if o.TotalAmount == 0 {
		return NewValidationError("totalAmount is required")
	}
	if o.TotalAmount < 0 || o.ShippingFee < 0 || o.DiscountAmount < 0 {
		return NewValidationError("amounts must be non-negative")
	}

	for _, item := range o.Items {
		if item.ProductID <= 0 {
			return NewValidationError("item productId is required")
		}
		if item.Quantity <= 0 {
			return NewValidationError("item quantity must be positive")
		}
		if item.UnitPrice < 0 || item.TotalPrice < 0 {
			return NewValidationError("item prices must be non-negative")
		}
	}

	return nil
}

func isOrderCodeCollision(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" &&
		pgErr.ConstraintName == "orders_order_code_key"
}

// GetByID reconstructs one aggregate: header plus items joined with product
// details, folded into a single result.
func (s *OrderService) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	items, err := work.OrderItemRepository().QueryByOrderIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	o.Items = items

	return o, nil
}

// GetByUserID reconstructs all aggregates for one user, newest first. Items
// for every order are fetched in one batched query and folded per order.
func (s *OrderService) GetByUserID(ctx context.Context, userID int64) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().QueryByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderIDs := make([]int64, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}

	items, err := work.OrderItemRepository().QueryByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].Items = append(orders[i].Items, item)
			}
		}
	}

	return orders, nil
}

// GetByCode retrieves the order header by its human-facing code, without
// item expansion.
func (s *OrderService) GetByCode(ctx context.Context, code string) (*order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return o, nil
}

// List retrieves header-only summaries for the privileged listing. An absent
// filter field means no constraint on that dimension.
func (s *OrderService) List(ctx context.Context, filter *order.ListOrdersModel) ([]order.Summary, error) {
	work := s.newUOW()

	summaries, err := work.OrderRepository().List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []order.Summary{}
	}

	return summaries, nil
}

// UpdateStatus applies an unconditional status transition. Only the status
// value itself is validated; the transition graph is deliberately permissive.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) error {
	parsed, err := order.ParseStatus(status)
	if err != nil {
		return NewValidationError("invalid status")
	}

	work := s.newUOW()

	rows, err := work.OrderRepository().UpdateStatus(ctx, id, parsed)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Cancel transitions a pending order to cancelled. The guard runs as one
// conditional update; a follow-up read disambiguates a missing order from a
// non-pending one.
func (s *OrderService) Cancel(ctx context.Context, id int64) error {
	work := s.newUOW()

	rows, err := work.OrderRepository().CancelIfPending(ctx, id)
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	if _, err := work.OrderRepository().GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}

		return err
	}

	return ErrNotCancellable
}
