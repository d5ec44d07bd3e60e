package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/minishop/order/internal/service/models/order"
	"github.com/minishop/order/internal/service/models/orderitem"
)

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id              int64     `db:"id"`
	OrderCode       string    `db:"order_code"`
	UserId          int64     `db:"user_id"`
	Status          string    `db:"status"`
	TotalAmount     float64   `db:"total_amount"`
	ShippingFee     float64   `db:"shipping_fee"`
	DiscountAmount  float64   `db:"discount_amount"`
	PaymentMethod   string    `db:"payment_method"`
	ShippingAddress string    `db:"shipping_address"`
	CouponCode      *string   `db:"coupon_code"`
	CreatedAt       time.Time `db:"created_at"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	couponCode := ""
	if o.CouponCode != nil {
		couponCode = *o.CouponCode
	}

	return &order.Order{
		ID:              o.Id,
		OrderCode:       o.OrderCode,
		UserID:          o.UserId,
		Status:          status,
		TotalAmount:     o.TotalAmount,
		ShippingFee:     o.ShippingFee,
		DiscountAmount:  o.DiscountAmount,
		PaymentMethod:   o.PaymentMethod,
		ShippingAddress: o.ShippingAddress,
		CouponCode:      couponCode,
		CreatedAt:       o.CreatedAt,
		Items:           []orderitem.OrderItem{}, // Populated separately
	}, nil
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var orderColumns = []string{
	"id",
	"order_code",
	"user_id",
	"status",
	"total_amount",
	"shipping_fee",
	"discount_amount",
	"payment_method",
	"shipping_address",
	"coupon_code",
	"created_at",
}

// Insert persists one order header row and returns it with the
// store-assigned id, status and creation timestamp.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	var couponCode *string
	if o.CouponCode != "" {
		couponCode = &o.CouponCode
	}

	sql, args, err := r.sb.
		Insert("orders").
		Columns(
			"order_code",
			"user_id",
			"total_amount",
			"shipping_fee",
			"discount_amount",
			"payment_method",
			"shipping_address",
			"coupon_code",
		).
		Values(
			o.OrderCode,
			o.UserID,
			o.TotalAmount,
			o.ShippingFee,
			o.DiscountAmount,
			o.PaymentMethod,
			o.ShippingAddress,
			couponCode,
		).
		Suffix("RETURNING id, status, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	var status string
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&o.ID, &status, &o.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	parsed, err := order.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	o.Status = parsed

	return &o, nil
}

// GetByID retrieves one order header row; pgx.ErrNoRows when absent.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

// GetByCode retrieves one order header row by its order code.
func (r *PostgresOrderRepository) GetByCode(ctx context.Context, code string) (*order.Order, error) {
	return r.getOne(ctx, sq.Eq{"order_code": code})
}

func (r *PostgresOrderRepository) getOne(ctx context.Context, pred sq.Eq) (*order.Order, error) {
	sql, args, err := r.sb.
		Select(orderColumns...).
		From("orders").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dal OrderDal
	err = r.conn.QueryRow(ctx, sql, args...).Scan(
		&dal.Id,
		&dal.OrderCode,
		&dal.UserId,
		&dal.Status,
		&dal.TotalAmount,
		&dal.ShippingFee,
		&dal.DiscountAmount,
		&dal.PaymentMethod,
		&dal.ShippingAddress,
		&dal.CouponCode,
		&dal.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return dal.ToModel()
}

// QueryByUserID retrieves all order header rows for one user, newest first.
func (r *PostgresOrderRepository) QueryByUserID(ctx context.Context, userID int64) ([]order.Order, error) {
	sql, args, err := r.sb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderCode,
			&dal.UserId,
			&dal.Status,
			&dal.TotalAmount,
			&dal.ShippingFee,
			&dal.DiscountAmount,
			&dal.PaymentMethod,
			&dal.ShippingAddress,
			&dal.CouponCode,
			&dal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// List retrieves header-only summaries joined with the owning user's identity
// fields, filtered by the conjunction of the present filter predicates.
func (r *PostgresOrderRepository) List(ctx context.Context, filter *order.ListOrdersModel) ([]order.Summary, error) {
	query := r.sb.
		Select(
			"o.id",
			"o.order_code",
			"o.user_id",
			"o.status",
			"o.total_amount",
			"o.shipping_fee",
			"o.discount_amount",
			"o.payment_method",
			"o.shipping_address",
			"o.coupon_code",
			"o.created_at",
			"COALESCE(u.email, '')",
			"COALESCE(u.name, '')",
		).
		From("orders o").
		LeftJoin("users u ON o.user_id = u.id").
		OrderBy("o.created_at DESC")

	if filter.Status != nil {
		query = query.Where(sq.Eq{"o.status": *filter.Status})
	}
	if filter.StartDate != nil {
		query = query.Where(sq.GtOrEq{"o.created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		query = query.Where(sq.LtOrEq{"o.created_at": *filter.EndDate})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var result []order.Summary
	for rows.Next() {
		var dal OrderDal
		var email, name string
		err := rows.Scan(
			&dal.Id,
			&dal.OrderCode,
			&dal.UserId,
			&dal.Status,
			&dal.TotalAmount,
			&dal.ShippingFee,
			&dal.DiscountAmount,
			&dal.PaymentMethod,
			&dal.ShippingAddress,
			&dal.CouponCode,
			&dal.CreatedAt,
			&email,
			&name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order summary: %w", err)
		}

		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}

		result = append(result, order.Summary{
			ID:              model.ID,
			OrderCode:       model.OrderCode,
			UserID:          model.UserID,
			Status:          model.Status,
			TotalAmount:     model.TotalAmount,
			ShippingFee:     model.ShippingFee,
			DiscountAmount:  model.DiscountAmount,
			PaymentMethod:   model.PaymentMethod,
			ShippingAddress: model.ShippingAddress,
			CouponCode:      model.CouponCode,
			CreatedAt:       model.CreatedAt,
			UserEmail:       email,
			UserName:        name,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatus sets the status unconditionally and returns rows affected.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id int64, status order.Status) (int64, error) {
	sql, args, err := r.sb.
		Update("orders").
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update order status: %w", err)
	}

	return tag.RowsAffected(), nil
}

// CancelIfPending collapses the cancel guard's check-then-act into one
// conditional update; zero rows affected is the conflict signal.
func (r *PostgresOrderRepository) CancelIfPending(ctx context.Context, id int64) (int64, error) {
	sql, args, err := r.sb.
		Update("orders").
		Set("status", order.StatusCancelled).
		Where(sq.Eq{"id": id, "status": order.StatusPending}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel order: %w", err)
	}

	return tag.RowsAffected(), nil
}
