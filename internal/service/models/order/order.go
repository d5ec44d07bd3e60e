package order

import (
	"time"

	"github.com/minishop/order/internal/service/models/orderitem"
)

// Order is the aggregate root: one header row plus its owned line items.
type Order struct {
	ID              int64                 `json:"id"`
	OrderCode       string                `json:"orderCode"`
	UserID          int64                 `json:"userId"`
	Status          Status                `json:"status"`
	TotalAmount     float64               `json:"totalAmount"`
	ShippingFee     float64               `json:"shippingFee"`
	DiscountAmount  float64               `json:"discountAmount"`
	PaymentMethod   string                `json:"paymentMethod"`
	ShippingAddress string                `json:"shippingAddress"`
	CouponCode      string                `json:"couponCode,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	Items           []orderitem.OrderItem `json:"items"`
}

// Summary is the header-only projection returned by the privileged listing,
// joined with the owning user's identity fields.
type Summary struct {
	ID              int64     `json:"id"`
	OrderCode       string    `json:"orderCode"`
	UserID          int64     `json:"userId"`
	Status          Status    `json:"status"`
	TotalAmount     float64   `json:"totalAmount"`
	ShippingFee     float64   `json:"shippingFee"`
	DiscountAmount  float64   `json:"discountAmount"`
	PaymentMethod   string    `json:"paymentMethod"`
	ShippingAddress string    `json:"shippingAddress"`
	CouponCode      string    `json:"couponCode,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UserEmail       string    `json:"email"`
	UserName        string    `json:"userName"`
}

// PaymentMethodCOD is the default payment method when the request omits one.
const PaymentMethodCOD = "cod"
