package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/minishop/order/internal/service/models/order"
	"github.com/minishop/order/internal/service/models/orderitem"
	"github.com/minishop/order/internal/service/services/ordersvc"
	"github.com/minishop/order/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	Create(ctx context.Context, o order.Order) (*order.Order, error)
}

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	ProductID  int64   `json:"productId"  validate:"gt=0"`
	Quantity   int     `json:"quantity"   validate:"gt=0"`
	UnitPrice  float64 `json:"unitPrice"  validate:"gte=0"`
	TotalPrice float64 `json:"totalPrice" validate:"gte=0"`
}

// createOrderRequest represents a create order request. Unit and total
// prices are taken from the caller as-is (price-at-add-to-cart).
type createOrderRequest struct {
	UserID          int64                      `json:"userId"         validate:"gt=0"`
	Items           []itemInCreateOrderRequest `json:"items"          validate:"required,min=1,dive"`
	TotalAmount     float64                    `json:"totalAmount"    validate:"required,gte=0"`
	ShippingFee     float64                    `json:"shippingFee"    validate:"gte=0"`
	DiscountAmount  float64                    `json:"discountAmount" validate:"gte=0"`
	PaymentMethod   string                     `json:"paymentMethod"`
	ShippingAddress string                     `json:"shippingAddress"`
	CouponCode      string                     `json:"couponCode"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts createOrderRequest to order.Order.
func (r *createOrderRequest) toModel() order.Order {
	items := make([]orderitem.OrderItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = orderitem.OrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
	}

	return order.Order{
		UserID:          r.UserID,
		TotalAmount:     r.TotalAmount,
		ShippingFee:     r.ShippingFee,
		DiscountAmount:  r.DiscountAmount,
		PaymentMethod:   r.PaymentMethod,
		ShippingAddress: r.ShippingAddress,
		CouponCode:      r.CouponCode,
		Items:           items,
	}
}

// createOrderResponse is the response for a successfully created order.
type createOrderResponse struct {
	Message   string `json:"message"`
	OrderID   int64  `json:"orderId"`
	OrderCode string `json:"orderCode"`
}

// CreateOrder handles the create order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Missing required fields")
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		response.Error(w, http.StatusBadRequest, "Missing required fields")
		slog.Error("Error validating request body for create order", "error", err)

		return
	}

	created, err := service.Create(r.Context(), req.toModel())
	if err != nil {
		if ordersvc.IsValidation(err) {
			response.Error(w, http.StatusBadRequest, err.Error())

			return
		}

		response.Error(w, http.StatusInternalServerError, "Failed to create order")
		slog.Error("Error creating order", "error", err)

		return
	}

	response.JSON(w, http.StatusCreated, createOrderResponse{
		Message:   "Order created successfully",
		OrderID:   created.ID,
		OrderCode: created.OrderCode,
	})
}
