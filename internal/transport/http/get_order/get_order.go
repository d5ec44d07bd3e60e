package getorder

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/minishop/order/internal/service/models/order"
	"github.com/minishop/order/internal/service/services/ordersvc"
	"github.com/minishop/order/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	GetByID(ctx context.Context, id int64) (*order.Order, error)
}

// GetOrder handles the get order by id request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order id")

		return
	}

	o, err := service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ordersvc.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "Order not found")

			return
		}

		response.Error(w, http.StatusInternalServerError, "Server error")
		slog.Error("Error getting order", "orderId", id, "error", err)

		return
	}

	response.JSON(w, http.StatusOK, o)
}
