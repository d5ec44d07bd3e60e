package cancelorder

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/minishop/order/internal/service/services/ordersvc"
	"github.com/minishop/order/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	Cancel(ctx context.Context, id int64) error
}

// CancelOrder handles the cancel order request. Only pending orders can be
// cancelled; a missing or non-pending order yields the same client error.
func CancelOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order id")

		return
	}

	if err := service.Cancel(r.Context(), id); err != nil {
		if errors.Is(err, ordersvc.ErrNotFound) || errors.Is(err, ordersvc.ErrNotCancellable) {
			response.Error(w, http.StatusBadRequest, "Cannot cancel order. Order may not be pending or not found.")

			return
		}

		response.Error(w, http.StatusInternalServerError, "Server error")
		slog.Error("Error cancelling order", "orderId", id, "error", err)

		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Order cancelled successfully"})
}
