package userorders

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/minishop/order/internal/service/models/order"
	"github.com/minishop/order/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	GetByUserID(ctx context.Context, userID int64) ([]order.Order, error)
}

// UserOrders handles the get orders by user request.
func UserOrders(w http.ResponseWriter, r *http.Request, service service) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user id")

		return
	}

	orders, err := service.GetByUserID(r.Context(), userID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Server error")
		slog.Error("Error getting user orders", "userId", userID, "error", err)

		return
	}

	response.JSON(w, http.StatusOK, orders)
}
