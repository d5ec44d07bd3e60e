package updatestatus

import (
	"context"
	"encoding/json"
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
	UpdateStatus(ctx context.Context, id int64, status string) error
}

// updateStatusRequest represents an update order status request.
type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles the update order status request.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order id")

		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		response.Error(w, http.StatusBadRequest, "Status is required")

		return
	}

	if err := service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case ordersvc.IsValidation(err):
			response.Error(w, http.StatusBadRequest, "Invalid status")
		case errors.Is(err, ordersvc.ErrNotFound):
			response.Error(w, http.StatusNotFound, "Order not found")
		default:
			response.Error(w, http.StatusInternalServerError, "Server error")
			slog.Error("Error updating order status", "orderId", id, "error", err)
		}

		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Order status updated successfully"})
}
