package orderbycode

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/minishop/order/internal/service/models/order"
	"github.com/minishop/order/internal/service/services/ordersvc"
	"github.com/minishop/order/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	GetByCode(ctx context.Context, code string) (*order.Order, error)
}

// OrderByCode handles the get order by code request. Returns the header
// only, without item expansion.
func OrderByCode(w http.ResponseWriter, r *http.Request, service service) {
	code := chi.URLParam(r, "code")

	o, err := service.GetByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, ordersvc.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "Order not found")

			return
		}

		response.Error(w, http.StatusInternalServerError, "Server error")
		slog.Error("Error getting order by code", "orderCode", code, "error", err)

		return
	}

	response.JSON(w, http.StatusOK, o)
}
