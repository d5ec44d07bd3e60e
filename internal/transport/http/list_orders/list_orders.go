package listorders

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/minishop/order/internal/service/models/order"
	"github.com/minishop/order/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	List(ctx context.Context, filter *order.ListOrdersModel) ([]order.Summary, error)
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02", s)
}

// ListOrders handles the privileged list orders request. Omitted query
// parameters place no constraint on their dimension.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	query := r.URL.Query()
	filter := &order.ListOrdersModel{}

	if s := query.Get("status"); s != "" {
		status, err := order.ParseStatus(s)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid status")

			return
		}
		filter.Status = &status
	}

	if s := query.Get("startDate"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid startDate")

			return
		}
		filter.StartDate = &t
	}

	if s := query.Get("endDate"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid endDate")

			return
		}
		filter.EndDate = &t
	}

	orders, err := service.List(r.Context(), filter)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Server error")
		slog.Error("Error listing orders", "error", err)

		return
	}

	response.JSON(w, http.StatusOK, orders)
}
