package getorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/minishop/order/internal/service/models/order"
	"github.com/minishop/order/internal/service/models/orderitem"
	"github.com/minishop/order/internal/service/services/ordersvc"
)

type stubService struct {
	get func(ctx context.Context, id int64) (*order.Order, error)
}

func (s *stubService) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	return s.get(ctx, id)
}

func doGet(svc *stubService, path string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get("/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		GetOrder(w, r, svc)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	return w
}

func TestGetOrder_OK(t *testing.T) {
	svc := &stubService{get: func(_ context.Context, id int64) (*order.Order, error) {
		return &order.Order{
			ID:          id,
			OrderCode:   "MM17000000000001",
			UserID:      1,
			Status:      order.StatusPending,
			TotalAmount: 20.0,
			CreatedAt:   time.Now(),
			Items: []orderitem.OrderItem{
				{ID: 1, OrderID: id, ProductID: 7, Quantity: 2, UnitPrice: 10.0, TotalPrice: 20.0},
			},
		}, nil
	}}

	w := doGet(svc, "/orders/42")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
		Items  []struct {
			ProductID int64 `json:"productId"`
			Quantity  int   `json:"quantity"`
		} `json:"items"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != 42 || resp.Status != "pending" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(resp.Items) != 1 || resp.Items[0].ProductID != 7 || resp.Items[0].Quantity != 2 {
		t.Errorf("unexpected items: %+v", resp.Items)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	svc := &stubService{get: func(_ context.Context, _ int64) (*order.Order, error) {
		return nil, ordersvc.ErrNotFound
	}}

	w := doGet(svc, "/orders/999")

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestGetOrder_InvalidID(t *testing.T) {
	svc := &stubService{get: func(_ context.Context, _ int64) (*order.Order, error) {
		t.Fatal("service must not be called")

		return nil, nil
	}}

	w := doGet(svc, "/orders/abc")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
