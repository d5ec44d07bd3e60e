package listorders

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/minishop/order/internal/service/models/order"
)

type stubService struct {
	list  func(ctx context.Context, filter *order.ListOrdersModel) ([]order.Summary, error)
	calls int
}

func (s *stubService) List(ctx context.Context, filter *order.ListOrdersModel) ([]order.Summary, error) {
	s.calls++

	return s.list(ctx, filter)
}

func TestListOrders_FilterParsing(t *testing.T) {
	var got *order.ListOrdersModel
	svc := &stubService{list: func(_ context.Context, filter *order.ListOrdersModel) ([]order.Summary, error) {
		got = filter

		return []order.Summary{}, nil
	}}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet,
		"/api/orders?status=delivered&startDate=2026-01-01&endDate=2026-02-01T15:04:05Z", nil)
	ListOrders(w, r, svc)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got.Status == nil || *got.Status != order.StatusDelivered {
		t.Errorf("expected status filter delivered, got %v", got.Status)
	}
	if got.StartDate == nil || !got.StartDate.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected startDate %v", got.StartDate)
	}
	if got.EndDate == nil || !got.EndDate.Equal(time.Date(2026, 2, 1, 15, 4, 5, 0, time.UTC)) {
		t.Errorf("unexpected endDate %v", got.EndDate)
	}
}

func TestListOrders_NoFilters(t *testing.T) {
	var got *order.ListOrdersModel
	svc := &stubService{list: func(_ context.Context, filter *order.ListOrdersModel) ([]order.Summary, error) {
		got = filter

		return []order.Summary{}, nil
	}}

	w := httptest.NewRecorder()
	ListOrders(w, httptest.NewRequest(http.MethodGet, "/api/orders", nil), svc)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got.Status != nil || got.StartDate != nil || got.EndDate != nil {
		t.Errorf("expected empty filter, got %+v", got)
	}
	if w.Body.String() != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", w.Body.String())
	}
}

func TestListOrders_InvalidParams(t *testing.T) {
	for _, target := range []string{
		"/api/orders?status=shipped",
		"/api/orders?startDate=yesterday",
		"/api/orders?endDate=01-02-2026",
	} {
		svc := &stubService{list: func(_ context.Context, _ *order.ListOrdersModel) ([]order.Summary, error) {
			return []order.Summary{}, nil
		}}

		w := httptest.NewRecorder()
		ListOrders(w, httptest.NewRequest(http.MethodGet, target, nil), svc)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, w.Code)
		}
		if svc.calls != 0 {
			t.Errorf("%s: expected service not to be called", target)
		}
	}
}
