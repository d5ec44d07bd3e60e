package cancelorder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/minishop/order/internal/service/services/ordersvc"
)

type stubService struct {
	cancel func(ctx context.Context, id int64) error
}

func (s *stubService) Cancel(ctx context.Context, id int64) error {
	return s.cancel(ctx, id)
}

func doCancel(svc *stubService, path string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Delete("/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		CancelOrder(w, r, svc)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))

	return w
}

func TestCancelOrder_OK(t *testing.T) {
	var gotID int64
	svc := &stubService{cancel: func(_ context.Context, id int64) error {
		gotID = id

		return nil
	}}

	w := doCancel(svc, "/orders/42")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotID != 42 {
		t.Errorf("expected id 42, got %d", gotID)
	}
	if !strings.Contains(w.Body.String(), "Order cancelled successfully") {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestCancelOrder_GuardAndMissingShareOneError(t *testing.T) {
	for _, svcErr := range []error{ordersvc.ErrNotFound, ordersvc.ErrNotCancellable} {
		svc := &stubService{cancel: func(_ context.Context, _ int64) error {
			return svcErr
		}}

		w := doCancel(svc, "/orders/42")

		if w.Code != http.StatusBadRequest {
			t.Errorf("%v: expected 400, got %d", svcErr, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Cannot cancel order. Order may not be pending or not found.") {
			t.Errorf("%v: unexpected body %q", svcErr, w.Body.String())
		}
	}
}

func TestCancelOrder_InvalidID(t *testing.T) {
	svc := &stubService{cancel: func(_ context.Context, _ int64) error {
		t.Fatal("service must not be called")

		return nil
	}}

	w := doCancel(svc, "/orders/abc")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
