package updatestatus

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
	update func(ctx context.Context, id int64, status string) error
}

func (s *stubService) UpdateStatus(ctx context.Context, id int64, status string) error {
	return s.update(ctx, id, status)
}

func doUpdate(svc *stubService, path, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Patch("/orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		UpdateStatus(w, r, svc)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body)))

	return w
}

func TestUpdateStatus_OK(t *testing.T) {
	var gotID int64
	var gotStatus string
	svc := &stubService{update: func(_ context.Context, id int64, status string) error {
		gotID, gotStatus = id, status

		return nil
	}}

	w := doUpdate(svc, "/orders/7/status", `{"status": "shipping"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotID != 7 || gotStatus != "shipping" {
		t.Errorf("expected (7, shipping), got (%d, %s)", gotID, gotStatus)
	}
	if !strings.Contains(w.Body.String(), "Order status updated successfully") {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestUpdateStatus_MissingStatus(t *testing.T) {
	svc := &stubService{update: func(_ context.Context, _ int64, _ string) error {
		t.Fatal("service must not be called")

		return nil
	}}

	for _, body := range []string{`{}`, `{"status": ""}`, `not json`} {
		w := doUpdate(svc, "/orders/7/status", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, w.Code)
		}
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := &stubService{update: func(_ context.Context, _ int64, _ string) error {
		return ordersvc.NewValidationError("invalid status")
	}}

	w := doUpdate(svc, "/orders/7/status", `{"status": "teleported"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid status") {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc := &stubService{update: func(_ context.Context, _ int64, _ string) error {
		return ordersvc.ErrNotFound
	}}

	w := doUpdate(svc, "/orders/999/status", `{"status": "delivered"}`)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
