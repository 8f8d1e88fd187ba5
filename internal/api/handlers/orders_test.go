package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-checkout-service/internal/domain"

	"github.com/gorilla/mux"
)

func patchStatus(t *testing.T, repo *stubOrderRepo, id, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := &OrderHandler{Repo: repo}
	req := httptest.NewRequest(http.MethodPatch, "/orders/"+id+"/status", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)
	return rec
}

func TestUpdateOrderStatus(t *testing.T) {
	repo := &stubOrderRepo{orders: map[string]domain.OrderRecord{
		"o1": {ID: "o1", UserID: "user-1", Status: domain.StatusPending},
	}}

	rec := patchStatus(t, repo, "o1", `{"status":"completed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	if repo.orders["o1"].Status != domain.StatusCompleted {
		t.Fatalf("stored status = %q, want completed", repo.orders["o1"].Status)
	}
}

func TestUpdateOrderStatusRejectsTerminalTransition(t *testing.T) {
	repo := &stubOrderRepo{orders: map[string]domain.OrderRecord{
		"o1": {ID: "o1", UserID: "user-1", Status: domain.StatusCompleted},
	}}

	rec := patchStatus(t, repo, "o1", `{"status":"cancelled"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body=%s", rec.Code, rec.Body.String())
	}
	if repo.orders["o1"].Status != domain.StatusCompleted {
		t.Fatalf("stored status changed to %q", repo.orders["o1"].Status)
	}
}

func TestUpdateOrderStatusUnknownOrder(t *testing.T) {
	repo := &stubOrderRepo{orders: map[string]domain.OrderRecord{}}

	rec := patchStatus(t, repo, "missing", `{"status":"completed"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body=%s", rec.Code, rec.Body.String())
	}
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	repo := &stubOrderRepo{orders: map[string]domain.OrderRecord{
		"o1": {ID: "o1", Status: domain.StatusPending},
	}}

	rec := patchStatus(t, repo, "o1", `{"status":"shipped"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body=%s", rec.Code, rec.Body.String())
	}
}
