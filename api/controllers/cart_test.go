package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rgarza/posdesk-backend/api/middleware"
	cartsvc "github.com/rgarza/posdesk-backend/internal/cart"
	pkgerrors "github.com/rgarza/posdesk-backend/pkg/errors"
)

type stubCartService struct {
	cart       *cartsvc.Cart
	err        error
	lastMethod string
	lastQty    int
}

func (s *stubCartService) Get(_ context.Context, sessionID string) (*cartsvc.Cart, error) {
	s.lastMethod = "get"
	return s.cart, s.err
}

func (s *stubCartService) AddItem(_ context.Context, _ string, _ int64) (*cartsvc.Cart, error) {
	s.lastMethod = "add"
	return s.cart, s.err
}

func (s *stubCartService) UpdateQuantity(_ context.Context, _ string, _ int64, qty int) (*cartsvc.Cart, error) {
	s.lastMethod = "update"
	s.lastQty = qty
	return s.cart, s.err
}

func (s *stubCartService) RemoveItem(_ context.Context, _ string, _ int64) (*cartsvc.Cart, error) {
	s.lastMethod = "remove"
	return s.cart, s.err
}

func (s *stubCartService) Clear(_ context.Context, _ string) error {
	s.lastMethod = "clear"
	return s.err
}

func sampleCart() *cartsvc.Cart {
	return &cartsvc.Cart{
		SessionID: "sess-1",
		Lines: []cartsvc.Line{
			{ProductID: 1, Name: "Coffee", UnitPrice: decimal.RequireFromString("3.50"), Quantity: 2},
		},
	}
}

func withSession(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithSessionID(req.Context(), "sess-1"))
}

func TestCartFetchSuccess(t *testing.T) {
	svc := &stubCartService{cart: sampleCart()}
	handler := CartFetch(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartsvc.Cart `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Lines) != 1 || envelope.Data.Lines[0].Name != "Coffee" {
		t.Fatalf("unexpected cart payload: %+v", envelope.Data)
	}
}

func TestCartFetchMissingSession(t *testing.T) {
	handler := CartFetch(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemSuccess(t *testing.T) {
	svc := &stubCartService{cart: sampleCart()}
	handler := CartAddItem(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":1}`)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastMethod != "add" {
		t.Fatalf("expected add call, got %q", svc.lastMethod)
	}
}

func TestCartAddItemRejectsBadBody(t *testing.T) {
	handler := CartAddItem(&stubCartService{}, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":0}`)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	handler := CartAddItem(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":99}`)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartUpdateQuantityPassesZeroThrough(t *testing.T) {
	svc := &stubCartService{cart: sampleCart()}
	handler := CartUpdateQuantity(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/1", strings.NewReader(`{"quantity":0}`)))
	req = withURLParam(req, "productId", "1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastMethod != "update" || svc.lastQty != 0 {
		t.Fatalf("expected update with qty 0, got %q qty %d", svc.lastMethod, svc.lastQty)
	}
}

func TestCartRemoveItemInvalidID(t *testing.T) {
	handler := CartRemoveItem(&stubCartService{}, nil)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/abc", nil))
	req = withURLParam(req, "productId", "abc")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartClearSuccess(t *testing.T) {
	svc := &stubCartService{}
	handler := CartClear(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastMethod != "clear" {
		t.Fatalf("expected clear call, got %q", svc.lastMethod)
	}
}
