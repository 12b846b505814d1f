package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rgarza/posdesk-backend/pkg/db/models"
	pkgerrors "github.com/rgarza/posdesk-backend/pkg/errors"
)

type stubProductService struct {
	products  []models.Product
	product   *models.Product
	err       error
	lastQuery string
}

func (s *stubProductService) ListProducts(_ context.Context, query string) ([]models.Product, error) {
	s.lastQuery = query
	return s.products, s.err
}

func (s *stubProductService) GetProduct(_ context.Context, _ int64) (*models.Product, error) {
	return s.product, s.err
}

func TestProductListSuccess(t *testing.T) {
	svc := &stubProductService{products: []models.Product{
		{ID: 1, Name: "Coffee", UnitPrice: decimal.RequireFromString("3.50")},
		{ID: 2, Name: "Tea", UnitPrice: decimal.RequireFromString("2.50")},
	}}
	handler := ProductList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?q=ea", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastQuery != "ea" {
		t.Fatalf("expected query to reach service, got %q", svc.lastQuery)
	}

	var envelope struct {
		Data []models.Product `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 products got %d", len(envelope.Data))
	}
}

func TestProductDetailInvalidID(t *testing.T) {
	handler := ProductDetail(&stubProductService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/abc", nil)
	req = withURLParam(req, "productId", "abc")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProductDetailNotFound(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	handler := ProductDetail(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/99", nil)
	req = withURLParam(req, "productId", "99")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
