package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/novamart/storefront-backend/internal/catalog"
	pkgerrors "github.com/novamart/storefront-backend/pkg/errors"
)

type stubCatalog struct {
	snapshot catalog.Snapshot
	product  *catalog.Product
	err      error
	refresh  error
}

func (s *stubCatalog) Snapshot() catalog.Snapshot {
	return s.snapshot
}

func (s *stubCatalog) FilterProducts(state catalog.SelectionState, query string) ([]catalog.Product, catalog.State) {
	filtered := catalog.Filter(s.snapshot.Products, s.snapshot.Index, state)
	if query != "" {
		matched := filtered[:0:0]
		for _, p := range filtered {
			if catalog.MatchesQuery(p, query) {
				matched = append(matched, p)
			}
		}
		filtered = matched
	}
	return filtered, s.snapshot.State
}

func (s *stubCatalog) GetProduct(context.Context, string) (*catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubCatalog) Refresh(context.Context) error {
	return s.refresh
}

func readySnapshot() catalog.Snapshot {
	products := []catalog.Product{
		{ID: "p1", Name: "Acme Laptop", Price: 999.99, Category: "Computers", Brand: "Acme"},
		{ID: "p2", Name: "Zen Phone", Price: 499.99, Category: "Mobile", Brand: "Zen"},
	}
	return catalog.Snapshot{
		Products: products,
		Index:    catalog.BuildIndex(products, catalog.DefaultFacets()),
		State:    catalog.StateReady,
	}
}

func TestListProductsAppliesFacetQuery(t *testing.T) {
	handler := ListProducts(&stubCatalog{snapshot: readySnapshot()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products?category=Mobile", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data productListResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.State != "ready" {
		t.Fatalf("expected state ready, got %q", envelope.Data.State)
	}
	if envelope.Data.Total != 1 || envelope.Data.Products[0].ID != "p2" {
		t.Fatalf("expected only the mobile product, got %+v", envelope.Data)
	}
}

func TestListProductsEmptyResultStillReady(t *testing.T) {
	handler := ListProducts(&stubCatalog{snapshot: readySnapshot()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products?brand=Vanished", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var envelope struct {
		Data productListResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.State != "ready" || envelope.Data.Total != 0 {
		t.Fatalf("expected an empty ready result, got %+v", envelope.Data)
	}
	if envelope.Data.Products == nil {
		t.Fatal("expected an empty array, not null")
	}
}

func TestListProductsCommaSeparatedValues(t *testing.T) {
	handler := ListProducts(&stubCatalog{snapshot: readySnapshot()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products?brand=Acme,Zen", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	var envelope struct {
		Data productListResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != 2 {
		t.Fatalf("expected both brands, got %+v", envelope.Data)
	}
}

func TestGetProductByID(t *testing.T) {
	handler := GetProduct(&stubCatalog{product: &catalog.Product{ID: "p1", Name: "Acme Laptop"}}, nil)

	r := chi.NewRouter()
	r.Get("/api/v1/catalog/products/{productId}", handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/p1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestGetProductNotFound(t *testing.T) {
	handler := GetProduct(&stubCatalog{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}, nil)

	r := chi.NewRouter()
	r.Get("/api/v1/catalog/products/{productId}", handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/ghost", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestListFacetsUnavailableCatalog(t *testing.T) {
	handler := ListFacets(&stubCatalog{snapshot: catalog.Snapshot{
		State: catalog.StateUnavailable,
		Index: catalog.BuildIndex(nil, catalog.DefaultFacets()),
	}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/facets", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeUnavailable) {
		t.Fatalf("expected the unavailable code, got %q", envelope.Error.Code)
	}
}

func TestListFacetsReturnsOptions(t *testing.T) {
	handler := ListFacets(&stubCatalog{snapshot: readySnapshot()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/facets", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var envelope struct {
		Data struct {
			State  string          `json:"state"`
			Facets []facetResponse `json:"facets"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Facets) != 5 {
		t.Fatalf("expected 5 facets, got %d", len(envelope.Data.Facets))
	}
}

func TestListFacetsDropsDeadSelectionValues(t *testing.T) {
	handler := ListFacets(&stubCatalog{snapshot: readySnapshot()}, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/catalog/facets?brand=Acme,Ghost&category=Mobile&mystery=x", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var envelope struct {
		Data struct {
			Selection map[string][]string `json:"selection"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	brands := envelope.Data.Selection["brand"]
	if len(brands) != 1 || brands[0] != "Acme" {
		t.Fatalf("expected only the live brand to survive, got %v", brands)
	}
	if got := envelope.Data.Selection["category"]; len(got) != 1 || got[0] != "Mobile" {
		t.Fatalf("expected the category selection echoed, got %v", got)
	}
	if _, ok := envelope.Data.Selection["mystery"]; ok {
		t.Fatal("expected unknown facet ids to be dropped")
	}
}

func TestListProductsPagination(t *testing.T) {
	handler := ListProducts(&stubCatalog{snapshot: readySnapshot()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products?limit=1&offset=1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var envelope struct {
		Data productListResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != 2 {
		t.Fatalf("expected total 2, got %d", envelope.Data.Total)
	}
	if len(envelope.Data.Products) != 1 || envelope.Data.Products[0].ID != "p2" {
		t.Fatalf("expected the second page of one, got %+v", envelope.Data.Products)
	}
}

func TestListProductsRejectsBadLimit(t *testing.T) {
	handler := ListProducts(&stubCatalog{snapshot: readySnapshot()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products?limit=many", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
