package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/models"
)

func adminRouter(f *fixture) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/admin/products", f.admin.ListProducts)
	r.Post("/api/admin/products", f.admin.CreateProduct)
	r.Put("/api/admin/products/{productId}", f.admin.UpdateProduct)
	r.Delete("/api/admin/products/{productId}", f.admin.DeleteProduct)
	return r
}

const validProductBody = `{
	"name": "Canvas Tote",
	"price": 19.99,
	"image": "tote.jpg",
	"variants": "Natural, Black",
	"description": "A sturdy canvas tote bag.",
	"category": "Bags"
}`

func decodeAdmin(t *testing.T, w *httptest.ResponseRecorder) adminResponse {
	t.Helper()

	var resp adminResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode admin response: %v", err)
	}
	return resp
}

func TestCreateProduct(t *testing.T) {
	f := newFixture(t, true)
	r := adminRouter(f)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products", strings.NewReader(validProductBody))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	resp := decodeAdmin(t, w)
	if resp.Product == nil || resp.Product.ID != 3 {
		t.Errorf("expected new product with id 3, got %+v", resp.Product)
	}
	if resp.Warning != "" {
		t.Errorf("expected no warning on durable write, got %q", resp.Warning)
	}

	if len(f.catalog.All()) != 3 {
		t.Errorf("expected 3 products in catalog, got %d", len(f.catalog.All()))
	}
}

func TestCreateProduct_ValidationFailure(t *testing.T) {
	f := newFixture(t, true)
	r := adminRouter(f)

	body := `{"name":"A","price":-5,"image":"x.jpg","variants":"S","description":"Long enough text."}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/products", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp["error"] != "Product name must be at least 2 characters" {
		t.Errorf("unexpected validation message: %q", resp["error"])
	}

	// Catalog unchanged
	if len(f.catalog.All()) != 2 {
		t.Errorf("expected catalog unchanged, got %d products", len(f.catalog.All()))
	}
}

func TestCreateProduct_DegradedPersistenceWarning(t *testing.T) {
	f := newFixture(t, false)
	r := adminRouter(f)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products", strings.NewReader(validProductBody))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	resp := decodeAdmin(t, w)
	if resp.Warning != degradedPersistenceWarning {
		t.Errorf("expected degraded persistence warning, got %q", resp.Warning)
	}

	// The in-memory mutation is kept despite the degraded write
	if len(f.catalog.All()) != 3 {
		t.Errorf("expected product kept in catalog, got %d products", len(f.catalog.All()))
	}
}

func TestUpdateProduct(t *testing.T) {
	f := newFixture(t, true)
	r := adminRouter(f)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/products/1", strings.NewReader(validProductBody))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	product, _ := f.catalog.FindByID(1)
	if product.Name != "Canvas Tote" {
		t.Errorf("expected updated name, got %q", product.Name)
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	f := newFixture(t, true)
	r := adminRouter(f)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/products/99", strings.NewReader(validProductBody))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t, true)
	r := adminRouter(f)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/products/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if _, ok := f.catalog.FindByID(1); ok {
		t.Error("expected product removed")
	}
}

func TestDeleteProduct_AbsentIDSucceeds(t *testing.T) {
	f := newFixture(t, true)
	r := adminRouter(f)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/products/99", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected idempotent delete to return 200, got %d", w.Code)
	}
}

func TestAdminListProducts_Unfiltered(t *testing.T) {
	f := newFixture(t, true)
	r := adminRouter(f)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var products []models.Product
	if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(products) != 2 {
		t.Errorf("expected full catalog, got %d products", len(products))
	}
}
