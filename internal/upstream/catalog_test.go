package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
)

func newTestCatalog(handler http.HandlerFunc) (domain.CatalogGateway, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(srv.URL, &http.Client{Timeout: 2 * time.Second})
	return NewCatalogGateway(client), srv
}

func TestCatalogGateway_Products(t *testing.T) {
	t.Run("filters travel as query parameters and meta is kept", func(t *testing.T) {
		gateway, srv := newTestCatalog(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/products", r.URL.Path)
			q := r.URL.Query()
			require.Equal(t, "2", q.Get("page"))
			require.Equal(t, "12", q.Get("category_id"))
			require.Equal(t, "price_desc", q.Get("sort_by"))
			require.Empty(t, q.Get("per_page"), "default page size must not be sent")

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"data": [
					{"id": 1, "name": "Product A", "slug": "product-a", "price": 10000},
					{"id": 2, "name": "Product B", "slug": "product-b", "price": 20000}
				],
				"meta": {"current_page": 2, "last_page": 7, "per_page": 20, "total": 130}
			}`))
		})
		defer srv.Close()

		page, err := gateway.Products(context.Background(), domain.ProductFilters{
			Page:       2,
			PerPage:    domain.DefaultPerPage,
			CategoryID: 12,
			SortBy:     domain.SortPriceDesc,
		})
		require.NoError(t, err)
		require.Len(t, page.Data, 2)
		assert.Equal(t, "product-a", page.Data[0].Slug)
		assert.Equal(t, 2, page.Meta.CurrentPage)
		assert.Equal(t, 7, page.Meta.LastPage)
		assert.Equal(t, 130, page.Meta.Total)
	})

	t.Run("5xx maps to upstream unavailable", func(t *testing.T) {
		gateway, srv := newTestCatalog(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		defer srv.Close()

		_, err := gateway.Products(context.Background(), domain.ProductFilters{})
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})
}

func TestCatalogGateway_Product(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		gateway, srv := newTestCatalog(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/products/product-a", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success": true, "data": {"id": 1, "name": "Product A", "slug": "product-a", "price": 10000}}`))
		})
		defer srv.Close()

		product, err := gateway.Product(context.Background(), "product-a")
		require.NoError(t, err)
		assert.Equal(t, uint(1), product.ID)
	})

	t.Run("missing slug maps to not found", func(t *testing.T) {
		gateway, srv := newTestCatalog(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"success": false, "message": "Not found"}`))
		})
		defer srv.Close()

		_, err := gateway.Product(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCatalogGateway_FeaturedProducts(t *testing.T) {
	gateway, srv := newTestCatalog(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/featured", r.URL.Path)
		require.Equal(t, "8", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "data": [{"id": 1, "name": "Product A", "slug": "product-a"}]}`))
	})
	defer srv.Close()

	// Zero limit falls back to the home page default of 8.
	products, err := gateway.FeaturedProducts(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestCatalogGateway_CategoryProducts(t *testing.T) {
	gateway, srv := newTestCatalog(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/categories/4/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": [{"id": 9, "name": "Product C", "slug": "product-c"}],
			"meta": {"current_page": 1, "last_page": 1, "per_page": 20, "total": 1}
		}`))
	})
	defer srv.Close()

	page, err := gateway.CategoryProducts(context.Background(), 4, domain.ProductFilters{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, 1, page.Meta.Total)
}
