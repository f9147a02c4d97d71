package services

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"stylemix/internal/config"
	"stylemix/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreProducts_FetchesAndCaches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		require.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "title": "Mens Shirt", "price": 22.3, "category": "men's clothing", "image": "http://img/1.jpg"},
			{"id": 2, "title": "Jacket", "price": 55.99, "category": "men's clothing", "image": "http://img/2.jpg"}
		]`))
	}))
	defer srv.Close()

	svc := NewCatalogService(slog.Default(), config.CatalogConfig{
		StoreBaseURL: srv.URL,
		CacheTTL:     time.Minute,
	})

	page, err := svc.StoreProducts(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "store-1", page.Products[0].ID)
	assert.Equal(t, "Mens Shirt", page.Products[0].Name)
	assert.Equal(t, models.CatalogSourceStore, page.Products[0].Source)
	require.NotNil(t, page.Products[0].Price)
	assert.Equal(t, 22.3, *page.Products[0].Price)

	_, err = svc.StoreProducts(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestStoreProducts_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewCatalogService(slog.Default(), config.CatalogConfig{
		StoreBaseURL: srv.URL,
		CacheTTL:     time.Minute,
	})

	_, err := svc.StoreProducts(context.Background(), 1, 20)
	assert.Error(t, err)
}

func TestPhotos_WithoutKeyServesPlaceholders(t *testing.T) {
	svc := NewCatalogService(slog.Default(), config.CatalogConfig{CacheTTL: time.Minute})

	page, err := svc.Photos(context.Background(), "jacket", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Products, 10)
	assert.Equal(t, models.CatalogSourcePlaceholder, page.Products[0].Source)
	assert.Equal(t, 30, page.TotalElements)
}

func TestPhotos_WithKeyQueriesUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/photos", r.URL.Path)
		require.Equal(t, "jacket", r.URL.Query().Get("query"))
		require.Equal(t, "Client-ID test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": [
			{"id": "abc", "alt_description": "red jacket", "urls": {"small": "http://img/s.jpg"}, "user": {"name": "Ann"}},
			{"id": "def", "alt_description": "", "urls": {"small": "http://img/t.jpg"}, "user": {"name": "Bob"}}
		]}`))
	}))
	defer srv.Close()

	svc := NewCatalogService(slog.Default(), config.CatalogConfig{
		PhotoBaseURL: srv.URL,
		PhotoAPIKey:  "test-key",
		CacheTTL:     time.Minute,
	})

	page, err := svc.Photos(context.Background(), "jacket", 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "photo-abc", page.Products[0].ID)
	assert.Equal(t, "red jacket", page.Products[0].Name)
	assert.Equal(t, "Ann", page.Products[0].Brand)
	assert.Equal(t, "Clothing photo", page.Products[1].Name)
}

func TestAllProducts_DropsFailingSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewCatalogService(slog.Default(), config.CatalogConfig{
		StoreBaseURL: srv.URL,
		CacheTTL:     time.Minute,
	})

	page := svc.AllProducts(context.Background(), 1, 100)
	assert.Equal(t, 30, page.TotalElements)
	for _, p := range page.Products {
		assert.Equal(t, models.CatalogSourcePlaceholder, p.Source)
	}
}

func TestPaginate(t *testing.T) {
	products := make([]models.CatalogProduct, 45)

	t.Run("middle page", func(t *testing.T) {
		page := paginate(products, 2, 20)
		assert.Len(t, page.Products, 20)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, 45, page.TotalElements)
		assert.Equal(t, 2, page.CurrentPage)
	})

	t.Run("last partial page", func(t *testing.T) {
		page := paginate(products, 3, 20)
		assert.Len(t, page.Products, 5)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		page := paginate(products, 10, 20)
		assert.Empty(t, page.Products)
	})

	t.Run("bad paging normalized", func(t *testing.T) {
		page := paginate(products, -1, 500)
		assert.Len(t, page.Products, 20)
		assert.Equal(t, 1, page.CurrentPage)
	})
}
