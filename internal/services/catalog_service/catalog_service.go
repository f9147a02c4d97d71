package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"stylemix/internal/config"
	"stylemix/internal/domain/models"
	"stylemix/internal/lib/logger/sl"

	gocache "github.com/patrickmn/go-cache"
)

var placeholderCategories = []string{"T-Shirt", "Pants", "Shoes", "Jacket", "Dress", "Accessory"}

type CatalogService struct {
	log    *slog.Logger
	client *http.Client
	cache  *gocache.Cache
	cfg    config.CatalogConfig
}

func NewCatalogService(log *slog.Logger, cfg config.CatalogConfig) *CatalogService {
	return &CatalogService{
		log:    log,
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		cfg:    cfg,
	}
}

// StoreProducts returns the store catalog page. The upstream API has no
// pagination, so the full list is fetched once per cache window and sliced
// locally.
func (s *CatalogService) StoreProducts(ctx context.Context, page, perPage int) (*models.CatalogPage, error) {
	const op = "catalog_service.StoreProducts"
	log := s.log.With(slog.String("op", op))

	products, err := s.storeProducts(ctx)
	if err != nil {
		log.Error("failed to fetch store products", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return paginate(products, page, perPage), nil
}

// Photos returns clothing photos for the query. Without an API key the
// placeholder catalog stands in so the endpoint keeps working in dev.
func (s *CatalogService) Photos(ctx context.Context, query string, page, perPage int) (*models.CatalogPage, error) {
	const op = "catalog_service.Photos"
	log := s.log.With(slog.String("op", op), slog.String("query", query))

	if s.cfg.PhotoAPIKey == "" {
		log.Info("photo api key not set, serving placeholder catalog")
		return paginate(s.placeholderProducts(), page, perPage), nil
	}

	products, err := s.photoProducts(ctx, query)
	if err != nil {
		log.Error("failed to fetch photos", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return paginate(products, page, perPage), nil
}

func (s *CatalogService) PlaceholderProducts(page, perPage int) *models.CatalogPage {
	return paginate(s.placeholderProducts(), page, perPage)
}

// AllProducts merges every source into one page. Sources are fetched
// concurrently and a failing source drops out of the merge instead of
// failing the request.
func (s *CatalogService) AllProducts(ctx context.Context, page, perPage int) *models.CatalogPage {
	const op = "catalog_service.AllProducts"
	log := s.log.With(slog.String("op", op))

	type result struct {
		products []models.CatalogProduct
		err      error
	}

	fetchers := []func() ([]models.CatalogProduct, error){
		func() ([]models.CatalogProduct, error) { return s.storeProducts(ctx) },
		func() ([]models.CatalogProduct, error) {
			if s.cfg.PhotoAPIKey == "" {
				return nil, nil
			}
			return s.photoProducts(ctx, "clothing")
		},
		func() ([]models.CatalogProduct, error) { return s.placeholderProducts(), nil },
	}

	results := make([]result, len(fetchers))

	var wg sync.WaitGroup
	for i, fetch := range fetchers {
		wg.Add(1)
		go func(i int, fetch func() ([]models.CatalogProduct, error)) {
			defer wg.Done()
			products, err := fetch()
			results[i] = result{products: products, err: err}
		}(i, fetch)
	}
	wg.Wait()

	var merged []models.CatalogProduct
	for _, r := range results {
		if r.err != nil {
			log.Warn("catalog source failed, skipping", sl.Err(r.err))
			continue
		}
		merged = append(merged, r.products...)
	}

	return paginate(merged, page, perPage)
}

func (s *CatalogService) storeProducts(ctx context.Context) ([]models.CatalogProduct, error) {
	const cacheKey = "catalog:store"

	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]models.CatalogProduct), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.StoreBaseURL+"/products", nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store api returned status %d", resp.StatusCode)
	}

	var raw []struct {
		ID       int     `json:"id"`
		Title    string  `json:"title"`
		Price    float64 `json:"price"`
		Category string  `json:"category"`
		Image    string  `json:"image"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	products := make([]models.CatalogProduct, 0, len(raw))
	for _, p := range raw {
		price := p.Price
		products = append(products, models.CatalogProduct{
			ID:       fmt.Sprintf("store-%d", p.ID),
			Name:     p.Title,
			Brand:    models.CatalogSourceStore,
			ImageURL: p.Image,
			Category: p.Category,
			Price:    &price,
			Source:   models.CatalogSourceStore,
		})
	}

	s.cache.Set(cacheKey, products, gocache.DefaultExpiration)
	return products, nil
}

func (s *CatalogService) photoProducts(ctx context.Context, query string) ([]models.CatalogProduct, error) {
	cacheKey := "catalog:photos:" + query

	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]models.CatalogProduct), nil
	}

	u := fmt.Sprintf("%s/search/photos?query=%s&per_page=30", s.cfg.PhotoBaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Client-ID "+s.cfg.PhotoAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("photo api returned status %d", resp.StatusCode)
	}

	var raw struct {
		Results []struct {
			ID   string `json:"id"`
			Alt  string `json:"alt_description"`
			URLs struct {
				Small string `json:"small"`
			} `json:"urls"`
			User struct {
				Name string `json:"name"`
			} `json:"user"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	products := make([]models.CatalogProduct, 0, len(raw.Results))
	for _, p := range raw.Results {
		name := p.Alt
		if name == "" {
			name = "Clothing photo"
		}
		products = append(products, models.CatalogProduct{
			ID:       "photo-" + p.ID,
			Name:     name,
			Brand:    p.User.Name,
			ImageURL: p.URLs.Small,
			Category: models.DefaultCategory,
			Source:   models.CatalogSourcePhoto,
		})
	}

	s.cache.Set(cacheKey, products, gocache.DefaultExpiration)
	return products, nil
}

func (s *CatalogService) placeholderProducts() []models.CatalogProduct {
	products := make([]models.CatalogProduct, 0, 30)
	for i := 0; i < 30; i++ {
		category := placeholderCategories[i%len(placeholderCategories)]
		price := float64(10 + i*5)
		products = append(products, models.CatalogProduct{
			ID:       fmt.Sprintf("placeholder-%d", i+1),
			Name:     fmt.Sprintf("%s %d", category, i+1),
			Brand:    models.CatalogSourcePlaceholder,
			ImageURL: fmt.Sprintf("https://via.placeholder.com/300x300?text=%s-%d", url.QueryEscape(category), i+1),
			Category: category,
			Price:    &price,
			Source:   models.CatalogSourcePlaceholder,
		})
	}
	return products
}

func paginate(products []models.CatalogProduct, page, perPage int) *models.CatalogPage {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	total := len(products)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return &models.CatalogPage{
		Products:      products[start:end],
		TotalPages:    totalPages,
		TotalElements: total,
		CurrentPage:   page,
	}
}
