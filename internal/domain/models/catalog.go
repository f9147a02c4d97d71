package models

// CatalogProduct is the normalized shape every external product source is
// mapped into. ID is prefixed with the source tag so identifiers from
// different catalogs never collide.
type CatalogProduct struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Brand    string   `json:"brand"`
	ImageURL string   `json:"image_url"`
	Category string   `json:"category"`
	Colors   []string `json:"colors,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Source   string   `json:"source"`
}

// CatalogPage wraps a product list with the pagination block clients expect
// from every catalog endpoint, whether or not the source paginates.
type CatalogPage struct {
	Products      []CatalogProduct `json:"products"`
	TotalPages    int              `json:"total_pages"`
	TotalElements int              `json:"total_elements"`
	CurrentPage   int              `json:"current_page"`
}

const (
	CatalogSourceStore       = "StoreAPI"
	CatalogSourcePhoto       = "PhotoAPI"
	CatalogSourcePlaceholder = "PlaceholderAPI"
)
