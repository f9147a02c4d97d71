package models

import (
	"time"
)

// ClothingItem is a single wardrobe entry owned by a user. Items coming from
// the catalog aggregator carry the source tag of the API they were imported
// from, items created by hand are tagged "User".
type ClothingItem struct {
	ID       int64    `db:"id" json:"id"`
	UserID   int64    `db:"user_id" json:"user_id"`
	Name     string   `db:"name" json:"name"`
	Brand    *string  `db:"brand" json:"brand,omitempty"`
	ImageURL string   `db:"image_url" json:"image_url"`
	Category string   `db:"category" json:"category"`
	Colors   []string `db:"colors" json:"colors"`
	Style    *string  `db:"style" json:"style,omitempty"`
	Gender   *string  `db:"gender" json:"gender,omitempty"`
	Price    *float64 `db:"price" json:"price,omitempty"`
	Source   string   `db:"source" json:"source"`
	// Available is the soft-delete flag: removed items stay in the table
	// with available=false.
	Available bool      `db:"available" json:"available"`
	AddedAt   time.Time `db:"added_at" json:"added_at"`
}

const (
	DefaultCategory = "Other"
	SourceUser      = "User"
)
