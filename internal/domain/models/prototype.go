package models

import (
	"time"
)

// Prototype is an unpublished draft outfit assembled from externally sourced
// products rather than the user's own wardrobe items.
type Prototype struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	Name          string    `db:"name" json:"name"`
	Description   *string   `db:"description" json:"description,omitempty"`
	CoverImageURL *string   `db:"cover_image_url" json:"cover_image_url,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// PrototypeProduct is one external product snapshot inside a prototype.
// SourceID keeps the originating catalog's identifier (e.g. "fakestore-12");
// Price is stored as text because external sources report it in mixed
// formats, "N/A" marks an unknown price.
type PrototypeProduct struct {
	ID          int64  `db:"id" json:"id"`
	PrototypeID int64  `db:"prototype_id" json:"prototype_id"`
	SourceID    string `db:"source_id" json:"source_id"`
	Name        string `db:"name" json:"name"`
	ImageURL    string `db:"image_url" json:"image_url"`
	Category    string `db:"category" json:"category"`
	Price       string `db:"price" json:"price"`
	Ordinal     int    `db:"ordinal" json:"ordinal"`
}

const PriceNotAvailable = "N/A"
