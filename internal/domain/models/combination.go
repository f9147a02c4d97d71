package models

import (
	"time"
)

const (
	CombinationStatusActive   = "active"
	CombinationStatusInactive = "inactive"

	// VisibilityEveryone is the only visibility tag the creation path
	// writes today; the column exists so per-combination audiences can be
	// added without a schema change.
	VisibilityEveryone = "everyone"
)

// Combination is an outfit: a named, ordered set of clothing items.
type Combination struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	Name          string    `db:"name" json:"name"`
	Description   *string   `db:"description" json:"description,omitempty"`
	CoverImageURL string    `db:"cover_image_url" json:"cover_image_url"`
	Style         *string   `db:"style" json:"style,omitempty"`
	Season        *string   `db:"season" json:"season,omitempty"`
	Published     bool      `db:"published" json:"published"`
	Visibility    string    `db:"visibility" json:"visibility"`
	Status        string    `db:"status" json:"status"`
	LikeCount     int       `db:"like_count" json:"like_count"`
	ViewCount     int       `db:"view_count" json:"view_count"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// CombinationItem links a combination to a clothing item at a 1-based
// ordinal. Ordinals follow the submitted order and are not compacted when a
// null entry is skipped, so gaps can occur.
type CombinationItem struct {
	CombinationID int64 `db:"combination_id" json:"combination_id"`
	ClothingID    int64 `db:"clothing_id" json:"clothing_id"`
	Ordinal       int   `db:"ordinal" json:"ordinal"`
}

// FeedCombination is a combination joined with its owner for browse
// responses. Items may be empty on listings that omit them.
type FeedCombination struct {
	Combination
	Owner UserSummary    `json:"owner"`
	Items []ClothingItem `json:"items"`
}

type Comment struct {
	ID            int64       `db:"id" json:"id"`
	CombinationID int64       `db:"combination_id" json:"combination_id"`
	Text          string      `db:"body" json:"text"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	Author        UserSummary `json:"author"`
}
