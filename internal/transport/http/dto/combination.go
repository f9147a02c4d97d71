package dto

import (
	"stylemix/internal/domain/models"
)

// CreateCombinationRequest carries the outfit creation payload. ItemIDs keeps
// pointer elements so an explicit JSON null stays distinguishable from a
// missing entry; nulls are skipped at creation without renumbering the rest.
type CreateCombinationRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	CoverImageURL string   `json:"cover_image_url,omitempty"`
	Style         string   `json:"style,omitempty"`
	Season        string   `json:"season,omitempty"`
	Published     bool     `json:"published"`
	ItemIDs       []*int64 `json:"item_ids" validate:"required,min=1"`
}

type CombinationDetailResponse struct {
	models.FeedCombination
	LikedByUser bool `json:"liked_by_user"`
}

type CombinationListResponse struct {
	Combinations []models.FeedCombination `json:"combinations"`
	TotalCount   int                      `json:"total_count"`
	Page         int                      `json:"page"`
	PerPage      int                      `json:"per_page"`
}

type LikeResponse struct {
	CombinationID int64 `json:"combination_id"`
	Liked         bool  `json:"liked"`
}

type AddCommentRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

type CommentListResponse struct {
	Comments []models.Comment `json:"comments"`
}
