package dto

import (
	"stylemix/internal/domain/models"
)

type AddClothingRequest struct {
	Name     string   `json:"name" validate:"required,max=200"`
	Brand    string   `json:"brand,omitempty"`
	ImageURL string   `json:"image_url" validate:"required"`
	Category string   `json:"category,omitempty"`
	Colors   []string `json:"colors,omitempty"`
	Style    string   `json:"style,omitempty"`
	Gender   string   `json:"gender,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

type WardrobeListResponse struct {
	Items []models.ClothingItem `json:"items"`
}

type RemoveClothingResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
