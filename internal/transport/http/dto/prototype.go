package dto

import (
	"stylemix/internal/domain/models"
)

// PrototypeProductInput is one external catalog product to snapshot into a
// prototype. Entries missing an ID, name or image are skipped at creation.
type PrototypeProductInput struct {
	SourceID string   `json:"id"`
	Name     string   `json:"name"`
	ImageURL string   `json:"image_url"`
	Category string   `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

func (p PrototypeProductInput) Valid() bool {
	return p.SourceID != "" && p.Name != "" && p.ImageURL != ""
}

type CreatePrototypeRequest struct {
	Name          string                  `json:"name" validate:"required"`
	Description   string                  `json:"description,omitempty"`
	CoverImageURL string                  `json:"cover_image_url,omitempty"`
	Products      []PrototypeProductInput `json:"products" validate:"required"`
}

type PrototypeDetailResponse struct {
	models.Prototype
	Products []models.PrototypeProduct `json:"products"`
}

type PrototypeListResponse struct {
	Prototypes []models.Prototype `json:"prototypes"`
}
