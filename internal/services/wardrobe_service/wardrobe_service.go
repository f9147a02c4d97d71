package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"stylemix/internal/domain/models"
	"stylemix/internal/lib/logger/sl"
	"stylemix/internal/repository"
	"stylemix/internal/storage"
	"stylemix/internal/transport/http/dto"
)

var (
	ErrInvalidRequest   = errors.New("invalid wardrobe request")
	ErrClothingNotFound = errors.New("clothing item not found")
)

type WardrobeService struct {
	log  *slog.Logger
	repo repository.ClothingRepository
}

func NewWardrobeService(log *slog.Logger, repo repository.ClothingRepository) *WardrobeService {
	return &WardrobeService{log: log, repo: repo}
}

func (s *WardrobeService) AddClothing(ctx context.Context, userID int64, req dto.AddClothingRequest) (*models.ClothingItem, error) {
	const op = "wardrobe_service.AddClothing"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("user_id", userID),
	)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		log.Warn("clothing name missing")
		return nil, fmt.Errorf("%s: %w: name is required", op, ErrInvalidRequest)
	}
	if req.ImageURL == "" {
		log.Warn("clothing image missing")
		return nil, fmt.Errorf("%s: %w: image is required", op, ErrInvalidRequest)
	}

	category := req.Category
	if category == "" {
		category = models.DefaultCategory
	}

	item := models.ClothingItem{
		UserID:   userID,
		Name:     name,
		Brand:    optionalField(req.Brand),
		ImageURL: req.ImageURL,
		Category: category,
		Colors:   req.Colors,
		Style:    optionalField(req.Style),
		Gender:   optionalField(req.Gender),
		Price:    req.Price,
		Source:   models.SourceUser,
	}

	created, err := s.repo.CreateClothing(ctx, item)
	if err != nil {
		log.Error("failed to add clothing item", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("clothing item added", slog.Int64("clothing_id", created.ID))
	return &created, nil
}

func (s *WardrobeService) ListWardrobe(ctx context.Context, userID int64, category string, page, perPage int) (*dto.WardrobeListResponse, error) {
	const op = "wardrobe_service.ListWardrobe"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("user_id", userID),
	)

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 50
	}

	items, err := s.repo.ListWardrobe(ctx, userID, category, perPage, (page-1)*perPage)
	if err != nil {
		log.Error("failed to list wardrobe", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &dto.WardrobeListResponse{Items: items}, nil
}

// RemoveClothing hides the item from the wardrobe; combinations that already
// reference it are not touched.
func (s *WardrobeService) RemoveClothing(ctx context.Context, userID, clothingID int64) (*dto.RemoveClothingResponse, error) {
	const op = "wardrobe_service.RemoveClothing"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("user_id", userID),
		slog.Int64("clothing_id", clothingID),
	)

	name, err := s.repo.SoftDeleteClothing(ctx, clothingID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrClothingNotFound) {
			log.Warn("clothing item not found", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, ErrClothingNotFound)
		}
		log.Error("failed to remove clothing item", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("clothing item removed", slog.String("name", name))
	return &dto.RemoveClothingResponse{ID: clothingID, Name: name}, nil
}

func optionalField(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
