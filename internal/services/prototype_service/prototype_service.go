package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"stylemix/internal/domain/models"
	"stylemix/internal/lib/logger/sl"
	"stylemix/internal/metrics"
	"stylemix/internal/repository"
	"stylemix/internal/storage"
	"stylemix/internal/transport/http/dto"
)

var ErrInvalidRequest = errors.New("invalid prototype request")

type PrototypeService struct {
	log  *slog.Logger
	repo repository.PrototypeRepository
}

func NewPrototypeService(log *slog.Logger, repo repository.PrototypeRepository) *PrototypeService {
	return &PrototypeService{log: log, repo: repo}
}

// CreatePrototype snapshots a set of external catalog products into a draft
// outfit. The submitted list must hold at least two entries; entries missing
// an ID, name or image are then skipped with a warning, keeping their
// ordinal gap.
func (s *PrototypeService) CreatePrototype(ctx context.Context, userID int64, req dto.CreatePrototypeRequest) (*dto.PrototypeDetailResponse, error) {
	const op = "prototype_service.CreatePrototype"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("user_id", userID),
	)

	log.Info("creating prototype", slog.Int("product_count", len(req.Products)))

	name := strings.TrimSpace(req.Name)
	if name == "" {
		log.Warn("prototype name missing")
		return nil, fmt.Errorf("%s: %w: name is required", op, ErrInvalidRequest)
	}

	if len(req.Products) < 2 {
		log.Warn("not enough products", slog.Int("product_count", len(req.Products)))
		return nil, fmt.Errorf("%s: %w: at least two products are required", op, ErrInvalidRequest)
	}

	var products []models.PrototypeProduct
	for i, p := range req.Products {
		if !p.Valid() {
			log.Warn("skipping invalid product", slog.Int("index", i))
			continue
		}

		category := p.Category
		if category == "" {
			category = models.DefaultCategory
		}

		price := models.PriceNotAvailable
		if p.Price != nil {
			price = strconv.FormatFloat(*p.Price, 'f', -1, 64)
		}

		products = append(products, models.PrototypeProduct{
			SourceID: p.SourceID,
			Name:     p.Name,
			ImageURL: p.ImageURL,
			Category: category,
			Price:    price,
			Ordinal:  i + 1,
		})
	}

	proto := models.Prototype{
		UserID:      userID,
		Name:        name,
		Description: optionalString(req.Description),
	}
	// Cover comes from the first submitted entry even when that entry is
	// later skipped; without any image the cover stays NULL.
	switch {
	case req.CoverImageURL != "":
		proto.CoverImageURL = &req.CoverImageURL
	case req.Products[0].ImageURL != "":
		proto.CoverImageURL = &req.Products[0].ImageURL
	}

	id, err := s.repo.CreatePrototype(ctx, proto, products)
	if err != nil {
		log.Error("failed to create prototype", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, createdProducts, err := s.repo.PrototypeByID(ctx, id)
	if err != nil {
		log.Error("failed to load created prototype", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.PrototypesCreated.Inc()

	log.Info("prototype created", slog.Int64("prototype_id", id))
	return &dto.PrototypeDetailResponse{
		Prototype: *created,
		Products:  createdProducts,
	}, nil
}

func (s *PrototypeService) ListPrototypes(ctx context.Context, userID int64) (*dto.PrototypeListResponse, error) {
	const op = "prototype_service.ListPrototypes"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("user_id", userID),
	)

	protos, err := s.repo.ListPrototypes(ctx, userID)
	if err != nil {
		log.Error("failed to list prototypes", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &dto.PrototypeListResponse{Prototypes: protos}, nil
}

func (s *PrototypeService) GetPrototype(ctx context.Context, prototypeID int64) (*dto.PrototypeDetailResponse, error) {
	const op = "prototype_service.GetPrototype"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("prototype_id", prototypeID),
	)

	proto, products, err := s.repo.PrototypeByID(ctx, prototypeID)
	if err != nil {
		if !errors.Is(err, storage.ErrPrototypeNotFound) {
			log.Error("failed to get prototype", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &dto.PrototypeDetailResponse{
		Prototype: *proto,
		Products:  products,
	}, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
