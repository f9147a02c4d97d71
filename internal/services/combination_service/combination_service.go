package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"stylemix/internal/domain/models"
	"stylemix/internal/lib/logger/sl"
	"stylemix/internal/metrics"
	"stylemix/internal/repository"
	"stylemix/internal/storage"
	"stylemix/internal/transport/http/dto"
)

var ErrInvalidRequest = errors.New("invalid combination request")

type CombinationService struct {
	log        *slog.Logger
	repo       repository.CombinationRepository
	engagement repository.EngagementRepository
}

func NewCombinationService(log *slog.Logger, repo repository.CombinationRepository, engagement repository.EngagementRepository) *CombinationService {
	return &CombinationService{log: log, repo: repo, engagement: engagement}
}

// CreateCombination validates the payload and hands it to the repository,
// where naming and cover fallbacks run inside the insert transaction.
//
// A missing name is only acceptable for a single-item outfit, where the
// item's own name is adopted; with several items the client has to name the
// result itself.
func (s *CombinationService) CreateCombination(ctx context.Context, userID int64, req dto.CreateCombinationRequest) (*models.FeedCombination, error) {
	const op = "combination_service.CreateCombination"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("user_id", userID),
	)

	log.Info("creating combination", slog.Int("item_count", len(req.ItemIDs)))

	if len(req.ItemIDs) == 0 {
		log.Warn("no items submitted")
		return nil, fmt.Errorf("%s: %w: at least one item is required", op, ErrInvalidRequest)
	}

	// A supplied name is used verbatim, whitespace included; only a truly
	// empty name triggers derivation or rejection.
	if req.Name == "" && len(req.ItemIDs) > 1 {
		log.Warn("name missing for multi-item combination")
		return nil, fmt.Errorf("%s: %w: name is required for multi-item combinations", op, ErrInvalidRequest)
	}

	for i, id := range req.ItemIDs {
		if id == nil {
			log.Warn("skipping null item id", slog.Int("index", i))
		}
	}

	combo := models.Combination{
		UserID:        userID,
		Name:          req.Name,
		Description:   optional(req.Description),
		CoverImageURL: req.CoverImageURL,
		Style:         optional(req.Style),
		Season:        optional(req.Season),
		Published:     req.Published,
	}

	id, err := s.repo.CreateCombination(ctx, combo, req.ItemIDs)
	if err != nil {
		if errors.Is(err, storage.ErrNameNotDerivable) {
			log.Warn("name could not be derived from item", sl.Err(err))
			return nil, fmt.Errorf("%s: %w: single item has no usable name", op, ErrInvalidRequest)
		}
		log.Error("failed to create combination", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.repo.CombinationByID(ctx, id)
	if err != nil {
		log.Error("failed to load created combination", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.CombinationsCreated.Inc()

	log.Info("combination created", slog.Int64("combination_id", id))
	return created, nil
}

// ListFeed returns published, publicly visible combinations, newest first.
// The viewer's own combinations are excluded when a viewer is known.
func (s *CombinationService) ListFeed(ctx context.Context, viewerID *int64, page, perPage int) (*dto.CombinationListResponse, error) {
	const op = "combination_service.ListFeed"
	log := s.log.With(slog.String("op", op))

	page, perPage = normalizePage(page, perPage)

	combos, total, err := s.repo.ListFeed(ctx, viewerID, perPage, (page-1)*perPage)
	if err != nil {
		log.Error("failed to list feed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &dto.CombinationListResponse{
		Combinations: combos,
		TotalCount:   total,
		Page:         page,
		PerPage:      perPage,
	}, nil
}

func (s *CombinationService) ListByUser(ctx context.Context, userID int64, page, perPage int) (*dto.CombinationListResponse, error) {
	const op = "combination_service.ListByUser"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("user_id", userID),
	)

	page, perPage = normalizePage(page, perPage)

	combos, total, err := s.repo.ListByUser(ctx, userID, perPage, (page-1)*perPage)
	if err != nil {
		log.Error("failed to list user combinations", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &dto.CombinationListResponse{
		Combinations: combos,
		TotalCount:   total,
		Page:         page,
		PerPage:      perPage,
	}, nil
}

func (s *CombinationService) GetCombination(ctx context.Context, combinationID int64, viewerID *int64) (*dto.CombinationDetailResponse, error) {
	const op = "combination_service.GetCombination"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("combination_id", combinationID),
	)

	combo, err := s.repo.CombinationByID(ctx, combinationID)
	if err != nil {
		if errors.Is(err, storage.ErrCombinationNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Error("failed to get combination", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := &dto.CombinationDetailResponse{FeedCombination: *combo}

	if viewerID != nil {
		liked, err := s.engagement.LikeStatus(ctx, combinationID, *viewerID)
		if err != nil {
			log.Error("failed to get like status", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		resp.LikedByUser = liked
	}

	return resp, nil
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
