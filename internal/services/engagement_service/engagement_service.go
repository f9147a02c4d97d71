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

const maxCommentLength = 500

var (
	ErrInvalidComment      = errors.New("invalid comment")
	ErrCombinationNotFound = errors.New("combination not found")
)

type EngagementService struct {
	log  *slog.Logger
	repo repository.EngagementRepository
}

func NewEngagementService(log *slog.Logger, repo repository.EngagementRepository) *EngagementService {
	return &EngagementService{log: log, repo: repo}
}

func (s *EngagementService) ToggleLike(ctx context.Context, combinationID, userID int64) (*dto.LikeResponse, error) {
	const op = "engagement_service.ToggleLike"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("combination_id", combinationID),
		slog.Int64("user_id", userID),
	)

	liked, err := s.repo.ToggleLike(ctx, combinationID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrCombinationNotFound) {
			log.Warn("combination not found", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, ErrCombinationNotFound)
		}
		log.Error("failed to toggle like", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("like toggled", slog.Bool("liked", liked))
	return &dto.LikeResponse{CombinationID: combinationID, Liked: liked}, nil
}

func (s *EngagementService) LikeStatus(ctx context.Context, combinationID, userID int64) (*dto.LikeResponse, error) {
	const op = "engagement_service.LikeStatus"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("combination_id", combinationID),
	)

	liked, err := s.repo.LikeStatus(ctx, combinationID, userID)
	if err != nil {
		log.Error("failed to get like status", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &dto.LikeResponse{CombinationID: combinationID, Liked: liked}, nil
}

func (s *EngagementService) ListComments(ctx context.Context, combinationID int64, page, perPage int) (*dto.CommentListResponse, error) {
	const op = "engagement_service.ListComments"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("combination_id", combinationID),
	)

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 50
	}

	comments, err := s.repo.ListComments(ctx, combinationID, perPage, (page-1)*perPage)
	if err != nil {
		log.Error("failed to list comments", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &dto.CommentListResponse{Comments: comments}, nil
}

func (s *EngagementService) AddComment(ctx context.Context, combinationID, userID int64, text string) (*models.Comment, error) {
	const op = "engagement_service.AddComment"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("combination_id", combinationID),
		slog.Int64("user_id", userID),
	)

	text = strings.TrimSpace(text)
	if text == "" {
		log.Warn("empty comment rejected")
		return nil, fmt.Errorf("%s: %w: text is required", op, ErrInvalidComment)
	}
	if len([]rune(text)) > maxCommentLength {
		log.Warn("comment too long", slog.Int("length", len([]rune(text))))
		return nil, fmt.Errorf("%s: %w: text exceeds %d characters", op, ErrInvalidComment, maxCommentLength)
	}

	comment, err := s.repo.AddComment(ctx, combinationID, userID, text)
	if err != nil {
		if errors.Is(err, storage.ErrCombinationNotFound) {
			log.Warn("combination not found", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, ErrCombinationNotFound)
		}
		log.Error("failed to add comment", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("comment added", slog.Int64("comment_id", comment.ID))
	return comment, nil
}
