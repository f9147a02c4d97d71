package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stylemix/internal/domain/models"
	"stylemix/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type EngagementRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewEngagementRepository(db *pgxpool.Pool) *EngagementRepo {
	return &EngagementRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ToggleLike flips the like state for the user and adjusts the counter.
// Reports whether the combination is liked after the call.
func (r *EngagementRepo) ToggleLike(ctx context.Context, combinationID, userID int64) (bool, error) {
	const op = "repository.engagement_repository.ToggleLike"

	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM combinations WHERE id = $1 AND status = $2)`,
		combinationID, models.CombinationStatusActive).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: failed to check combination: %w", op, err)
	}
	if !exists {
		return false, fmt.Errorf("%s: %w", op, storage.ErrCombinationNotFound)
	}

	var liked bool
	err = r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM combination_likes WHERE combination_id = $1 AND user_id = $2)`,
		combinationID, userID).Scan(&liked)
	if err != nil {
		return false, fmt.Errorf("%s: failed to check like: %w", op, err)
	}

	if liked {
		_, err = r.db.Exec(ctx,
			`DELETE FROM combination_likes WHERE combination_id = $1 AND user_id = $2`,
			combinationID, userID)
		if err != nil {
			return false, fmt.Errorf("%s: failed to remove like: %w", op, err)
		}

		_, err = r.db.Exec(ctx,
			`UPDATE combinations SET like_count = GREATEST(like_count - 1, 0) WHERE id = $1`,
			combinationID)
		if err != nil {
			return false, fmt.Errorf("%s: failed to decrement like count: %w", op, err)
		}

		return false, nil
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO combination_likes (combination_id, user_id, created_at) VALUES ($1, $2, $3)`,
		combinationID, userID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("%s: failed to add like: %w", op, err)
	}

	_, err = r.db.Exec(ctx,
		`UPDATE combinations SET like_count = like_count + 1 WHERE id = $1`,
		combinationID)
	if err != nil {
		return false, fmt.Errorf("%s: failed to increment like count: %w", op, err)
	}

	return true, nil
}

func (r *EngagementRepo) LikeStatus(ctx context.Context, combinationID, userID int64) (bool, error) {
	const op = "repository.engagement_repository.LikeStatus"

	var liked bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM combination_likes WHERE combination_id = $1 AND user_id = $2)`,
		combinationID, userID).Scan(&liked)
	if err != nil {
		return false, fmt.Errorf("%s: failed to check like: %w", op, err)
	}

	return liked, nil
}

func (r *EngagementRepo) ListComments(ctx context.Context, combinationID int64, limit, offset int) ([]models.Comment, error) {
	const op = "repository.engagement_repository.ListComments"

	query, args, err := r.sb.
		Select(
			"cc.id",
			"cc.combination_id",
			"cc.comment_text",
			"cc.created_at",
			"u.id",
			"u.username",
			"u.first_name",
			"u.last_name",
			"u.profile_photo_url",
		).
		From("combination_comments cc").
		Join("users u ON u.id = cc.user_id").
		Where(sq.Eq{"cc.combination_id": combinationID}).
		OrderBy("cc.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(
			&c.ID,
			&c.CombinationID,
			&c.Text,
			&c.CreatedAt,
			&c.Author.ID,
			&c.Author.Username,
			&c.Author.FirstName,
			&c.Author.LastName,
			&c.Author.ProfilePhotoURL,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return comments, nil
}

func (r *EngagementRepo) AddComment(ctx context.Context, combinationID, userID int64, text string) (*models.Comment, error) {
	const op = "repository.engagement_repository.AddComment"

	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM combinations WHERE id = $1 AND status = $2)`,
		combinationID, models.CombinationStatusActive).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to check combination: %w", op, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrCombinationNotFound)
	}

	now := time.Now().UTC()

	query, args, err := r.sb.Insert("combination_comments").
		Columns("combination_id", "user_id", "comment_text", "created_at").
		Values(combinationID, userID, text, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	comment := models.Comment{
		CombinationID: combinationID,
		Text:          text,
		CreatedAt:     now,
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&comment.ID); err != nil {
		return nil, fmt.Errorf("%s: failed to add comment: %w", op, err)
	}

	err = r.db.QueryRow(ctx,
		`SELECT id, username, first_name, last_name, profile_photo_url FROM users WHERE id = $1`,
		userID).Scan(
		&comment.Author.ID,
		&comment.Author.Username,
		&comment.Author.FirstName,
		&comment.Author.LastName,
		&comment.Author.ProfilePhotoURL,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load comment author: %w", op, err)
	}

	return &comment, nil
}
