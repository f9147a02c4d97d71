package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"stylemix/internal/domain/models"
	"stylemix/internal/lib/logger/sl"
	"stylemix/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

type CombinationRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

// rollback releases the transaction on the error paths. A failed rollback is
// logged rather than returned so it never masks the error that caused it;
// after a successful commit pgx reports ErrTxClosed, which is expected.
func rollback(ctx context.Context, tx pgx.Tx, op string) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Error("failed to rollback transaction", slog.String("op", op), sl.Err(err))
	}
}

func NewCombinationRepository(db *pgxpool.Pool) *CombinationRepo {
	return &CombinationRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// fallbackCoverURL picks a cover image for a combination that was created
// without an explicit one. Inline base64 payloads are never stored as covers.
func fallbackCoverURL(itemImage string, found bool, itemCount int, now time.Time) string {
	switch {
	case !found:
		return fmt.Sprintf("https://via.placeholder.com/400x400/FFC107/000000?text=Outfit-%d-Items", itemCount)
	case strings.HasPrefix(itemImage, "data:image/"):
		return fmt.Sprintf("https://via.placeholder.com/400x400/4A90E2/FFFFFF?text=Outfit-%d", now.UnixMilli())
	case itemImage != "":
		return itemImage
	default:
		return "https://via.placeholder.com/400x400/28A745/FFFFFF?text=New-Outfit"
	}
}

// CreateCombination inserts the combination header and its item associations
// in a single transaction. Name and cover fallbacks are resolved inside the
// transaction so they see the same snapshot the inserts do. The ordinal of
// each association is the item's position in the submitted list; entries
// skipped as null leave a gap rather than shifting later ordinals.
func (r *CombinationRepo) CreateCombination(ctx context.Context, combo models.Combination, itemIDs []*int64) (int64, error) {
	const op = "repository.combination_repository.CreateCombination"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer rollback(ctx, tx, op)

	name := combo.Name
	if name == "" {
		if len(itemIDs) == 0 || itemIDs[0] == nil {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrNameNotDerivable)
		}

		var itemName string
		err = tx.QueryRow(ctx,
			`SELECT name FROM clothing_items WHERE id = $1`,
			*itemIDs[0]).Scan(&itemName)
		if errors.Is(err, pgx.ErrNoRows) || (err == nil && itemName == "") {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrNameNotDerivable)
		}
		if err != nil {
			return 0, fmt.Errorf("%s: failed to look up item name: %w", op, err)
		}
		name = itemName
	}

	cover := combo.CoverImageURL
	if cover == "" && len(itemIDs) > 0 {
		var (
			itemImage string
			found     bool
		)
		if itemIDs[0] != nil {
			err = tx.QueryRow(ctx,
				`SELECT image_url FROM clothing_items WHERE id = $1`,
				*itemIDs[0]).Scan(&itemImage)
			switch {
			case errors.Is(err, pgx.ErrNoRows):
			case err != nil:
				return 0, fmt.Errorf("%s: failed to look up item image: %w", op, err)
			default:
				found = true
			}
		}
		cover = fallbackCoverURL(itemImage, found, len(itemIDs), time.Now())
	}

	now := time.Now().UTC()

	query, args, err := r.sb.Insert("combinations").
		Columns(
			"user_id",
			"name",
			"description",
			"cover_image_url",
			"style",
			"season",
			"published",
			"visibility",
			"status",
			"like_count",
			"view_count",
			"created_at",
			"updated_at",
		).
		Values(
			combo.UserID,
			name,
			combo.Description,
			cover,
			combo.Style,
			combo.Season,
			combo.Published,
			models.VisibilityEveryone,
			models.CombinationStatusActive,
			0,
			0,
			now,
			now,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var combinationID int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&combinationID); err != nil {
		return 0, fmt.Errorf("%s: failed to insert combination: %w", op, err)
	}

	for i, itemID := range itemIDs {
		if itemID == nil {
			continue
		}

		query, args, err := r.sb.Insert("combination_items").
			Columns("combination_id", "clothing_id", "ordinal").
			Values(combinationID, *itemID, i+1).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("%s: failed to build item query: %w", op, err)
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("%s: failed to insert combination item: %w", op, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return combinationID, nil
}

func (r *CombinationRepo) ListFeed(ctx context.Context, excludeUserID *int64, limit, offset int) ([]models.FeedCombination, int, error) {
	const op = "repository.combination_repository.ListFeed"

	where := sq.And{
		sq.Eq{"c.published": true},
		sq.Eq{"c.status": models.CombinationStatusActive},
		sq.Eq{"c.visibility": models.VisibilityEveryone},
	}
	if excludeUserID != nil {
		where = append(where, sq.NotEq{"c.user_id": *excludeUserID})
	}

	countQuery, countArgs, err := r.sb.
		Select("COUNT(*)").
		From("combinations c").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build count query: %w", op, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to count combinations: %w", op, err)
	}

	query, args, err := r.sb.
		Select(
			"c.id",
			"c.user_id",
			"c.name",
			"c.description",
			"c.cover_image_url",
			"c.style",
			"c.season",
			"c.published",
			"c.visibility",
			"c.status",
			"c.like_count",
			"c.view_count",
			"c.created_at",
			"c.updated_at",
			"u.id",
			"u.username",
			"u.first_name",
			"u.last_name",
			"u.profile_photo_url",
		).
		From("combinations c").
		Join("users u ON u.id = c.user_id").
		Where(where).
		OrderBy("c.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	defer rows.Close()

	var combos []models.FeedCombination
	for rows.Next() {
		var fc models.FeedCombination
		err := rows.Scan(
			&fc.ID,
			&fc.UserID,
			&fc.Name,
			&fc.Description,
			&fc.CoverImageURL,
			&fc.Style,
			&fc.Season,
			&fc.Published,
			&fc.Visibility,
			&fc.Status,
			&fc.LikeCount,
			&fc.ViewCount,
			&fc.CreatedAt,
			&fc.UpdatedAt,
			&fc.Owner.ID,
			&fc.Owner.Username,
			&fc.Owner.FirstName,
			&fc.Owner.LastName,
			&fc.Owner.ProfilePhotoURL,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		combos = append(combos, fc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: rows error: %w", op, err)
	}

	for i := range combos {
		items, err := r.combinationItems(ctx, combos[i].ID)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		combos[i].Items = items
	}

	return combos, total, nil
}

func (r *CombinationRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.FeedCombination, int, error) {
	const op = "repository.combination_repository.ListByUser"

	where := sq.And{
		sq.Eq{"c.user_id": userID},
		sq.Eq{"c.status": models.CombinationStatusActive},
	}

	countQuery, countArgs, err := r.sb.
		Select("COUNT(*)").
		From("combinations c").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build count query: %w", op, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to count combinations: %w", op, err)
	}

	query, args, err := r.sb.
		Select(
			"c.id",
			"c.user_id",
			"c.name",
			"c.description",
			"c.cover_image_url",
			"c.style",
			"c.season",
			"c.published",
			"c.visibility",
			"c.status",
			"c.like_count",
			"c.view_count",
			"c.created_at",
			"c.updated_at",
			"u.id",
			"u.username",
			"u.first_name",
			"u.last_name",
			"u.profile_photo_url",
		).
		From("combinations c").
		Join("users u ON u.id = c.user_id").
		Where(where).
		OrderBy("c.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	defer rows.Close()

	var combos []models.FeedCombination
	for rows.Next() {
		var fc models.FeedCombination
		err := rows.Scan(
			&fc.ID,
			&fc.UserID,
			&fc.Name,
			&fc.Description,
			&fc.CoverImageURL,
			&fc.Style,
			&fc.Season,
			&fc.Published,
			&fc.Visibility,
			&fc.Status,
			&fc.LikeCount,
			&fc.ViewCount,
			&fc.CreatedAt,
			&fc.UpdatedAt,
			&fc.Owner.ID,
			&fc.Owner.Username,
			&fc.Owner.FirstName,
			&fc.Owner.LastName,
			&fc.Owner.ProfilePhotoURL,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		combos = append(combos, fc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return combos, total, nil
}

func (r *CombinationRepo) CombinationByID(ctx context.Context, combinationID int64) (*models.FeedCombination, error) {
	const op = "repository.combination_repository.CombinationByID"

	query, args, err := r.sb.
		Select(
			"c.id",
			"c.user_id",
			"c.name",
			"c.description",
			"c.cover_image_url",
			"c.style",
			"c.season",
			"c.published",
			"c.visibility",
			"c.status",
			"c.like_count",
			"c.view_count",
			"c.created_at",
			"c.updated_at",
			"u.id",
			"u.username",
			"u.first_name",
			"u.last_name",
			"u.profile_photo_url",
		).
		From("combinations c").
		Join("users u ON u.id = c.user_id").
		Where(sq.And{
			sq.Eq{"c.id": combinationID},
			sq.Eq{"c.status": models.CombinationStatusActive},
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var fc models.FeedCombination
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&fc.ID,
		&fc.UserID,
		&fc.Name,
		&fc.Description,
		&fc.CoverImageURL,
		&fc.Style,
		&fc.Season,
		&fc.Published,
		&fc.Visibility,
		&fc.Status,
		&fc.LikeCount,
		&fc.ViewCount,
		&fc.CreatedAt,
		&fc.UpdatedAt,
		&fc.Owner.ID,
		&fc.Owner.Username,
		&fc.Owner.FirstName,
		&fc.Owner.LastName,
		&fc.Owner.ProfilePhotoURL,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrCombinationNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get combination: %w", op, err)
	}

	items, err := r.combinationItems(ctx, fc.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	fc.Items = items

	return &fc, nil
}

func (r *CombinationRepo) combinationItems(ctx context.Context, combinationID int64) ([]models.ClothingItem, error) {
	const op = "repository.combination_repository.combinationItems"

	query, args, err := r.sb.
		Select(
			"ci.id",
			"ci.user_id",
			"ci.name",
			"ci.brand",
			"ci.image_url",
			"ci.category",
			"ci.colors",
			"ci.style",
			"ci.gender",
			"ci.price",
			"ci.source",
			"ci.available",
			"ci.added_at",
		).
		From("clothing_items ci").
		Join("combination_items cmi ON ci.id = cmi.clothing_id").
		Where(sq.Eq{"cmi.combination_id": combinationID}).
		OrderBy("cmi.ordinal").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	defer rows.Close()

	var items []models.ClothingItem
	for rows.Next() {
		var it models.ClothingItem
		err := rows.Scan(
			&it.ID,
			&it.UserID,
			&it.Name,
			&it.Brand,
			&it.ImageURL,
			&it.Category,
			pq.Array(&it.Colors),
			&it.Style,
			&it.Gender,
			&it.Price,
			&it.Source,
			&it.Available,
			&it.AddedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return items, nil
}
