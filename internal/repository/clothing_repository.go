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
	"github.com/lib/pq"
)

type ClothingRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewClothingRepository(db *pgxpool.Pool) *ClothingRepo {
	return &ClothingRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ClothingRepo) CreateClothing(ctx context.Context, item models.ClothingItem) (models.ClothingItem, error) {
	const op = "repository.clothing_repository.CreateClothing"

	now := time.Now().UTC()

	query, args, err := r.sb.Insert("clothing_items").
		Columns(
			"user_id",
			"name",
			"brand",
			"image_url",
			"category",
			"colors",
			"style",
			"gender",
			"price",
			"source",
			"available",
			"added_at",
		).
		Values(
			item.UserID,
			item.Name,
			item.Brand,
			item.ImageURL,
			item.Category,
			pq.Array(item.Colors),
			item.Style,
			item.Gender,
			item.Price,
			item.Source,
			true,
			now,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.ClothingItem{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&item.ID); err != nil {
		return models.ClothingItem{}, fmt.Errorf("%s: failed to create clothing item: %w", op, err)
	}

	item.Available = true
	item.AddedAt = now

	return item, nil
}

func (r *ClothingRepo) ListWardrobe(ctx context.Context, userID int64, category string, limit, offset int) ([]models.ClothingItem, error) {
	const op = "repository.clothing_repository.ListWardrobe"

	where := sq.And{
		sq.Eq{"user_id": userID},
		sq.Eq{"available": true},
	}
	if category != "" {
		where = append(where, sq.Eq{"category": category})
	}

	query, args, err := r.sb.
		Select(
			"id",
			"user_id",
			"name",
			"brand",
			"image_url",
			"category",
			"colors",
			"style",
			"gender",
			"price",
			"source",
			"available",
			"added_at",
		).
		From("clothing_items").
		Where(where).
		OrderBy("added_at DESC").
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

// SoftDeleteClothing marks the item unavailable instead of removing the row,
// so combinations that reference it keep resolving. Returns the item name.
func (r *ClothingRepo) SoftDeleteClothing(ctx context.Context, clothingID, userID int64) (string, error) {
	const op = "repository.clothing_repository.SoftDeleteClothing"

	var name string
	err := r.db.QueryRow(ctx,
		`SELECT name FROM clothing_items WHERE id = $1 AND user_id = $2 AND available = true`,
		clothingID, userID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", op, storage.ErrClothingNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: failed to get clothing item: %w", op, err)
	}

	query, args, err := r.sb.Update("clothing_items").
		Set("available", false).
		Where(sq.Eq{"id": clothingID, "user_id": userID}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return "", fmt.Errorf("%s: failed to delete clothing item: %w", op, err)
	}

	return name, nil
}
