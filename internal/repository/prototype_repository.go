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

type PrototypeRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPrototypeRepository(db *pgxpool.Pool) *PrototypeRepo {
	return &PrototypeRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// CreatePrototype inserts the prototype header and its product rows in one
// transaction. Products arrive already filtered and carry their ordinals.
func (r *PrototypeRepo) CreatePrototype(ctx context.Context, proto models.Prototype, products []models.PrototypeProduct) (int64, error) {
	const op = "repository.prototype_repository.CreatePrototype"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer rollback(ctx, tx, op)

	now := time.Now().UTC()

	query, args, err := r.sb.Insert("combination_prototypes").
		Columns(
			"user_id",
			"name",
			"description",
			"cover_image_url",
			"created_at",
		).
		Values(
			proto.UserID,
			proto.Name,
			proto.Description,
			proto.CoverImageURL,
			now,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var prototypeID int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&prototypeID); err != nil {
		return 0, fmt.Errorf("%s: failed to insert prototype: %w", op, err)
	}

	for _, p := range products {
		query, args, err := r.sb.Insert("prototype_products").
			Columns(
				"prototype_id",
				"source_id",
				"name",
				"image_url",
				"category",
				"price",
				"ordinal",
			).
			Values(
				prototypeID,
				p.SourceID,
				p.Name,
				p.ImageURL,
				p.Category,
				p.Price,
				p.Ordinal,
			).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("%s: failed to build product query: %w", op, err)
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("%s: failed to insert prototype product: %w", op, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return prototypeID, nil
}

func (r *PrototypeRepo) ListPrototypes(ctx context.Context, userID int64) ([]models.Prototype, error) {
	const op = "repository.prototype_repository.ListPrototypes"

	query, args, err := r.sb.
		Select(
			"id",
			"user_id",
			"name",
			"description",
			"cover_image_url",
			"created_at",
		).
		From("combination_prototypes").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	defer rows.Close()

	var protos []models.Prototype
	for rows.Next() {
		var p models.Prototype
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Name,
			&p.Description,
			&p.CoverImageURL,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		protos = append(protos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return protos, nil
}

func (r *PrototypeRepo) PrototypeByID(ctx context.Context, prototypeID int64) (*models.Prototype, []models.PrototypeProduct, error) {
	const op = "repository.prototype_repository.PrototypeByID"

	query, args, err := r.sb.
		Select(
			"id",
			"user_id",
			"name",
			"description",
			"cover_image_url",
			"created_at",
		).
		From("combination_prototypes").
		Where(sq.Eq{"id": prototypeID}).
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var proto models.Prototype
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&proto.ID,
		&proto.UserID,
		&proto.Name,
		&proto.Description,
		&proto.CoverImageURL,
		&proto.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, fmt.Errorf("%s: %w", op, storage.ErrPrototypeNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: failed to get prototype: %w", op, err)
	}

	prodQuery, prodArgs, err := r.sb.
		Select(
			"id",
			"prototype_id",
			"source_id",
			"name",
			"image_url",
			"category",
			"price",
			"ordinal",
		).
		From("prototype_products").
		Where(sq.Eq{"prototype_id": prototypeID}).
		OrderBy("ordinal").
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: failed to build products query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, prodQuery, prodArgs...)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: failed to execute products query: %w", op, err)
	}
	defer rows.Close()

	var products []models.PrototypeProduct
	for rows.Next() {
		var p models.PrototypeProduct
		err := rows.Scan(
			&p.ID,
			&p.PrototypeID,
			&p.SourceID,
			&p.Name,
			&p.ImageURL,
			&p.Category,
			&p.Price,
			&p.Ordinal,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return &proto, products, nil
}
