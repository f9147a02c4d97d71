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

type UserRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewUserRepository(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *UserRepo) SaveUser(ctx context.Context, user models.User) (int64, error) {
	const op = "repository.user_repository.SaveUser"

	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)`,
		user.Username, user.Email).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to check user existence: %w", op, err)
	}
	if exists {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
	}

	query, args, err := r.sb.Insert("users").
		Columns(
			"username",
			"email",
			"password_hash",
			"first_name",
			"last_name",
			"profile_photo_url",
			"favorite_style",
			"gender",
			"birth_date",
			"phone",
			"country",
			"city",
			"registered_at",
			"active",
		).
		Values(
			user.Username,
			user.Email,
			user.PasswordHash,
			user.FirstName,
			user.LastName,
			user.ProfilePhotoURL,
			user.FavoriteStyle,
			user.Gender,
			user.BirthDate,
			user.Phone,
			user.Country,
			user.City,
			time.Now().UTC(),
			true,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: failed to save user: %w", op, err)
	}

	return id, nil
}

func (r *UserRepo) UserByUsername(ctx context.Context, username string) (models.User, error) {
	const op = "repository.user_repository.UserByUsername"

	return r.userWhere(ctx, op, sq.Eq{"username": username})
}

func (r *UserRepo) UserByID(ctx context.Context, userID int64) (models.User, error) {
	const op = "repository.user_repository.UserByID"

	return r.userWhere(ctx, op, sq.Eq{"id": userID})
}

func (r *UserRepo) userWhere(ctx context.Context, op string, pred sq.Eq) (models.User, error) {
	query, args, err := r.sb.
		Select(
			"id",
			"username",
			"email",
			"password_hash",
			"first_name",
			"last_name",
			"profile_photo_url",
			"favorite_style",
			"gender",
			"birth_date",
			"phone",
			"country",
			"city",
			"registered_at",
			"last_login_at",
			"active",
		).
		From("users").
		Where(pred).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var user models.User
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.ProfilePhotoURL,
		&user.FavoriteStyle,
		&user.Gender,
		&user.BirthDate,
		&user.Phone,
		&user.Country,
		&user.City,
		&user.RegisteredAt,
		&user.LastLoginAt,
		&user.Active,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return user, nil
}

func (r *UserRepo) UpdateProfilePhoto(ctx context.Context, userID int64, photoURL string) error {
	const op = "repository.user_repository.UpdateProfilePhoto"

	query, args, err := r.sb.Update("users").
		Set("profile_photo_url", photoURL).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to update profile photo: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}

	return nil
}

func (r *UserRepo) TouchLastLogin(ctx context.Context, userID int64) error {
	const op = "repository.user_repository.TouchLastLogin"

	query, args, err := r.sb.Update("users").
		Set("last_login_at", time.Now().UTC()).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to update last login: %w", op, err)
	}

	return nil
}
