package repository

import (
	"context"
	"time"

	"stylemix/internal/domain/models"
)

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (int64, error)
	UserByUsername(ctx context.Context, username string) (models.User, error)
	UserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateProfilePhoto(ctx context.Context, userID int64, photoURL string) error
	TouchLastLogin(ctx context.Context, userID int64) error
}

type ClothingRepository interface {
	CreateClothing(ctx context.Context, item models.ClothingItem) (models.ClothingItem, error)
	ListWardrobe(ctx context.Context, userID int64, category string, limit, offset int) ([]models.ClothingItem, error)
	SoftDeleteClothing(ctx context.Context, clothingID, userID int64) (string, error)
}

type CombinationRepository interface {
	CreateCombination(ctx context.Context, combo models.Combination, itemIDs []*int64) (int64, error)
	ListFeed(ctx context.Context, excludeUserID *int64, limit, offset int) ([]models.FeedCombination, int, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.FeedCombination, int, error)
	CombinationByID(ctx context.Context, combinationID int64) (*models.FeedCombination, error)
}

type EngagementRepository interface {
	ToggleLike(ctx context.Context, combinationID, userID int64) (bool, error)
	LikeStatus(ctx context.Context, combinationID, userID int64) (bool, error)
	ListComments(ctx context.Context, combinationID int64, limit, offset int) ([]models.Comment, error)
	AddComment(ctx context.Context, combinationID, userID int64, text string) (*models.Comment, error)
}

type PrototypeRepository interface {
	CreatePrototype(ctx context.Context, proto models.Prototype, products []models.PrototypeProduct) (int64, error)
	ListPrototypes(ctx context.Context, userID int64) ([]models.Prototype, error)
	PrototypeByID(ctx context.Context, prototypeID int64) (*models.Prototype, []models.PrototypeProduct, error)
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error
	GetRefreshToken(ctx context.Context, userID, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID, token string) error
	DeleteAllUserTokens(ctx context.Context, userID string) error
}
