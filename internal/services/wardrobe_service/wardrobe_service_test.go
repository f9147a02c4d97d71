package services

import (
	"context"
	"log/slog"
	"testing"

	"stylemix/internal/domain/models"
	"stylemix/internal/storage"
	"stylemix/internal/transport/http/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClothingRepository struct {
	mock.Mock
}

func (m *MockClothingRepository) CreateClothing(ctx context.Context, item models.ClothingItem) (models.ClothingItem, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(models.ClothingItem), args.Error(1)
}

func (m *MockClothingRepository) ListWardrobe(ctx context.Context, userID int64, category string, limit, offset int) ([]models.ClothingItem, error) {
	args := m.Called(ctx, userID, category, limit, offset)
	return args.Get(0).([]models.ClothingItem), args.Error(1)
}

func (m *MockClothingRepository) SoftDeleteClothing(ctx context.Context, clothingID, userID int64) (string, error) {
	args := m.Called(ctx, clothingID, userID)
	return args.String(0), args.Error(1)
}

func TestAddClothing(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClothingRepository)
	svc := NewWardrobeService(slog.Default(), repo)

	t.Run("defaults applied", func(t *testing.T) {
		repo.On("CreateClothing", ctx, mock.MatchedBy(func(item models.ClothingItem) bool {
			return item.UserID == 7 &&
				item.Name == "Blue Shirt" &&
				item.Category == models.DefaultCategory &&
				item.Brand == nil &&
				item.Source == models.SourceUser
		})).Return(models.ClothingItem{ID: 1, Name: "Blue Shirt"}, nil).Once()

		created, err := svc.AddClothing(ctx, 7, dto.AddClothingRequest{
			Name:     "  Blue Shirt  ",
			ImageURL: "http://img/shirt.jpg",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
	})

	t.Run("name required", func(t *testing.T) {
		_, err := svc.AddClothing(ctx, 7, dto.AddClothingRequest{Name: "   ", ImageURL: "http://img/x.jpg"})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("image required", func(t *testing.T) {
		_, err := svc.AddClothing(ctx, 7, dto.AddClothingRequest{Name: "Shirt"})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestListWardrobe_NormalizesPaging(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClothingRepository)
	svc := NewWardrobeService(slog.Default(), repo)

	repo.On("ListWardrobe", ctx, int64(7), "Shoes", 50, 0).
		Return([]models.ClothingItem{{ID: 1}}, nil)

	resp, err := svc.ListWardrobe(ctx, 7, "Shoes", 0, 1000)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	repo.AssertExpectations(t)
}

func TestRemoveClothing(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClothingRepository)
	svc := NewWardrobeService(slog.Default(), repo)

	repo.On("SoftDeleteClothing", ctx, int64(3), int64(7)).Return("Blue Shirt", nil)
	repo.On("SoftDeleteClothing", ctx, int64(99), int64(7)).Return("", storage.ErrClothingNotFound)

	resp, err := svc.RemoveClothing(ctx, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, "Blue Shirt", resp.Name)

	_, err = svc.RemoveClothing(ctx, 7, 99)
	assert.ErrorIs(t, err, ErrClothingNotFound)
}
