package services

import (
	"context"
	"log/slog"
	"testing"

	"stylemix/internal/domain/models"
	"stylemix/internal/transport/http/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPrototypeRepository struct {
	mock.Mock
}

func (m *MockPrototypeRepository) CreatePrototype(ctx context.Context, proto models.Prototype, products []models.PrototypeProduct) (int64, error) {
	args := m.Called(ctx, proto, products)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPrototypeRepository) ListPrototypes(ctx context.Context, userID int64) ([]models.Prototype, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Prototype), args.Error(1)
}

func (m *MockPrototypeRepository) PrototypeByID(ctx context.Context, prototypeID int64) (*models.Prototype, []models.PrototypeProduct, error) {
	args := m.Called(ctx, prototypeID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Prototype), args.Get(1).([]models.PrototypeProduct), args.Error(2)
}

func validProduct(id, name string) dto.PrototypeProductInput {
	return dto.PrototypeProductInput{SourceID: id, Name: name, ImageURL: "https://img/" + id + ".jpg"}
}

func TestCreatePrototype_NameRequired(t *testing.T) {
	repo := new(MockPrototypeRepository)
	svc := NewPrototypeService(slog.Default(), repo)

	_, err := svc.CreatePrototype(context.Background(), 1, dto.CreatePrototypeRequest{
		Name:     "  ",
		Products: []dto.PrototypeProductInput{validProduct("a", "A"), validProduct("b", "B")},
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	repo.AssertNotCalled(t, "CreatePrototype")
}

func TestCreatePrototype_SkipsInvalidKeepingOrdinals(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPrototypeRepository)
	svc := NewPrototypeService(slog.Default(), repo)

	price := 24.5
	req := dto.CreatePrototypeRequest{
		Name: "Summer look",
		Products: []dto.PrototypeProductInput{
			{SourceID: "store-1", Name: "Shirt", ImageURL: "https://img/1.jpg", Price: &price},
			{SourceID: "", Name: "broken", ImageURL: "https://img/x.jpg"},
			{SourceID: "store-3", Name: "Shoes", ImageURL: "https://img/3.jpg"},
		},
	}

	repo.On("CreatePrototype", ctx, mock.Anything, mock.MatchedBy(func(products []models.PrototypeProduct) bool {
		return len(products) == 2 &&
			products[0].Ordinal == 1 &&
			products[1].Ordinal == 3 &&
			products[0].Price == "24.5" &&
			products[1].Price == models.PriceNotAvailable &&
			products[1].Category == models.DefaultCategory
	})).Return(int64(8), nil)
	repo.On("PrototypeByID", ctx, int64(8)).Return(
		&models.Prototype{ID: 8, Name: "Summer look"},
		[]models.PrototypeProduct{{Ordinal: 1}, {Ordinal: 3}},
		nil,
	)

	resp, err := svc.CreatePrototype(ctx, 1, req)
	require.NoError(t, err)
	assert.Len(t, resp.Products, 2)
	repo.AssertExpectations(t)
}

func TestCreatePrototype_TooFewProducts(t *testing.T) {
	repo := new(MockPrototypeRepository)
	svc := NewPrototypeService(slog.Default(), repo)

	_, err := svc.CreatePrototype(context.Background(), 1, dto.CreatePrototypeRequest{
		Name:     "Thin",
		Products: []dto.PrototypeProductInput{validProduct("a", "A")},
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	repo.AssertNotCalled(t, "CreatePrototype")
}

func TestCreatePrototype_MinimumCountsSkippedEntries(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPrototypeRepository)
	svc := NewPrototypeService(slog.Default(), repo)

	// Two submitted entries satisfy the minimum even when one of them is
	// invalid and gets skipped; only the surviving product is stored.
	repo.On("CreatePrototype", ctx, mock.Anything, mock.MatchedBy(func(products []models.PrototypeProduct) bool {
		return len(products) == 1 && products[0].SourceID == "a" && products[0].Ordinal == 1
	})).Return(int64(21), nil)
	repo.On("PrototypeByID", ctx, int64(21)).Return(
		&models.Prototype{ID: 21, Name: "Half"},
		[]models.PrototypeProduct{{SourceID: "a", Ordinal: 1}},
		nil,
	)

	resp, err := svc.CreatePrototype(ctx, 1, dto.CreatePrototypeRequest{
		Name: "Half",
		Products: []dto.PrototypeProductInput{
			validProduct("a", "A"),
			{SourceID: "", Name: "broken", ImageURL: "https://img/b.jpg"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Products, 1)
	repo.AssertExpectations(t)
}

func TestCreatePrototype_CoverFallsBackToFirstProduct(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPrototypeRepository)
	svc := NewPrototypeService(slog.Default(), repo)

	repo.On("CreatePrototype", ctx, mock.MatchedBy(func(p models.Prototype) bool {
		return p.CoverImageURL != nil && *p.CoverImageURL == "https://img/a.jpg"
	}), mock.Anything).Return(int64(12), nil)
	repo.On("PrototypeByID", ctx, int64(12)).Return(
		&models.Prototype{ID: 12}, []models.PrototypeProduct{}, nil,
	)

	_, err := svc.CreatePrototype(ctx, 1, dto.CreatePrototypeRequest{
		Name:     "Look",
		Products: []dto.PrototypeProductInput{validProduct("a", "A"), validProduct("b", "B")},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreatePrototype_CoverFromSkippedFirstEntry(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPrototypeRepository)
	svc := NewPrototypeService(slog.Default(), repo)

	// The first submitted entry supplies the cover even though it is
	// missing a source id and never becomes a product row.
	repo.On("CreatePrototype", ctx, mock.MatchedBy(func(p models.Prototype) bool {
		return p.CoverImageURL != nil && *p.CoverImageURL == "https://img/skipped.jpg"
	}), mock.Anything).Return(int64(14), nil)
	repo.On("PrototypeByID", ctx, int64(14)).Return(
		&models.Prototype{ID: 14}, []models.PrototypeProduct{}, nil,
	)

	_, err := svc.CreatePrototype(ctx, 1, dto.CreatePrototypeRequest{
		Name: "Look",
		Products: []dto.PrototypeProductInput{
			{SourceID: "", Name: "broken", ImageURL: "https://img/skipped.jpg"},
			validProduct("b", "B"),
			validProduct("c", "C"),
		},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreatePrototype_CoverNilWhenFirstEntryHasNoImage(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPrototypeRepository)
	svc := NewPrototypeService(slog.Default(), repo)

	repo.On("CreatePrototype", ctx, mock.MatchedBy(func(p models.Prototype) bool {
		return p.CoverImageURL == nil
	}), mock.Anything).Return(int64(15), nil)
	repo.On("PrototypeByID", ctx, int64(15)).Return(
		&models.Prototype{ID: 15}, []models.PrototypeProduct{}, nil,
	)

	_, err := svc.CreatePrototype(ctx, 1, dto.CreatePrototypeRequest{
		Name: "Look",
		Products: []dto.PrototypeProductInput{
			{SourceID: "a", Name: "No image", ImageURL: ""},
			validProduct("b", "B"),
			validProduct("c", "C"),
		},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreatePrototype_ExplicitCoverWins(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPrototypeRepository)
	svc := NewPrototypeService(slog.Default(), repo)

	repo.On("CreatePrototype", ctx, mock.MatchedBy(func(p models.Prototype) bool {
		return p.CoverImageURL != nil && *p.CoverImageURL == "https://cover/custom.jpg"
	}), mock.Anything).Return(int64(13), nil)
	repo.On("PrototypeByID", ctx, int64(13)).Return(
		&models.Prototype{ID: 13}, []models.PrototypeProduct{}, nil,
	)

	_, err := svc.CreatePrototype(ctx, 1, dto.CreatePrototypeRequest{
		Name:          "Look",
		CoverImageURL: "https://cover/custom.jpg",
		Products:      []dto.PrototypeProductInput{validProduct("a", "A"), validProduct("b", "B")},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
