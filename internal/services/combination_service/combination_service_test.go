package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"stylemix/internal/domain/models"
	"stylemix/internal/storage"
	"stylemix/internal/transport/http/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCombinationRepository struct {
	mock.Mock
}

func (m *MockCombinationRepository) CreateCombination(ctx context.Context, combo models.Combination, itemIDs []*int64) (int64, error) {
	args := m.Called(ctx, combo, itemIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCombinationRepository) ListFeed(ctx context.Context, excludeUserID *int64, limit, offset int) ([]models.FeedCombination, int, error) {
	args := m.Called(ctx, excludeUserID, limit, offset)
	return args.Get(0).([]models.FeedCombination), args.Int(1), args.Error(2)
}

func (m *MockCombinationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.FeedCombination, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]models.FeedCombination), args.Int(1), args.Error(2)
}

func (m *MockCombinationRepository) CombinationByID(ctx context.Context, combinationID int64) (*models.FeedCombination, error) {
	args := m.Called(ctx, combinationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeedCombination), args.Error(1)
}

type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) ToggleLike(ctx context.Context, combinationID, userID int64) (bool, error) {
	args := m.Called(ctx, combinationID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) LikeStatus(ctx context.Context, combinationID, userID int64) (bool, error) {
	args := m.Called(ctx, combinationID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) ListComments(ctx context.Context, combinationID int64, limit, offset int) ([]models.Comment, error) {
	args := m.Called(ctx, combinationID, limit, offset)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockEngagementRepository) AddComment(ctx context.Context, combinationID, userID int64, text string) (*models.Comment, error) {
	args := m.Called(ctx, combinationID, userID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func newTestService() (*CombinationService, *MockCombinationRepository, *MockEngagementRepository) {
	repo := new(MockCombinationRepository)
	engagement := new(MockEngagementRepository)
	return NewCombinationService(slog.Default(), repo, engagement), repo, engagement
}

func TestCreateCombination_Validation(t *testing.T) {
	ctx := context.Background()

	one := int64(1)
	two := int64(2)

	tests := []struct {
		name string
		req  dto.CreateCombinationRequest
	}{
		{
			name: "no items",
			req:  dto.CreateCombinationRequest{Name: "Look"},
		},
		{
			name: "multi item without name",
			req:  dto.CreateCombinationRequest{ItemIDs: []*int64{&one, &two}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService()

			_, err := svc.CreateCombination(ctx, 7, tt.req)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			repo.AssertNotCalled(t, "CreateCombination")
		})
	}
}

func TestCreateCombination_PassesItemsThroughUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	one := int64(1)
	three := int64(3)
	itemIDs := []*int64{&one, nil, &three}

	created := &models.FeedCombination{
		Combination: models.Combination{ID: 10, UserID: 7, Name: "Look"},
	}

	repo.On("CreateCombination", ctx, mock.MatchedBy(func(c models.Combination) bool {
		return c.UserID == 7 && c.Name == "Look"
	}), itemIDs).Return(int64(10), nil)
	repo.On("CombinationByID", ctx, int64(10)).Return(created, nil)

	got, err := svc.CreateCombination(ctx, 7, dto.CreateCombinationRequest{
		Name:    "Look",
		ItemIDs: itemIDs,
	})
	require.NoError(t, err)
	assert.Equal(t, created, got)
	repo.AssertExpectations(t)
}

func TestCreateCombination_WhitespaceNameUsedVerbatim(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	one := int64(1)
	two := int64(2)
	created := &models.FeedCombination{
		Combination: models.Combination{ID: 12, Name: " "},
	}

	repo.On("CreateCombination", ctx, mock.MatchedBy(func(c models.Combination) bool {
		return c.Name == " "
	}), []*int64{&one, &two}).Return(int64(12), nil)
	repo.On("CombinationByID", ctx, int64(12)).Return(created, nil)

	_, err := svc.CreateCombination(ctx, 7, dto.CreateCombinationRequest{
		Name:    " ",
		ItemIDs: []*int64{&one, &two},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateCombination_SingleItemNameDerivationDelegated(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	one := int64(1)
	created := &models.FeedCombination{
		Combination: models.Combination{ID: 11, Name: "Denim Jacket"},
	}

	repo.On("CreateCombination", ctx, mock.MatchedBy(func(c models.Combination) bool {
		return c.Name == ""
	}), []*int64{&one}).Return(int64(11), nil)
	repo.On("CombinationByID", ctx, int64(11)).Return(created, nil)

	got, err := svc.CreateCombination(ctx, 7, dto.CreateCombinationRequest{ItemIDs: []*int64{&one}})
	require.NoError(t, err)
	assert.Equal(t, "Denim Jacket", got.Name)
}

func TestCreateCombination_NameNotDerivableMapsToInvalidRequest(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	one := int64(1)
	repo.On("CreateCombination", ctx, mock.Anything, []*int64{&one}).
		Return(int64(0), storage.ErrNameNotDerivable)

	_, err := svc.CreateCombination(ctx, 7, dto.CreateCombinationRequest{ItemIDs: []*int64{&one}})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreateCombination_RepositoryErrorPassedThrough(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	one := int64(1)
	boom := errors.New("connection reset")
	repo.On("CreateCombination", ctx, mock.Anything, mock.Anything).Return(int64(0), boom)

	_, err := svc.CreateCombination(ctx, 7, dto.CreateCombinationRequest{Name: "Look", ItemIDs: []*int64{&one}})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidRequest)
	assert.ErrorIs(t, err, boom)
}

func TestListFeed_NormalizesPaging(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	repo.On("ListFeed", ctx, (*int64)(nil), 20, 0).Return([]models.FeedCombination{}, 0, nil)

	resp, err := svc.ListFeed(ctx, nil, -3, 500)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PerPage)
	repo.AssertExpectations(t)
}

func TestGetCombination_IncludesLikeStateForViewer(t *testing.T) {
	ctx := context.Background()
	svc, repo, engagement := newTestService()

	combo := &models.FeedCombination{Combination: models.Combination{ID: 5}}
	viewer := int64(9)

	repo.On("CombinationByID", ctx, int64(5)).Return(combo, nil)
	engagement.On("LikeStatus", ctx, int64(5), viewer).Return(true, nil)

	resp, err := svc.GetCombination(ctx, 5, &viewer)
	require.NoError(t, err)
	assert.True(t, resp.LikedByUser)
}

func TestGetCombination_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	repo.On("CombinationByID", ctx, int64(404)).Return(nil, storage.ErrCombinationNotFound)

	_, err := svc.GetCombination(ctx, 404, nil)
	assert.ErrorIs(t, err, storage.ErrCombinationNotFound)
}
