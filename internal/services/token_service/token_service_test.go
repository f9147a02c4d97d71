package services

import (
	"context"
	"testing"
	"time"

	"stylemix/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) SaveRefreshToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	args := m.Called(ctx, userID, token, ttl)
	return args.Error(0)
}

func (m *MockTokenRepository) GetRefreshToken(ctx context.Context, userID, token string) (bool, error) {
	args := m.Called(ctx, userID, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepository) DeleteRefreshToken(ctx context.Context, userID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteAllUserTokens(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestGenerateTokens(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTokenRepository)
	svc := NewTokenService(repo, "test-secret")

	repo.On("SaveRefreshToken", ctx, "42", mock.AnythingOfType("string"), RefreshTokenExpire).Return(nil)

	pair, err := svc.GenerateTokens(ctx, models.User{ID: 42, Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), pair.UserID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	token, err := jwt.Parse(pair.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "42", claims["uid"])
	assert.Equal(t, "alice", claims["username"])

	repo.AssertExpectations(t)
}

func TestRefreshTokens_RotatesAndConsumes(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTokenRepository)
	svc := NewTokenService(repo, "test-secret")

	repo.On("SaveRefreshToken", ctx, "42", mock.AnythingOfType("string"), RefreshTokenExpire).Return(nil)

	pair, err := svc.GenerateTokens(ctx, models.User{ID: 42, Username: "alice"})
	require.NoError(t, err)

	repo.On("GetRefreshToken", ctx, "42", pair.RefreshToken).Return(true, nil)
	repo.On("DeleteRefreshToken", ctx, "42", pair.RefreshToken).Return(nil)

	fresh, err := svc.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), fresh.UserID)

	repo.AssertCalled(t, "DeleteRefreshToken", ctx, "42", pair.RefreshToken)
}

func TestRefreshTokens_RejectsUnknownToken(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTokenRepository)
	svc := NewTokenService(repo, "test-secret")

	repo.On("SaveRefreshToken", ctx, "42", mock.AnythingOfType("string"), RefreshTokenExpire).Return(nil)

	pair, err := svc.GenerateTokens(ctx, models.User{ID: 42, Username: "alice"})
	require.NoError(t, err)

	repo.On("GetRefreshToken", ctx, "42", pair.RefreshToken).Return(false, nil)

	_, err = svc.RefreshTokens(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenNotInStorage)
	repo.AssertNotCalled(t, "DeleteRefreshToken", ctx, "42", pair.RefreshToken)
}

func TestRefreshTokens_RejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTokenRepository)
	svc := NewTokenService(repo, "test-secret")

	other := NewTokenService(repo, "other-secret")
	repo.On("SaveRefreshToken", ctx, "42", mock.AnythingOfType("string"), RefreshTokenExpire).Return(nil)

	pair, err := other.GenerateTokens(ctx, models.User{ID: 42, Username: "alice"})
	require.NoError(t, err)

	_, err = svc.RefreshTokens(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokens_RejectsGarbage(t *testing.T) {
	repo := new(MockTokenRepository)
	svc := NewTokenService(repo, "test-secret")

	_, err := svc.RefreshTokens(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTokenRepository)
	svc := NewTokenService(repo, "test-secret")

	repo.On("DeleteAllUserTokens", ctx, "42").Return(nil)

	require.NoError(t, svc.Logout(ctx, 42))
	repo.AssertExpectations(t)
}
