package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"stylemix/internal/domain/models"
	"stylemix/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidTokenClaims = errors.New("invalid token claims")
	ErrTokenNotInStorage  = errors.New("token not found in storage")
)

const (
	AccessTokenExpire  = 15 * time.Minute
	RefreshTokenExpire = 7 * 24 * time.Hour
)

type TokenService struct {
	repo   repository.TokenRepository
	secret []byte
}

func NewTokenService(repo repository.TokenRepository, secret string) *TokenService {
	return &TokenService{repo: repo, secret: []byte(secret)}
}

func (s *TokenService) GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error) {
	accessToken, err := s.newToken(user, AccessTokenExpire)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.newToken(user, RefreshTokenExpire)
	if err != nil {
		return nil, err
	}

	uid := strconv.FormatInt(user.ID, 10)
	if err := s.repo.SaveRefreshToken(ctx, uid, refreshToken, RefreshTokenExpire); err != nil {
		return nil, err
	}

	return &models.TokenPair{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshTokens rotates the pair: the presented refresh token must both
// verify and still exist in storage, and is consumed on use.
func (s *TokenService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidTokenClaims
	}

	uid, ok := claims["uid"].(string)
	if !ok {
		return nil, ErrInvalidTokenClaims
	}
	username, _ := claims["username"].(string)

	exists, err := s.repo.GetRefreshToken(ctx, uid, refreshToken)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTokenNotInStorage
	}

	if err := s.repo.DeleteRefreshToken(ctx, uid, refreshToken); err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(uid, 10, 64)
	if err != nil {
		return nil, ErrInvalidTokenClaims
	}

	return s.GenerateTokens(ctx, models.User{ID: userID, Username: username})
}

func (s *TokenService) Logout(ctx context.Context, userID int64) error {
	return s.repo.DeleteAllUserTokens(ctx, strconv.FormatInt(userID, 10))
}

func (s *TokenService) newToken(user models.User, duration time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["uid"] = strconv.FormatInt(user.ID, 10)
	claims["username"] = user.Username
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(duration).Unix()

	return token.SignedString(s.secret)
}
