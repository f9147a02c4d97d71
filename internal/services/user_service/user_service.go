package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"stylemix/internal/domain/models"
	"stylemix/internal/lib/logger/sl"
	"stylemix/internal/repository"
	"stylemix/internal/storage"
	"stylemix/internal/transport/http/dto"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)

type TokenProvider interface {
	GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error)
}

type UserService struct {
	log    *slog.Logger
	repo   repository.UserRepository
	tokens TokenProvider
}

func NewUserService(log *slog.Logger, repo repository.UserRepository, tokens TokenProvider) *UserService {
	return &UserService{log: log, repo: repo, tokens: tokens}
}

func (s *UserService) RegisterNewUser(ctx context.Context, input dto.UserRegisterInput) (int64, error) {
	const op = "user_service.RegisterNewUser"
	log := s.log.With(
		slog.String("op", op),
		slog.String("username", input.Username),
	)

	log.Info("registering user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.SaveUser(ctx, input.ToDomain(passHash))
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exists", sl.Err(err))
			return 0, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		log.Error("failed to save user", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.Int64("user_id", id))
	return id, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	const op = "user_service.Login"
	log := s.log.With(
		slog.String("op", op),
		slog.String("username", username),
	)

	log.Info("attempting to login user")

	user, err := s.repo.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get user", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		log.Warn("failed to update last login", sl.Err(err))
	}

	pair, err := s.tokens.GenerateTokens(ctx, user)
	if err != nil {
		log.Error("failed to generate tokens", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in")
	return pair, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID int64) (*dto.UserProfileResponse, error) {
	const op = "user_service.GetUserByID"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("user_id", userID),
	)

	user, err := s.repo.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		log.Error("failed to get user", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &dto.UserProfileResponse{
		ID:              user.ID,
		Username:        user.Username,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		ProfilePhotoURL: user.ProfilePhotoURL,
		FavoriteStyle:   user.FavoriteStyle,
		Gender:          user.Gender,
		BirthDate:       user.BirthDate,
		Country:         user.Country,
		City:            user.City,
		RegisteredAt:    user.RegisteredAt,
	}, nil
}

func (s *UserService) UpdateProfilePhoto(ctx context.Context, userID int64, photoURL string) error {
	const op = "user_service.UpdateProfilePhoto"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("user_id", userID),
	)

	if err := s.repo.UpdateProfilePhoto(ctx, userID, photoURL); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		log.Error("failed to update profile photo", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("profile photo updated")
	return nil
}
