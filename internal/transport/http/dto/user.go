package dto

import (
	"time"

	"stylemix/internal/domain/models"
)

type UserRegisterInput struct {
	Username      string     `json:"username" validate:"required,min=3,max=50"`
	Email         string     `json:"email" validate:"omitempty,email"`
	Password      string     `json:"password" validate:"required,min=6,max=64"`
	FirstName     string     `json:"first_name,omitempty"`
	LastName      string     `json:"last_name,omitempty"`
	FavoriteStyle string     `json:"favorite_style,omitempty"`
	Gender        string     `json:"gender,omitempty"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Country       string     `json:"country,omitempty"`
	City          string     `json:"city,omitempty"`
}

func (input UserRegisterInput) ToDomain(passwordHash []byte) models.User {
	return models.User{
		Username:      input.Username,
		Email:         optional(input.Email),
		PasswordHash:  passwordHash,
		FirstName:     optional(input.FirstName),
		LastName:      optional(input.LastName),
		FavoriteStyle: optional(input.FavoriteStyle),
		Gender:        optional(input.Gender),
		BirthDate:     input.BirthDate,
		Phone:         optional(input.Phone),
		Country:       optional(input.Country),
		City:          optional(input.City),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type UserProfileResponse struct {
	ID              int64      `json:"id"`
	Username        string     `json:"username"`
	Email           *string    `json:"email,omitempty"`
	FirstName       *string    `json:"first_name,omitempty"`
	LastName        *string    `json:"last_name,omitempty"`
	ProfilePhotoURL *string    `json:"profile_photo_url,omitempty"`
	FavoriteStyle   *string    `json:"favorite_style,omitempty"`
	Gender          *string    `json:"gender,omitempty"`
	BirthDate       *time.Time `json:"birth_date,omitempty"`
	Country         *string    `json:"country,omitempty"`
	City            *string    `json:"city,omitempty"`
	RegisteredAt    time.Time  `json:"registered_at"`
}
