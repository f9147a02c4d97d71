package models

import (
	"time"
)

type User struct {
	ID              int64      `db:"id" json:"id"`
	Username        string     `db:"username" json:"username"`
	Email           *string    `db:"email" json:"email,omitempty"`
	PasswordHash    []byte     `db:"password_hash" json:"-"`
	FirstName       *string    `db:"first_name" json:"first_name,omitempty"`
	LastName        *string    `db:"last_name" json:"last_name,omitempty"`
	ProfilePhotoURL *string    `db:"profile_photo_url" json:"profile_photo_url,omitempty"`
	FavoriteStyle   *string    `db:"favorite_style" json:"favorite_style,omitempty"`
	Gender          *string    `db:"gender" json:"gender,omitempty"`
	BirthDate       *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Phone           *string    `db:"phone" json:"phone,omitempty"`
	Country         *string    `db:"country" json:"country,omitempty"`
	City            *string    `db:"city" json:"city,omitempty"`
	RegisteredAt    time.Time  `db:"registered_at" json:"registered_at"`
	LastLoginAt     *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	Active          bool       `db:"active" json:"active"`
}

// UserSummary is the owner block embedded in feed and comment payloads.
type UserSummary struct {
	ID              int64   `db:"id" json:"id"`
	Username        string  `db:"username" json:"username"`
	FirstName       *string `db:"first_name" json:"first_name,omitempty"`
	LastName        *string `db:"last_name" json:"last_name,omitempty"`
	ProfilePhotoURL *string `db:"profile_photo_url" json:"profile_photo_url,omitempty"`
}

type TokenPair struct {
	UserID       int64  `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
