package storage

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrClothingNotFound    = errors.New("clothing item not found")
	ErrCombinationNotFound = errors.New("combination not found")
	ErrPrototypeNotFound   = errors.New("prototype not found")
	ErrNameNotDerivable    = errors.New("combination name cannot be derived")
)
