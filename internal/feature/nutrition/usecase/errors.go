package usecase

import (
	"errors"
	"fmt"

	"health_backend/internal/shared/apperr"
)

var (
	// ErrFoodNotFound is returned when the food database has no food with the requested id.
	ErrFoodNotFound = fmt.Errorf("food %w", apperr.ErrNotFound)

	// ErrFavoriteNotFound is returned when a favorite does not exist or belongs to another user.
	ErrFavoriteNotFound = fmt.Errorf("favorite %w", apperr.ErrNotFound)

	// ErrDuplicateFavorite is returned by FavoriteRepository.Create when the
	// user already saved the food.
	ErrDuplicateFavorite = errors.New("favorite already exists")
)
