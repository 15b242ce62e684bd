package usecase

import (
	"errors"
	"fmt"

	"health_backend/internal/shared/apperr"
)

var (
	// ErrWeightNotFound is returned when a weight record does not exist or belongs to another user.
	ErrWeightNotFound = fmt.Errorf("weight record %w", apperr.ErrNotFound)

	// ErrGoalNotFound is returned by GoalRepository.FindByUser when the user has no goal.
	ErrGoalNotFound = errors.New("goal not found")
)
