// Package usecase implements the business logic for the supplements feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"health_backend/internal/feature/supplements/domain/entity"
	"health_backend/internal/shared/apperr"
)

const (
	maxNameLength   = 100
	maxDetailLength = 50

	ReasonMissingFields = "missing fields"
	ReasonTooLong       = "too long"
)

// ErrSupplementNotFound is returned when a supplement does not exist or belongs to another user.
var ErrSupplementNotFound = fmt.Errorf("supplement %w", apperr.ErrNotFound)

// SupplementRepository abstracts persistence of supplements.
// Every method is scoped to the owning user.
type SupplementRepository interface {
	Create(ctx context.Context, s *entity.Supplement) error
	// Update overwrites the editable fields of s. It returns ErrSupplementNotFound
	// when no row matches (s.ID, s.UserID).
	Update(ctx context.Context, s *entity.Supplement) error
	Delete(ctx context.Context, userID, id uint) error
	// ListByUser returns supplements newest first.
	ListByUser(ctx context.Context, userID uint) ([]entity.Supplement, error)
	// Search matches term case-insensitively against name, dosage, frequency and notes.
	Search(ctx context.Context, userID uint, term string) ([]entity.Supplement, error)
}

// SupplementInput carries the user-editable fields.
type SupplementInput struct {
	Name      string
	Dosage    string
	Frequency string
	Notes     string
}

func (in SupplementInput) normalize() (SupplementInput, error) {
	out := SupplementInput{
		Name:      strings.TrimSpace(in.Name),
		Dosage:    strings.TrimSpace(in.Dosage),
		Frequency: strings.TrimSpace(in.Frequency),
		Notes:     strings.TrimSpace(in.Notes),
	}
	if out.Name == "" {
		return out, apperr.Validation(ReasonMissingFields)
	}
	if utf8.RuneCountInString(out.Name) > maxNameLength ||
		utf8.RuneCountInString(out.Dosage) > maxDetailLength ||
		utf8.RuneCountInString(out.Frequency) > maxDetailLength {
		return out, apperr.Validation(ReasonTooLong)
	}
	return out, nil
}

type supplementsUsecase struct {
	repo SupplementRepository
}

// NewSupplementsUsecase creates a supplementsUsecase.
func NewSupplementsUsecase(repo SupplementRepository) *supplementsUsecase {
	return &supplementsUsecase{repo: repo}
}

// Add creates a supplement for userID.
func (u *supplementsUsecase) Add(ctx context.Context, userID uint, in SupplementInput) (*entity.Supplement, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	s := &entity.Supplement{
		UserID:    userID,
		Name:      in.Name,
		Dosage:    in.Dosage,
		Frequency: in.Frequency,
		Notes:     in.Notes,
	}
	if err := u.repo.Create(ctx, s); err != nil {
		return nil, apperr.Storage("create supplement", err)
	}
	return s, nil
}

// Update replaces the fields of one of userID's supplements.
func (u *supplementsUsecase) Update(ctx context.Context, userID, id uint, in SupplementInput) (*entity.Supplement, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	s := &entity.Supplement{
		ID:        id,
		UserID:    userID,
		Name:      in.Name,
		Dosage:    in.Dosage,
		Frequency: in.Frequency,
		Notes:     in.Notes,
	}
	if err := u.repo.Update(ctx, s); err != nil {
		if errors.Is(err, ErrSupplementNotFound) {
			return nil, err
		}
		return nil, apperr.Storage("update supplement", err)
	}
	return s, nil
}

// Delete removes one of userID's supplements.
func (u *supplementsUsecase) Delete(ctx context.Context, userID, id uint) error {
	err := u.repo.Delete(ctx, userID, id)
	if err == nil || errors.Is(err, ErrSupplementNotFound) {
		return err
	}
	return apperr.Storage("delete supplement", err)
}

// List returns userID's supplements newest first.
func (u *supplementsUsecase) List(ctx context.Context, userID uint) ([]entity.Supplement, error) {
	ss, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("list supplements", err)
	}
	return ss, nil
}
