package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"health_backend/internal/feature/supplements/domain/entity"
	"health_backend/internal/shared/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSupplementRepository is a mock implementation of the SupplementRepository interface.
type mockSupplementRepository struct {
	CreateFunc     func(s *entity.Supplement) error
	UpdateFunc     func(s *entity.Supplement) error
	DeleteFunc     func(userID, id uint) error
	ListByUserFunc func(userID uint) ([]entity.Supplement, error)
}

func (m *mockSupplementRepository) Create(_ context.Context, s *entity.Supplement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(s)
	}
	s.ID = 1
	return nil
}

func (m *mockSupplementRepository) Update(_ context.Context, s *entity.Supplement) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(s)
	}
	return nil
}

func (m *mockSupplementRepository) Delete(_ context.Context, userID, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(userID, id)
	}
	return nil
}

func (m *mockSupplementRepository) ListByUser(_ context.Context, userID uint) ([]entity.Supplement, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(userID)
	}
	return nil, nil
}

func (m *mockSupplementRepository) Search(context.Context, uint, string) ([]entity.Supplement, error) {
	return nil, nil
}

func TestSupplementsUsecase_Add(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         SupplementInput
		wantReason string
	}{
		{name: "success", in: SupplementInput{Name: " Vitamin D ", Dosage: "1000 IU", Frequency: "daily"}},
		{name: "name only", in: SupplementInput{Name: "Omega-3"}},
		{name: "blank name", in: SupplementInput{Name: "   ", Dosage: "1 tab"}, wantReason: ReasonMissingFields},
		{name: "name too long", in: SupplementInput{Name: strings.Repeat("a", 101)}, wantReason: ReasonTooLong},
		{name: "multibyte name at limit", in: SupplementInput{Name: strings.Repeat("ビ", 100)}},
		{name: "dosage too long", in: SupplementInput{Name: "Zinc", Dosage: strings.Repeat("1", 51)}, wantReason: ReasonTooLong},
		{name: "frequency too long", in: SupplementInput{Name: "Zinc", Frequency: strings.Repeat("x", 51)}, wantReason: ReasonTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			uc := NewSupplementsUsecase(&mockSupplementRepository{CreateFunc: func(s *entity.Supplement) error {
				created = true
				assert.Equal(t, uint(2), s.UserID)
				s.ID = 10
				return nil
			}})

			s, err := uc.Add(ctx, 2, tt.in)

			if tt.wantReason != "" {
				assert.True(t, apperr.IsValidation(err, tt.wantReason), "got %v", err)
				assert.False(t, created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(10), s.ID)
			assert.Equal(t, strings.TrimSpace(tt.in.Name), s.Name)
		})
	}

	t.Run("storage failure", func(t *testing.T) {
		uc := NewSupplementsUsecase(&mockSupplementRepository{CreateFunc: func(*entity.Supplement) error { return errors.New("db down") }})
		_, err := uc.Add(ctx, 2, SupplementInput{Name: "Zinc"})
		var se *apperr.StorageError
		assert.ErrorAs(t, err, &se)
	})
}

func TestSupplementsUsecase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		uc := NewSupplementsUsecase(&mockSupplementRepository{UpdateFunc: func(s *entity.Supplement) error {
			assert.Equal(t, uint(5), s.ID)
			assert.Equal(t, uint(2), s.UserID)
			assert.Equal(t, "Magnesium", s.Name)
			return nil
		}})
		s, err := uc.Update(ctx, 2, 5, SupplementInput{Name: "Magnesium", Notes: "before bed"})
		require.NoError(t, err)
		assert.Equal(t, "before bed", s.Notes)
	})

	t.Run("other user's supplement", func(t *testing.T) {
		uc := NewSupplementsUsecase(&mockSupplementRepository{UpdateFunc: func(*entity.Supplement) error { return ErrSupplementNotFound }})
		_, err := uc.Update(ctx, 2, 5, SupplementInput{Name: "Magnesium"})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("missing name", func(t *testing.T) {
		uc := NewSupplementsUsecase(&mockSupplementRepository{UpdateFunc: func(*entity.Supplement) error {
			t.Fatal("update must not be called")
			return nil
		}})
		_, err := uc.Update(ctx, 2, 5, SupplementInput{})
		assert.True(t, apperr.IsValidation(err, ReasonMissingFields))
	})
}

func TestSupplementsUsecase_Delete(t *testing.T) {
	ctx := context.Background()

	uc := NewSupplementsUsecase(&mockSupplementRepository{DeleteFunc: func(userID, id uint) error {
		if id == 404 {
			return ErrSupplementNotFound
		}
		if id == 500 {
			return errors.New("db down")
		}
		return nil
	}})

	assert.NoError(t, uc.Delete(ctx, 1, 1))
	assert.Equal(t, 404, apperr.StatusCode(uc.Delete(ctx, 1, 404)))
	assert.Equal(t, 500, apperr.StatusCode(uc.Delete(ctx, 1, 500)))
}

func TestSupplementsUsecase_List(t *testing.T) {
	want := []entity.Supplement{{ID: 2, Name: "B"}, {ID: 1, Name: "A"}}
	uc := NewSupplementsUsecase(&mockSupplementRepository{ListByUserFunc: func(uint) ([]entity.Supplement, error) { return want, nil }})

	got, err := uc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	uc = NewSupplementsUsecase(&mockSupplementRepository{ListByUserFunc: func(uint) ([]entity.Supplement, error) { return nil, errors.New("x") }})
	_, err = uc.List(context.Background(), 1)
	var se *apperr.StorageError
	assert.ErrorAs(t, err, &se)
}
