package adapters

import (
	"context"
	"testing"

	authentity "health_backend/internal/feature/auth/domain/entity"
	"health_backend/internal/feature/supplements/domain/entity"
	"health_backend/internal/feature/supplements/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&authentity.User{}, &SupplementModel{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) uint {
	t.Helper()
	u := &authentity.User{Username: username, Email: username + "@example.com", PasswordHash: "h", Salt: "s"}
	require.NoError(t, db.Create(u).Error)
	return u.ID
}

func TestSupplementGorm_CreateAndList(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewSupplementGorm(db)
	uid := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")

	first := &entity.Supplement{UserID: uid, Name: "Vitamin D", Dosage: "1000 IU"}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := &entity.Supplement{UserID: uid, Name: "Zinc"}
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, &entity.Supplement{UserID: other, Name: "Iron"}))

	got, err := repo.ListByUser(ctx, uid)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Zinc", got[0].Name, "newest first")
	assert.Equal(t, "Vitamin D", got[1].Name)
}

func TestSupplementGorm_Update(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewSupplementGorm(db)
	uid := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")

	s := &entity.Supplement{UserID: uid, Name: "Vitamin D", Dosage: "1000 IU", Notes: "morning"}
	require.NoError(t, repo.Create(ctx, s))

	upd := &entity.Supplement{ID: s.ID, UserID: uid, Name: "Vitamin D3", Dosage: "2000 IU"}
	require.NoError(t, repo.Update(ctx, upd))
	assert.Equal(t, "Vitamin D3", upd.Name)
	assert.Empty(t, upd.Notes, "empty fields are cleared")
	assert.Equal(t, s.CreatedAt.Unix(), upd.CreatedAt.Unix())

	err := repo.Update(ctx, &entity.Supplement{ID: s.ID, UserID: other, Name: "Hijack"})
	assert.ErrorIs(t, err, usecase.ErrSupplementNotFound)

	err = repo.Update(ctx, &entity.Supplement{ID: 999, UserID: uid, Name: "Ghost"})
	assert.ErrorIs(t, err, usecase.ErrSupplementNotFound)
}

func TestSupplementGorm_Delete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewSupplementGorm(db)
	uid := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")

	s := &entity.Supplement{UserID: uid, Name: "Zinc"}
	require.NoError(t, repo.Create(ctx, s))

	assert.ErrorIs(t, repo.Delete(ctx, other, s.ID), usecase.ErrSupplementNotFound)
	assert.NoError(t, repo.Delete(ctx, uid, s.ID))
	assert.ErrorIs(t, repo.Delete(ctx, uid, s.ID), usecase.ErrSupplementNotFound)
}

func TestSupplementGorm_Search(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewSupplementGorm(db)
	uid := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")

	require.NoError(t, repo.Create(ctx, &entity.Supplement{UserID: uid, Name: "Vitamin D", Frequency: "daily"}))
	require.NoError(t, repo.Create(ctx, &entity.Supplement{UserID: uid, Name: "Fish Oil", Notes: "with vitamin E"}))
	require.NoError(t, repo.Create(ctx, &entity.Supplement{UserID: uid, Name: "Zinc", Dosage: "15mg"}))
	require.NoError(t, repo.Create(ctx, &entity.Supplement{UserID: other, Name: "Vitamin C"}))

	tests := []struct {
		term string
		want int
	}{
		{"VITAMIN", 2},
		{"daily", 1},
		{"15mg", 1},
		{"", 3},
		{"magnesium", 0},
	}
	for _, tt := range tests {
		got, err := repo.Search(ctx, uid, tt.term)
		require.NoError(t, err)
		assert.Len(t, got, tt.want, "term %q", tt.term)
	}
}

func TestUserDelete_CascadesSupplements(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewSupplementGorm(db)
	uid := seedUser(t, db, "alice")
	require.NoError(t, repo.Create(ctx, &entity.Supplement{UserID: uid, Name: "Zinc"}))

	require.NoError(t, db.Delete(&authentity.User{}, uid).Error)

	got, err := repo.ListByUser(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, got)
}
