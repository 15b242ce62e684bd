// Package adapters はnutritionフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authentity "health_backend/internal/feature/auth/domain/entity"
	"health_backend/internal/feature/nutrition/domain/entity"
	"health_backend/internal/feature/nutrition/usecase"
	"health_backend/internal/platform/db"
)

// FavoriteFoodModel はfavorite_foodsテーブルのGORMモデルです。
// nutrition_dataはJSONとして保存します。
type FavoriteFoodModel struct {
	ID            uint            `gorm:"primaryKey"`
	UserID        uint            `gorm:"not null;uniqueIndex:idx_favorite_user_food,priority:1"`
	User          authentity.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	FdcID         int             `gorm:"not null;uniqueIndex:idx_favorite_user_food,priority:2"`
	FoodName      string          `gorm:"size:255;not null"`
	NutritionData map[string]any  `gorm:"type:json;serializer:json"`
	CreatedAt     time.Time       `gorm:"index"`
}

func (FavoriteFoodModel) TableName() string {
	return "favorite_foods"
}

func (m *FavoriteFoodModel) toEntity() entity.FavoriteFood {
	return entity.FavoriteFood{
		ID:            m.ID,
		UserID:        m.UserID,
		FdcID:         m.FdcID,
		FoodName:      m.FoodName,
		NutritionData: m.NutritionData,
		CreatedAt:     m.CreatedAt,
	}
}

type favoriteGorm struct {
	db *gorm.DB
}

var _ usecase.FavoriteRepository = (*favoriteGorm)(nil)

// NewFavoriteGorm はfavoriteGormの新しいインスタンスを生成します。
func NewFavoriteGorm(db *gorm.DB) *favoriteGorm {
	return &favoriteGorm{db: db}
}

// Create は一意制約違反をusecase.ErrDuplicateFavoriteに変換します。
func (r *favoriteGorm) Create(ctx context.Context, f *entity.FavoriteFood) error {
	m := FavoriteFoodModel{
		UserID:        f.UserID,
		FdcID:         f.FdcID,
		FoodName:      f.FoodName,
		NutritionData: f.NutritionData,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrDuplicateFavorite
		}
		return err
	}
	*f = m.toEntity()
	return nil
}

func (r *favoriteGorm) Delete(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&FavoriteFoodModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrFavoriteNotFound
	}
	return nil
}

func (r *favoriteGorm) ListByUser(ctx context.Context, userID uint) ([]entity.FavoriteFood, error) {
	var rows []FavoriteFoodModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.FavoriteFood, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}
