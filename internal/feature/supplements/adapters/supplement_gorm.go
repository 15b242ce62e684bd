// Package adapters provides the GORM repository for supplements.
package adapters

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authentity "health_backend/internal/feature/auth/domain/entity"
	"health_backend/internal/feature/supplements/domain/entity"
	"health_backend/internal/feature/supplements/usecase"
)

// SupplementModel is the GORM model for the supplements table.
type SupplementModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"index;not null"`
	User      authentity.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Name      string          `gorm:"column:supplement_name;size:100;not null"`
	Dosage    string          `gorm:"size:50"`
	Frequency string          `gorm:"size:50"`
	Notes     string          `gorm:"type:text"`
	CreatedAt time.Time       `gorm:"index"`
	UpdatedAt time.Time
}

func (SupplementModel) TableName() string {
	return "supplements"
}

func (m *SupplementModel) toEntity() entity.Supplement {
	return entity.Supplement{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Dosage:    m.Dosage,
		Frequency: m.Frequency,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type supplementGorm struct {
	db *gorm.DB
}

var _ usecase.SupplementRepository = (*supplementGorm)(nil)

func NewSupplementGorm(db *gorm.DB) *supplementGorm {
	return &supplementGorm{db: db}
}

func (r *supplementGorm) Create(ctx context.Context, s *entity.Supplement) error {
	m := SupplementModel{
		UserID:    s.UserID,
		Name:      s.Name,
		Dosage:    s.Dosage,
		Frequency: s.Frequency,
		Notes:     s.Notes,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return err
	}
	*s = m.toEntity()
	return nil
}

// Update only touches rows owned by s.UserID.
func (r *supplementGorm) Update(ctx context.Context, s *entity.Supplement) error {
	result := r.db.WithContext(ctx).
		Model(&SupplementModel{}).
		Where("id = ? AND user_id = ?", s.ID, s.UserID).
		Updates(map[string]any{
			"supplement_name": s.Name,
			"dosage":          s.Dosage,
			"frequency":       s.Frequency,
			"notes":           s.Notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrSupplementNotFound
	}

	var m SupplementModel
	if err := r.db.WithContext(ctx).First(&m, s.ID).Error; err != nil {
		return err
	}
	*s = m.toEntity()
	return nil
}

func (r *supplementGorm) Delete(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&SupplementModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrSupplementNotFound
	}
	return nil
}

func (r *supplementGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Supplement, error) {
	var rows []SupplementModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// Search uses LOWER(...) LIKE so matching is case-insensitive on both
// PostgreSQL and SQLite.
func (r *supplementGorm) Search(ctx context.Context, userID uint, term string) ([]entity.Supplement, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	var rows []SupplementModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(r.db.
			Where("LOWER(supplement_name) LIKE ?", pattern).
			Or("LOWER(dosage) LIKE ?", pattern).
			Or("LOWER(frequency) LIKE ?", pattern).
			Or("LOWER(notes) LIKE ?", pattern)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func toEntities(rows []SupplementModel) []entity.Supplement {
	out := make([]entity.Supplement, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out
}
