// Package adapters はweightフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authentity "health_backend/internal/feature/auth/domain/entity"
	"health_backend/internal/feature/weight/domain/entity"
	"health_backend/internal/feature/weight/usecase"
)

// WeightRecordModel はweight_recordsテーブルのGORMモデルです。
// (user_id, record_date)の一意制約で1日1件を保証します。
type WeightRecordModel struct {
	ID         uint            `gorm:"primaryKey"`
	UserID     uint            `gorm:"not null;uniqueIndex:idx_weight_user_date,priority:1"`
	User       authentity.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Weight     float64         `gorm:"type:decimal(5,2);not null"`
	RecordDate time.Time       `gorm:"type:date;not null;uniqueIndex:idx_weight_user_date,priority:2"`
	CreatedAt  time.Time
}

func (WeightRecordModel) TableName() string {
	return "weight_records"
}

func (m *WeightRecordModel) toEntity() entity.WeightRecord {
	return entity.WeightRecord{
		ID:         m.ID,
		UserID:     m.UserID,
		Weight:     m.Weight,
		RecordDate: m.RecordDate.UTC(),
		CreatedAt:  m.CreatedAt,
	}
}

// GoalModel はgoalsテーブルのGORMモデルです。user_idは一意です。
type GoalModel struct {
	ID           uint            `gorm:"primaryKey"`
	UserID       uint            `gorm:"not null;uniqueIndex"`
	User         authentity.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TargetWeight float64         `gorm:"type:decimal(5,2);not null"`
	TargetDate   *time.Time      `gorm:"type:date"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (GoalModel) TableName() string {
	return "goals"
}

type weightGorm struct {
	db *gorm.DB
}

var _ usecase.WeightRepository = (*weightGorm)(nil)

// NewWeightGorm はweightGormの新しいインスタンスを生成します。
func NewWeightGorm(db *gorm.DB) *weightGorm {
	return &weightGorm{db: db}
}

// Upsert は(user_id, record_date)の競合時に体重のみ更新します（後勝ち）。
// 保存後の行を読み直してIDとCreatedAtをrに反映します。
func (r *weightGorm) Upsert(ctx context.Context, rec *entity.WeightRecord) error {
	m := WeightRecordModel{
		UserID:     rec.UserID,
		Weight:     rec.Weight,
		RecordDate: rec.RecordDate,
	}
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "record_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"weight"}),
		}).
		Create(&m).Error
	if err != nil {
		return err
	}

	var saved WeightRecordModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND record_date = ?", rec.UserID, rec.RecordDate).
		First(&saved).Error; err != nil {
		return err
	}
	*rec = saved.toEntity()
	return nil
}

// Delete はユーザーが所有する記録のみ削除します。
func (r *weightGorm) Delete(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&WeightRecordModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrWeightNotFound
	}
	return nil
}

func (r *weightGorm) ListByUser(ctx context.Context, userID uint, limit int) ([]entity.WeightRecord, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("record_date DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []WeightRecordModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// Search は体重値をテキスト化して部分一致で検索します。
// 文字列化はDBごとのCAST結果に依存しないようアプリ側で行い、
// termはLIKEのメタ文字を含めてそのまま比較します。
func (r *weightGorm) Search(ctx context.Context, userID uint, term string) ([]entity.WeightRecord, error) {
	records, err := r.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	if term == "" {
		return records, nil
	}
	out := make([]entity.WeightRecord, 0, len(records))
	for _, rec := range records {
		if weightMatches(rec.Weight, term) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// weightMatches は最短表記（70.5）と小数2桁表記（70.50）のどちらかがtermを含むかを返します。
func weightMatches(w float64, term string) bool {
	return strings.Contains(strconv.FormatFloat(w, 'f', -1, 64), term) ||
		strings.Contains(strconv.FormatFloat(w, 'f', 2, 64), term)
}

func toEntities(rows []WeightRecordModel) []entity.WeightRecord {
	out := make([]entity.WeightRecord, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out
}

type goalGorm struct {
	db *gorm.DB
}

var _ usecase.GoalRepository = (*goalGorm)(nil)

// NewGoalGorm はgoalGormの新しいインスタンスを生成します。
func NewGoalGorm(db *gorm.DB) *goalGorm {
	return &goalGorm{db: db}
}

// Upsert はuser_idの一意制約に対するINSERT ... ON CONFLICT DO UPDATEで目標を保存します。
func (r *goalGorm) Upsert(ctx context.Context, g *entity.Goal) error {
	m := GoalModel{
		UserID:       g.UserID,
		TargetWeight: g.TargetWeight,
		TargetDate:   g.TargetDate,
	}
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"target_weight", "target_date", "updated_at"}),
		}).
		Create(&m).Error
	if err != nil {
		return err
	}

	saved, err := r.FindByUser(ctx, g.UserID)
	if err != nil {
		return err
	}
	*g = *saved
	return nil
}

func (r *goalGorm) FindByUser(ctx context.Context, userID uint) (*entity.Goal, error) {
	var m GoalModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrGoalNotFound
		}
		return nil, err
	}
	g := &entity.Goal{
		ID:           m.ID,
		UserID:       m.UserID,
		TargetWeight: m.TargetWeight,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.TargetDate != nil {
		d := m.TargetDate.UTC()
		g.TargetDate = &d
	}
	return g, nil
}
