// Package usecase は体重記録と目標体重のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"health_backend/internal/feature/weight/domain/entity"
	"health_backend/internal/shared/apperr"
)

const (
	// DateLayout は日付入力の形式（YYYY-MM-DD）です。
	DateLayout = "2006-01-02"

	// maxWeight は受け付ける体重の上限（この値未満）です。DECIMAL(5,2)に収まる範囲です。
	maxWeight = 1000.0

	// ValidationErrorのreason
	ReasonMissingFields = "missing fields"
	ReasonInvalidWeight = "invalid weight"
	ReasonInvalidDate   = "invalid date"
)

// WeightRepository は体重記録の永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type WeightRepository interface {
	// Upsert は(user_id, record_date)をキーに記録を挿入し、既存の場合は体重を上書きします。
	Upsert(ctx context.Context, r *entity.WeightRecord) error

	// Delete はユーザーが所有する記録を削除します。
	// 該当する記録がない場合、ErrWeightNotFoundを返します。
	Delete(ctx context.Context, userID, id uint) error

	// ListByUser は記録を日付の新しい順に返します。limitが0以下の場合は全件です。
	ListByUser(ctx context.Context, userID uint, limit int) ([]entity.WeightRecord, error)

	// Search は体重値の文字列表現にtermを含む記録を日付の新しい順に返します。
	Search(ctx context.Context, userID uint, term string) ([]entity.WeightRecord, error)
}

// GoalRepository は目標体重の永続化層を抽象化します。
type GoalRepository interface {
	// Upsert はuser_idをキーに目標を挿入し、既存の場合は目標体重と期日を上書きします。
	Upsert(ctx context.Context, g *entity.Goal) error

	// FindByUser はユーザーの目標を取得します。未設定の場合、ErrGoalNotFoundを返します。
	FindByUser(ctx context.Context, userID uint) (*entity.Goal, error)
}

// weightUsecase は体重記録と目標のユースケースを定義します。
type weightUsecase struct {
	weights WeightRepository
	goals   GoalRepository
}

// NewWeightUsecase はweightUsecaseの新しいインスタンスを生成します。
func NewWeightUsecase(weights WeightRepository, goals GoalRepository) *weightUsecase {
	return &weightUsecase{weights: weights, goals: goals}
}

// ParseWeight は体重の入力値を検証し、小数点以下2桁に丸めた値を返します。
func ParseWeight(s string) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, apperr.Validation(ReasonInvalidWeight)
	}
	w = math.Round(w*100) / 100
	if w <= 0 || w >= maxWeight {
		return 0, apperr.Validation(ReasonInvalidWeight)
	}
	return w, nil
}

// ParseDate はYYYY-MM-DD形式の日付をUTCの0時として解釈します。
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, apperr.Validation(ReasonInvalidDate)
	}
	return d, nil
}

// AddWeight は指定日の体重を記録します。
// 同じ日付の記録が既にある場合は体重を上書きします（1日1件）。
func (u *weightUsecase) AddWeight(ctx context.Context, userID uint, weight, recordDate string) (*entity.WeightRecord, error) {
	if strings.TrimSpace(weight) == "" || strings.TrimSpace(recordDate) == "" {
		return nil, apperr.Validation(ReasonMissingFields)
	}
	w, err := ParseWeight(weight)
	if err != nil {
		return nil, err
	}
	d, err := ParseDate(recordDate)
	if err != nil {
		return nil, err
	}

	rec := &entity.WeightRecord{UserID: userID, Weight: w, RecordDate: d}
	if err := u.weights.Upsert(ctx, rec); err != nil {
		return nil, apperr.Storage("upsert weight", err)
	}
	return rec, nil
}

// DeleteWeight はユーザー自身の体重記録を削除します。
func (u *weightUsecase) DeleteWeight(ctx context.Context, userID, id uint) error {
	err := u.weights.Delete(ctx, userID, id)
	if err == nil || errors.Is(err, ErrWeightNotFound) {
		return err
	}
	return apperr.Storage("delete weight", err)
}

// ListWeights は体重記録を日付の新しい順に返します。
func (u *weightUsecase) ListWeights(ctx context.Context, userID uint) ([]entity.WeightRecord, error) {
	recs, err := u.weights.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, apperr.Storage("list weights", err)
	}
	return recs, nil
}

// SetGoal は目標体重を設定します。期日は任意です。
// user_idの一意制約に対するアトミックなupsertのため、ユーザーごとの目標は常に1件です。
func (u *weightUsecase) SetGoal(ctx context.Context, userID uint, targetWeight, targetDate string) (*entity.Goal, error) {
	if strings.TrimSpace(targetWeight) == "" {
		return nil, apperr.Validation(ReasonMissingFields)
	}
	w, err := ParseWeight(targetWeight)
	if err != nil {
		return nil, err
	}

	g := &entity.Goal{UserID: userID, TargetWeight: w}
	if strings.TrimSpace(targetDate) != "" {
		d, err := ParseDate(targetDate)
		if err != nil {
			return nil, err
		}
		g.TargetDate = &d
	}

	if err := u.goals.Upsert(ctx, g); err != nil {
		return nil, apperr.Storage("upsert goal", err)
	}
	return g, nil
}

// GetGoal はユーザーの目標を返します。未設定の場合はnilを返します。
func (u *weightUsecase) GetGoal(ctx context.Context, userID uint) (*entity.Goal, error) {
	g, err := u.goals.FindByUser(ctx, userID)
	if errors.Is(err, ErrGoalNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage("find goal", err)
	}
	return g, nil
}
