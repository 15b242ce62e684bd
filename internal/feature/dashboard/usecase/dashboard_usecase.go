// Package usecase はダッシュボードと横断検索のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"

	sentity "health_backend/internal/feature/supplements/domain/entity"
	wentity "health_backend/internal/feature/weight/domain/entity"
	wusecase "health_backend/internal/feature/weight/usecase"
	"health_backend/internal/shared/apperr"
)

// RecentWeightCount はダッシュボードに表示する直近の体重記録数です。
const RecentWeightCount = 7

// 検索カテゴリ
const (
	CategoryAll        = "all"
	CategoryWeight     = "weight"
	CategorySupplement = "supplement"
	CategoryGoal       = "goal"
)

// WeightReader は体重記録の読み取りを抽象化します。
type WeightReader interface {
	ListByUser(ctx context.Context, userID uint, limit int) ([]wentity.WeightRecord, error)
	Search(ctx context.Context, userID uint, term string) ([]wentity.WeightRecord, error)
}

// GoalReader は目標の読み取りを抽象化します。未設定の場合はErrGoalNotFoundを返します。
type GoalReader interface {
	FindByUser(ctx context.Context, userID uint) (*wentity.Goal, error)
}

// SupplementReader はサプリメントの読み取りを抽象化します。
type SupplementReader interface {
	ListByUser(ctx context.Context, userID uint) ([]sentity.Supplement, error)
	Search(ctx context.Context, userID uint, term string) ([]sentity.Supplement, error)
}

// Summary はダッシュボードの表示内容です。
type Summary struct {
	// RecentWeights は直近7件の体重記録で、日付の古い順です。
	RecentWeights []wentity.WeightRecord
	Goal          *wentity.Goal
	Supplements   []sentity.Supplement
}

// SearchResult は横断検索の結果です。
type SearchResult struct {
	Category      string
	Term          string
	WeightRecords []wentity.WeightRecord
	Goals         []wentity.Goal
	Supplements   []sentity.Supplement
}

// HasResults はいずれかのカテゴリにヒットがあるかを返します。
func (r *SearchResult) HasResults() bool {
	return len(r.WeightRecords) > 0 || len(r.Goals) > 0 || len(r.Supplements) > 0
}

type dashboardUsecase struct {
	weights     WeightReader
	goals       GoalReader
	supplements SupplementReader
}

// NewDashboardUsecase はdashboardUsecaseの新しいインスタンスを生成します。
func NewDashboardUsecase(weights WeightReader, goals GoalReader, supplements SupplementReader) *dashboardUsecase {
	return &dashboardUsecase{weights: weights, goals: goals, supplements: supplements}
}

func (u *dashboardUsecase) findGoal(ctx context.Context, userID uint) (*wentity.Goal, error) {
	g, err := u.goals.FindByUser(ctx, userID)
	if errors.Is(err, wusecase.ErrGoalNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage("find goal", err)
	}
	return g, nil
}

// Summary は直近の体重推移、目標、サプリメント一覧をまとめて返します。
func (u *dashboardUsecase) Summary(ctx context.Context, userID uint) (*Summary, error) {
	recent, err := u.weights.ListByUser(ctx, userID, RecentWeightCount)
	if err != nil {
		return nil, apperr.Storage("list weights", err)
	}
	// グラフ表示用に古い順へ並べ替える
	slices.Reverse(recent)

	goal, err := u.findGoal(ctx, userID)
	if err != nil {
		return nil, err
	}

	supps, err := u.supplements.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("list supplements", err)
	}

	return &Summary{RecentWeights: recent, Goal: goal, Supplements: supps}, nil
}

// ParseQuery はクエリ先頭のカテゴリ名（weight / supplement / goal、大文字小文字を区別しない）を
// 取り除き、カテゴリと検索語を返します。カテゴリ名のみの場合、検索語は空（全件一致）です。
func ParseQuery(q string) (category, term string) {
	q = strings.TrimSpace(q)
	for _, c := range []string{CategoryWeight, CategorySupplement, CategoryGoal} {
		if len(q) >= len(c) && strings.EqualFold(q[:len(c)], c) {
			return c, strings.TrimSpace(q[len(c):])
		}
	}
	return CategoryAll, q
}

// goalMatches は目標体重の文字列表現がtermを含むかを返します。
func goalMatches(g *wentity.Goal, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strconv.FormatFloat(g.TargetWeight, 'f', -1, 64), term) ||
		strings.Contains(strconv.FormatFloat(g.TargetWeight, 'f', 2, 64), term)
}

// Search はユーザー自身の体重記録・目標・サプリメントを横断検索します。
// 空白のみのクエリは空の結果を返します。
func (u *dashboardUsecase) Search(ctx context.Context, userID uint, q string) (*SearchResult, error) {
	res := &SearchResult{
		Category:      CategoryAll,
		WeightRecords: []wentity.WeightRecord{},
		Goals:         []wentity.Goal{},
		Supplements:   []sentity.Supplement{},
	}
	if strings.TrimSpace(q) == "" {
		return res, nil
	}
	res.Category, res.Term = ParseQuery(q)

	if res.Category == CategoryAll || res.Category == CategorySupplement {
		ss, err := u.supplements.Search(ctx, userID, res.Term)
		if err != nil {
			return nil, apperr.Storage("search supplements", err)
		}
		res.Supplements = ss
	}

	if res.Category == CategoryAll || res.Category == CategoryWeight {
		ws, err := u.weights.Search(ctx, userID, res.Term)
		if err != nil {
			return nil, apperr.Storage("search weights", err)
		}
		res.WeightRecords = ws
	}

	if res.Category == CategoryAll || res.Category == CategoryGoal {
		g, err := u.findGoal(ctx, userID)
		if err != nil {
			return nil, err
		}
		if g != nil && goalMatches(g, res.Term) {
			res.Goals = append(res.Goals, *g)
		}
	}

	return res, nil
}
