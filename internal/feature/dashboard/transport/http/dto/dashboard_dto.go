// Package dto はダッシュボードと検索のレスポンス型を定義します。
package dto

import (
	"health_backend/internal/feature/dashboard/usecase"
	sdto "health_backend/internal/feature/supplements/transport/http/dto"
	wdto "health_backend/internal/feature/weight/transport/http/dto"
)

// DashboardRes はGET /dashboardのレスポンスです。
type DashboardRes struct {
	RecentWeights []wdto.WeightRes     `json:"recent_weights"`
	Goal          *wdto.GoalRes        `json:"goal"`
	Supplements   []sdto.SupplementRes `json:"supplements"`
}

// SearchRes はGET /searchのレスポンスです。
type SearchRes struct {
	Query         string               `json:"query"`
	Category      string               `json:"category"`
	HasResults    bool                 `json:"has_results"`
	WeightRecords []wdto.WeightRes     `json:"weight_records"`
	Goals         []wdto.GoalRes       `json:"goals"`
	Supplements   []sdto.SupplementRes `json:"supplements"`
}

func ToDashboardRes(s *usecase.Summary) DashboardRes {
	return DashboardRes{
		RecentWeights: wdto.ToWeightList(s.RecentWeights),
		Goal:          wdto.ToGoalRes(s.Goal),
		Supplements:   sdto.ToSupplementList(s.Supplements),
	}
}

func ToSearchRes(q string, r *usecase.SearchResult) SearchRes {
	goals := make([]wdto.GoalRes, 0, len(r.Goals))
	for _, g := range r.Goals {
		goals = append(goals, *wdto.ToGoalRes(&g))
	}
	return SearchRes{
		Query:         q,
		Category:      r.Category,
		HasResults:    r.HasResults(),
		WeightRecords: wdto.ToWeightList(r.WeightRecords),
		Goals:         goals,
		Supplements:   sdto.ToSupplementList(r.Supplements),
	}
}
