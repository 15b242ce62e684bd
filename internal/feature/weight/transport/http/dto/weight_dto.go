// Package dto はweightフィーチャーのリクエスト/レスポンス型を定義します。
package dto

import (
	"time"

	"github.com/goccy/go-json"

	"health_backend/internal/feature/weight/domain/entity"
)

// Numeric はJSONの数値と文字列のどちらも受け付ける入力値です。
// フォームからは通常の文字列としてバインドされます。
type Numeric string

func (n *Numeric) UnmarshalJSON(b []byte) error {
	switch {
	case string(b) == "null":
		*n = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Numeric(s)
	default:
		*n = Numeric(b)
	}
	return nil
}

// AddWeightReq は体重記録の入力です。値の検証はusecaseで行います。
type AddWeightReq struct {
	Weight     Numeric `json:"weight" form:"weight"`
	RecordDate string  `json:"record_date" form:"record_date"`
}

// SetGoalReq は目標体重の入力です。target_dateは任意です。
type SetGoalReq struct {
	TargetWeight Numeric `json:"target_weight" form:"target_weight"`
	TargetDate   string  `json:"target_date" form:"target_date"`
}

type WeightRes struct {
	ID         uint    `json:"id"`
	Weight     float64 `json:"weight"`
	RecordDate string  `json:"record_date"`
}

type GoalRes struct {
	TargetWeight float64   `json:"target_weight"`
	TargetDate   *string   `json:"target_date"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GoalEnvelope はGET /goalのレスポンスです。未設定の場合goalはnullです。
type GoalEnvelope struct {
	Goal *GoalRes `json:"goal"`
}

const dateLayout = "2006-01-02"

func ToWeightRes(r entity.WeightRecord) WeightRes {
	return WeightRes{ID: r.ID, Weight: r.Weight, RecordDate: r.RecordDate.Format(dateLayout)}
}

func ToWeightList(rs []entity.WeightRecord) []WeightRes {
	out := make([]WeightRes, 0, len(rs))
	for _, r := range rs {
		out = append(out, ToWeightRes(r))
	}
	return out
}

// ToGoalRes はnilの目標に対してnilを返します。
func ToGoalRes(g *entity.Goal) *GoalRes {
	if g == nil {
		return nil
	}
	res := &GoalRes{TargetWeight: g.TargetWeight, UpdatedAt: g.UpdatedAt}
	if g.TargetDate != nil {
		s := g.TargetDate.Format(dateLayout)
		res.TargetDate = &s
	}
	return res
}
