// Package dto はnutritionフィーチャーのリクエスト/レスポンス型を定義します。
package dto

import (
	"time"

	"health_backend/internal/feature/nutrition/domain/entity"
)

type FoodSummaryRes struct {
	FdcID       int    `json:"fdc_id"`
	Description string `json:"description"`
	DataType    string `json:"data_type,omitempty"`
	BrandOwner  string `json:"brand_owner,omitempty"`
}

type SearchRes struct {
	Query     string           `json:"query"`
	TotalHits int              `json:"total_hits"`
	Foods     []FoodSummaryRes `json:"foods"`
}

type FoodDetailsRes struct {
	FdcID           int                              `json:"fdc_id"`
	Description     string                           `json:"description"`
	BrandOwner      string                           `json:"brand_owner,omitempty"`
	Ingredients     string                           `json:"ingredients,omitempty"`
	Nutrients       map[string]entity.NutrientAmount `json:"nutrients"`
	CommonNutrients entity.CommonNutrientSet         `json:"common_nutrients"`
}

// SaveFavoriteReq はお気に入り保存の入力です。nutrition_dataはJSONボディでのみ受け付けます。
type SaveFavoriteReq struct {
	FdcID         int            `json:"fdc_id" form:"fdc_id"`
	FoodName      string         `json:"food_name" form:"food_name"`
	NutritionData map[string]any `json:"nutrition_data" form:"-"`
}

type FavoriteRes struct {
	ID            uint           `json:"id"`
	FdcID         int            `json:"fdc_id"`
	FoodName      string         `json:"food_name"`
	NutritionData map[string]any `json:"nutrition_data"`
	CreatedAt     time.Time      `json:"created_at"`
}

func ToSearchRes(query string, r *entity.SearchResult) SearchRes {
	out := SearchRes{Query: query, TotalHits: r.TotalHits, Foods: make([]FoodSummaryRes, 0, len(r.Foods))}
	for _, f := range r.Foods {
		out.Foods = append(out.Foods, FoodSummaryRes{
			FdcID:       f.FdcID,
			Description: f.Description,
			DataType:    f.DataType,
			BrandOwner:  f.BrandOwner,
		})
	}
	return out
}

func ToFoodDetailsRes(info entity.NutritionInfo, common entity.CommonNutrientSet) FoodDetailsRes {
	return FoodDetailsRes{
		FdcID:           info.FdcID,
		Description:     info.Description,
		BrandOwner:      info.BrandOwner,
		Ingredients:     info.Ingredients,
		Nutrients:       info.Nutrients,
		CommonNutrients: common,
	}
}

func ToFavoriteRes(f entity.FavoriteFood) FavoriteRes {
	return FavoriteRes{
		ID:            f.ID,
		FdcID:         f.FdcID,
		FoodName:      f.FoodName,
		NutritionData: f.NutritionData,
		CreatedAt:     f.CreatedAt,
	}
}

func ToFavoriteList(fs []entity.FavoriteFood) []FavoriteRes {
	out := make([]FavoriteRes, 0, len(fs))
	for _, f := range fs {
		out = append(out, ToFavoriteRes(f))
	}
	return out
}
