package usda

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"

	"health_backend/internal/feature/nutrition/domain/entity"
	"health_backend/internal/feature/nutrition/usecase"
	"health_backend/internal/platform/externalapi/usda/dto"
)

// RateLimiter は外部API呼び出しの頻度を制限します。
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// FoodDataCentral はUSDA FoodData Central APIから食品データを取得するFoodCatalog実装です。
type FoodDataCentral struct {
	cfg     Config
	client  *http.Client
	limiter RateLimiter
}

// FoodDataCentralがFoodCatalogを実装していることをコンパイル時に検証します。
var _ usecase.FoodCatalog = (*FoodDataCentral)(nil)

// NewFoodDataCentral は指定された設定とHTTPクライアントでFoodDataCentralの新しいインスタンスを生成します。
// limiter がnilの場合は呼び出し頻度を制限しません。
func NewFoodDataCentral(cfg Config, client *http.Client, limiter RateLimiter) *FoodDataCentral {
	return &FoodDataCentral{cfg: cfg, client: client, limiter: limiter}
}

// get はpathにGETリクエストを送り、JSONレスポンスをoutにデコードします。
func (f *FoodDataCentral) get(ctx context.Context, path string, q url.Values, out any) error {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	q.Set("api_key", f.cfg.APIKey)
	u := fmt.Sprintf("%s%s?%s", f.cfg.BaseURL, path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode == http.StatusNotFound {
		return usecase.ErrFoodNotFound
	}
	if res.StatusCode >= 400 {
		return fmt.Errorf("usda http %d", res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("usda decode: %w", err)
	}
	return nil
}

// SearchFoods はキーワードで食品を検索します。
func (f *FoodDataCentral) SearchFoods(ctx context.Context, query string, pageSize int) (*entity.SearchResult, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("pageSize", strconv.Itoa(pageSize))

	var body dto.SearchResponse
	if err := f.get(ctx, "/foods/search", q, &body); err != nil {
		return nil, err
	}

	res := &entity.SearchResult{
		TotalHits: body.TotalHits,
		Foods:     make([]entity.FoodSummary, 0, len(body.Foods)),
	}
	for _, v := range body.Foods {
		res.Foods = append(res.Foods, entity.FoodSummary{
			FdcID:       v.FdcID,
			Description: v.Description,
			DataType:    v.DataType,
			BrandOwner:  v.BrandOwner,
		})
	}
	return res, nil
}

// GetFood はFDC IDで食品の詳細を取得し、栄養情報に整形して返します。
func (f *FoodDataCentral) GetFood(ctx context.Context, fdcID int) (*entity.NutritionInfo, error) {
	var body dto.FoodResponse
	if err := f.get(ctx, "/food/"+strconv.Itoa(fdcID), url.Values{}, &body); err != nil {
		return nil, err
	}
	info := FormatNutrition(body)
	return &info, nil
}

// FormatNutrition はAPIレスポンスを栄養素名をキーとするNutritionInfoに変換します。
// 栄養素の定義または量がない項目は除外します。
func FormatNutrition(food dto.FoodResponse) entity.NutritionInfo {
	info := entity.NutritionInfo{
		FdcID:       food.FdcID,
		Description: food.Description,
		BrandOwner:  food.BrandOwner,
		Ingredients: food.Ingredients,
		Nutrients:   make(map[string]entity.NutrientAmount, len(food.FoodNutrients)),
	}
	if info.Description == "" {
		info.Description = "N/A"
	}
	for _, n := range food.FoodNutrients {
		if n.Nutrient == nil || n.Amount == nil {
			continue
		}
		info.Nutrients[n.Nutrient.Name] = entity.NutrientAmount{
			Amount:     *n.Amount,
			Unit:       n.Nutrient.UnitName,
			NutrientID: n.Nutrient.ID,
		}
	}
	return info
}
