package di

import (
	"health_backend/internal/platform/config"
	"health_backend/internal/platform/externalapi/usda"
	infrahttp "health_backend/internal/platform/http"
	"health_backend/internal/shared/ratelimiter"
)

// NewFoodCatalog はレート制限付きのUSDA FoodData Centralクライアントを生成します。
func NewFoodCatalog(cfg config.USDAConfig) *usda.FoodDataCentral {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimit, cfg.RateInterval)
	return usda.NewFoodDataCentral(usda.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	}, httpClient, limiter)
}
