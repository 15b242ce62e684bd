package di

import (
	"fmt"

	authadapters "health_backend/internal/feature/auth/adapters"
	authhandler "health_backend/internal/feature/auth/transport/handler"
	authusecase "health_backend/internal/feature/auth/usecase"
	dashboardhandler "health_backend/internal/feature/dashboard/transport/handler"
	dashboardusecase "health_backend/internal/feature/dashboard/usecase"
	nutritionadapters "health_backend/internal/feature/nutrition/adapters"
	nutritionhandler "health_backend/internal/feature/nutrition/transport/handler"
	nutritionusecase "health_backend/internal/feature/nutrition/usecase"
	supplementsadapters "health_backend/internal/feature/supplements/adapters"
	supplementshandler "health_backend/internal/feature/supplements/transport/handler"
	supplementsusecase "health_backend/internal/feature/supplements/usecase"
	weightadapters "health_backend/internal/feature/weight/adapters"
	weighthandler "health_backend/internal/feature/weight/transport/handler"
	weightusecase "health_backend/internal/feature/weight/usecase"
	"health_backend/internal/platform/config"
	platformhandler "health_backend/internal/platform/http/handler"
	jwtmw "health_backend/internal/platform/jwt"
	"health_backend/internal/platform/password"
	"health_backend/internal/platform/session"

	"gorm.io/gorm"
)

// Handlers はルーターに渡すHTTPハンドラー一式です。
type Handlers struct {
	Health      *platformhandler.HealthHandler
	Auth        *authhandler.AuthHandler
	Dashboard   *dashboardhandler.DashboardHandler
	Weight      *weighthandler.WeightHandler
	Supplements *supplementshandler.SupplementsHandler
	Nutrition   *nutritionhandler.NutritionHandler

	// Sessions はCookieセッションの読み込みと認可ミドルウェアを提供します。
	Sessions *session.Manager
	// Tokens はBearerトークンの検証に使います。JWTが無効な場合はnilです。
	Tokens jwtmw.TokenParser
}

// NewTokens はJWTの発行器と検証器を返します。secretが空の場合はどちらもnil（無効）です。
func NewTokens(cfg config.JWTConfig) (authusecase.JWTGenerator, jwtmw.TokenParser) {
	if cfg.Secret == "" {
		return nil, nil
	}
	gen := jwtmw.NewGenerator(cfg.Secret, cfg.Expiration)
	return gen, gen
}

// NewHandlers はリポジトリ・ユースケース・ハンドラーを組み立てます。
func NewHandlers(cfg *config.Config, db *gorm.DB, sessions authusecase.SessionRepository) (*Handlers, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	weightRepo := weightadapters.NewWeightGorm(db)
	goalRepo := weightadapters.NewGoalGorm(db)
	supplementRepo := supplementsadapters.NewSupplementGorm(db)
	favoriteRepo := nutritionadapters.NewFavoriteGorm(db)
	catalog := NewFoodCatalog(cfg.USDA)

	// Usecase
	gen, parser := NewTokens(cfg.JWT)
	authUC := authusecase.NewAuthUsecase(userRepo, sessions, password.NewHasher(cfg.Password.Cost), gen, cfg.Session.TTL)
	weightUC := weightusecase.NewWeightUsecase(weightRepo, goalRepo)
	supplementsUC := supplementsusecase.NewSupplementsUsecase(supplementRepo)
	nutritionUC := nutritionusecase.NewNutritionUsecase(catalog, favoriteRepo)
	dashboardUC := dashboardusecase.NewDashboardUsecase(weightRepo, goalRepo, supplementRepo)

	// Handler
	mgr := session.NewManager(sessions, userRepo, session.Options{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.Secure,
	})

	return &Handlers{
		Health:      platformhandler.NewHealthHandler(sqlDB),
		Auth:        authhandler.NewAuthHandler(authUC, mgr),
		Dashboard:   dashboardhandler.NewDashboardHandler(dashboardUC),
		Weight:      weighthandler.NewWeightHandler(weightUC),
		Supplements: supplementshandler.NewSupplementsHandler(supplementsUC),
		Nutrition:   nutritionhandler.NewNutritionHandler(nutritionUC),
		Sessions:    mgr,
		Tokens:      parser,
	}, nil
}
