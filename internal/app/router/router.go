package router

import (
	"health_backend/internal/app/di"
	"health_backend/internal/platform/config"
	"health_backend/internal/platform/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg config.ServerConfig, h *di.Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), gzip.Gzip(gzip.DefaultCompression))

	// 別オリジンのフロントエンドから呼ぶ場合のみ（許可オリジン設定時）CORSを有効化
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
		corsCfg.AddAllowHeaders("Authorization", middleware.HeaderRequestID)
		corsCfg.AddExposeHeaders(middleware.HeaderRequestID)
		r.Use(cors.New(corsCfg))
	}

	// Cookieのセッションをコンテキストに読み込む（未ログインでも通過）
	r.Use(h.Sessions.Load())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.POST("/logout", h.Auth.Logout)
	// APIクライアント向けJWT発行
	r.POST("/api/token", h.Auth.Token)

	// ログイン済みの場合は409
	guest := r.Group("/")
	guest.Use(h.Sessions.RejectAuthenticated())
	{
		guest.POST("/register", h.Auth.Register)
		guest.POST("/login", h.Auth.Login)
	}

	// 認証必須のルート（セッションCookieまたはBearerトークン）
	auth := r.Group("/")
	auth.Use(h.Sessions.RequireUser(h.Tokens))
	{
		auth.GET("/me", h.Auth.Me)
		auth.DELETE("/account", h.Auth.DeleteAccount)

		auth.GET("/dashboard", h.Dashboard.Summary)
		auth.GET("/search", h.Dashboard.Search)

		auth.GET("/weights", h.Weight.List)
		auth.POST("/weights", h.Weight.Add)
		auth.DELETE("/weights/:id", h.Weight.Delete)
		auth.GET("/goal", h.Weight.GetGoal)
		auth.PUT("/goal", h.Weight.SetGoal)

		auth.GET("/supplements", h.Supplements.List)
		auth.POST("/supplements", h.Supplements.Add)
		auth.PUT("/supplements/:id", h.Supplements.Update)
		auth.DELETE("/supplements/:id", h.Supplements.Delete)

		nutrition := auth.Group("/nutrition")
		nutrition.GET("/search", h.Nutrition.Search)
		nutrition.GET("/foods/:fdcId", h.Nutrition.Details)
		nutrition.GET("/favorites", h.Nutrition.ListFavorites)
		nutrition.POST("/favorites", h.Nutrition.SaveFavorite)
		nutrition.DELETE("/favorites/:id", h.Nutrition.DeleteFavorite)
	}

	return r
}
