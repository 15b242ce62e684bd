// Package handler はダッシュボードと横断検索のHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"health_backend/internal/feature/dashboard/transport/http/dto"
	"health_backend/internal/feature/dashboard/usecase"
	"health_backend/internal/platform/http/response"
	"health_backend/internal/platform/session"
)

// DashboardUsecase はダッシュボードと検索のユースケースを定義します。
type DashboardUsecase interface {
	Summary(ctx context.Context, userID uint) (*usecase.Summary, error)
	Search(ctx context.Context, userID uint, q string) (*usecase.SearchResult, error)
}

type DashboardHandler struct {
	uc DashboardUsecase
}

func NewDashboardHandler(uc DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary GET /dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	userID, _ := session.UserID(c)
	s, err := h.uc.Summary(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, "dashboard failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardRes(s))
}

// Search はクエリ q で自分の記録を横断検索します。
//
// GET /search?q=weight 70
func (h *DashboardHandler) Search(c *gin.Context) {
	q := c.Query("q")
	userID, _ := session.UserID(c)
	res, err := h.uc.Search(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, "search failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSearchRes(q, res))
}
