// Package handler はnutritionフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"health_backend/internal/feature/nutrition/domain/entity"
	"health_backend/internal/feature/nutrition/transport/http/dto"
	"health_backend/internal/feature/nutrition/usecase"
	"health_backend/internal/platform/http/response"
	"health_backend/internal/platform/session"
	"health_backend/internal/shared/apperr"
)

// NutritionUsecase は食品検索とお気に入り操作のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type NutritionUsecase interface {
	Search(ctx context.Context, query string, pageSize int) (*entity.SearchResult, error)
	Details(ctx context.Context, fdcID int) (*usecase.FoodDetails, error)
	SaveFavorite(ctx context.Context, userID uint, fdcID int, foodName string, data map[string]any) (*entity.FavoriteFood, error)
	ListFavorites(ctx context.Context, userID uint) ([]entity.FavoriteFood, error)
	DeleteFavorite(ctx context.Context, userID, id uint) error
}

// NutritionHandler は食品検索とお気に入りのHTTPリクエストを処理します。
type NutritionHandler struct {
	uc NutritionUsecase
}

// NewNutritionHandler はNutritionHandlerの新しいインスタンスを生成します。
func NewNutritionHandler(uc NutritionUsecase) *NutritionHandler {
	return &NutritionHandler{uc: uc}
}

// Search はキーワードで食品を検索します。
//
// エンドポイント例:
// GET /nutrition/search?q=apple&page_size=20
func (h *NutritionHandler) Search(c *gin.Context) {
	query := c.Query("q")
	// 未指定・不正値の場合はusecaseでデフォルト値になる
	pageSize, _ := strconv.Atoi(c.Query("page_size"))

	res, err := h.uc.Search(c.Request.Context(), query, pageSize)
	if err != nil {
		response.Error(c, "food search failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSearchRes(query, res))
}

// Details は食品の栄養情報を返します。
//
// GET /nutrition/foods/:fdcId
func (h *NutritionHandler) Details(c *gin.Context) {
	fdcID, err := strconv.Atoi(c.Param("fdcId"))
	if err != nil {
		response.Error(c, "invalid fdc id", usecase.ErrFoodNotFound)
		return
	}
	d, err := h.uc.Details(c.Request.Context(), fdcID)
	if err != nil {
		response.Error(c, "food details failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFoodDetailsRes(d.Info, d.Common))
}

// ListFavorites はお気に入りを新しい順に返します。
//
// GET /nutrition/favorites
func (h *NutritionHandler) ListFavorites(c *gin.Context) {
	userID, _ := session.UserID(c)
	fs, err := h.uc.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, "list favorites failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFavoriteList(fs))
}

// SaveFavorite は食品をお気に入りに保存します。
//
// POST /nutrition/favorites
func (h *NutritionHandler) SaveFavorite(c *gin.Context) {
	var req dto.SaveFavoriteReq
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "save favorite bind failed", err)
		return
	}
	userID, _ := session.UserID(c)
	f, err := h.uc.SaveFavorite(c.Request.Context(), userID, req.FdcID, req.FoodName, req.NutritionData)
	if err != nil {
		response.Error(c, "save favorite failed", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToFavoriteRes(*f))
}

// DeleteFavorite はお気に入りを削除します。
//
// DELETE /nutrition/favorites/:id
func (h *NutritionHandler) DeleteFavorite(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, "invalid favorite id", apperr.ErrNotFound)
		return
	}
	userID, _ := session.UserID(c)
	if err := h.uc.DeleteFavorite(c.Request.Context(), userID, uint(id)); err != nil {
		response.Error(c, "delete favorite failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
