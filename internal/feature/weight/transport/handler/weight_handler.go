// Package handler はweightフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"health_backend/internal/feature/weight/domain/entity"
	"health_backend/internal/feature/weight/transport/http/dto"
	"health_backend/internal/platform/http/response"
	"health_backend/internal/platform/session"
	"health_backend/internal/shared/apperr"
)

// WeightUsecase は体重記録と目標のユースケースを定義します。
type WeightUsecase interface {
	AddWeight(ctx context.Context, userID uint, weight, recordDate string) (*entity.WeightRecord, error)
	DeleteWeight(ctx context.Context, userID, id uint) error
	ListWeights(ctx context.Context, userID uint) ([]entity.WeightRecord, error)
	SetGoal(ctx context.Context, userID uint, targetWeight, targetDate string) (*entity.Goal, error)
	GetGoal(ctx context.Context, userID uint) (*entity.Goal, error)
}

// WeightHandler は体重記録と目標のHTTPリクエストを処理します。
type WeightHandler struct {
	uc WeightUsecase
}

// NewWeightHandler はWeightHandlerの新しいインスタンスを生成します。
func NewWeightHandler(uc WeightUsecase) *WeightHandler {
	return &WeightHandler{uc: uc}
}

// List は体重記録を日付の新しい順に返します。
//
// GET /weights
func (h *WeightHandler) List(c *gin.Context) {
	userID, _ := session.UserID(c)
	recs, err := h.uc.ListWeights(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, "list weights failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWeightList(recs))
}

// Add は体重を記録します。同じ日付は上書きされます。
//
// POST /weights
func (h *WeightHandler) Add(c *gin.Context) {
	var req dto.AddWeightReq
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "add weight bind failed", err)
		return
	}
	userID, _ := session.UserID(c)
	rec, err := h.uc.AddWeight(c.Request.Context(), userID, string(req.Weight), req.RecordDate)
	if err != nil {
		response.Error(c, "add weight failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWeightRes(*rec))
}

// Delete はパスパラメータのIDの記録を削除します。
//
// DELETE /weights/:id
func (h *WeightHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, "invalid weight id", apperr.ErrNotFound)
		return
	}
	userID, _ := session.UserID(c)
	if err := h.uc.DeleteWeight(c.Request.Context(), userID, uint(id)); err != nil {
		response.Error(c, "delete weight failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetGoal は目標を返します。
//
// GET /goal
func (h *WeightHandler) GetGoal(c *gin.Context) {
	userID, _ := session.UserID(c)
	g, err := h.uc.GetGoal(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, "get goal failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.GoalEnvelope{Goal: dto.ToGoalRes(g)})
}

// SetGoal は目標を作成または更新します。
//
// PUT /goal
func (h *WeightHandler) SetGoal(c *gin.Context) {
	var req dto.SetGoalReq
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "set goal bind failed", err)
		return
	}
	userID, _ := session.UserID(c)
	g, err := h.uc.SetGoal(c.Request.Context(), userID, string(req.TargetWeight), req.TargetDate)
	if err != nil {
		response.Error(c, "set goal failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.GoalEnvelope{Goal: dto.ToGoalRes(g)})
}
