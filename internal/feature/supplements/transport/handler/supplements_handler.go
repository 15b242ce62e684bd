// Package handler provides the HTTP handlers for the supplements feature.
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"health_backend/internal/feature/supplements/domain/entity"
	"health_backend/internal/feature/supplements/transport/http/dto"
	"health_backend/internal/feature/supplements/usecase"
	"health_backend/internal/platform/http/response"
	"health_backend/internal/platform/session"
	"health_backend/internal/shared/apperr"
)

// SupplementsUsecase defines the supplement operations used by the handler.
type SupplementsUsecase interface {
	Add(ctx context.Context, userID uint, in usecase.SupplementInput) (*entity.Supplement, error)
	Update(ctx context.Context, userID, id uint, in usecase.SupplementInput) (*entity.Supplement, error)
	Delete(ctx context.Context, userID, id uint) error
	List(ctx context.Context, userID uint) ([]entity.Supplement, error)
}

type SupplementsHandler struct {
	uc SupplementsUsecase
}

func NewSupplementsHandler(uc SupplementsUsecase) *SupplementsHandler {
	return &SupplementsHandler{uc: uc}
}

func toInput(req dto.SupplementReq) usecase.SupplementInput {
	return usecase.SupplementInput{
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
		Notes:     req.Notes,
	}
}

// parseID reads the :id path parameter. A malformed id can never match a row,
// so it is reported as not found.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, "invalid supplement id", apperr.ErrNotFound)
		return 0, false
	}
	return uint(id), true
}

// List handles GET /supplements.
func (h *SupplementsHandler) List(c *gin.Context) {
	userID, _ := session.UserID(c)
	ss, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, "list supplements failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplementList(ss))
}

// Add handles POST /supplements.
func (h *SupplementsHandler) Add(c *gin.Context) {
	var req dto.SupplementReq
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "add supplement bind failed", err)
		return
	}
	userID, _ := session.UserID(c)
	s, err := h.uc.Add(c.Request.Context(), userID, toInput(req))
	if err != nil {
		response.Error(c, "add supplement failed", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSupplementRes(*s))
}

// Update handles PUT /supplements/:id.
func (h *SupplementsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.SupplementReq
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "update supplement bind failed", err)
		return
	}
	userID, _ := session.UserID(c)
	s, err := h.uc.Update(c.Request.Context(), userID, id, toInput(req))
	if err != nil {
		response.Error(c, "update supplement failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplementRes(*s))
}

// Delete handles DELETE /supplements/:id.
func (h *SupplementsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	userID, _ := session.UserID(c)
	if err := h.uc.Delete(c.Request.Context(), userID, id); err != nil {
		response.Error(c, "delete supplement failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
