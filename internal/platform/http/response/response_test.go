package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"health_backend/internal/shared/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", apperr.Validation("too short"), http.StatusBadRequest, `{"error":"too short"}`},
		{"conflict", apperr.Conflict("duplicate"), http.StatusConflict, `{"error":"duplicate"}`},
		{"auth", apperr.ErrInvalidCredentials, http.StatusUnauthorized, `{"error":"invalid username or password"}`},
		{"storage", apperr.Storage("insert", errors.New("secret dsn detail")), http.StatusInternalServerError, `{"error":"internal error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Error(c, "request failed", tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestBadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	BadRequest(c, "bind failed", errors.New("EOF"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid request"}`, w.Body.String())
}
