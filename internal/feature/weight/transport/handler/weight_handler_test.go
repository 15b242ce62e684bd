package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"health_backend/internal/feature/weight/domain/entity"
	"health_backend/internal/feature/weight/usecase"
	jwtmw "health_backend/internal/platform/jwt"
	"health_backend/internal/shared/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWeightUsecase is a mock implementation of the WeightUsecase interface.
type mockWeightUsecase struct {
	AddWeightFunc    func(userID uint, weight, recordDate string) (*entity.WeightRecord, error)
	DeleteWeightFunc func(userID, id uint) error
	ListWeightsFunc  func(userID uint) ([]entity.WeightRecord, error)
	SetGoalFunc      func(userID uint, targetWeight, targetDate string) (*entity.Goal, error)
	GetGoalFunc      func(userID uint) (*entity.Goal, error)
}

func (m *mockWeightUsecase) AddWeight(_ context.Context, userID uint, weight, recordDate string) (*entity.WeightRecord, error) {
	return m.AddWeightFunc(userID, weight, recordDate)
}

func (m *mockWeightUsecase) DeleteWeight(_ context.Context, userID, id uint) error {
	return m.DeleteWeightFunc(userID, id)
}

func (m *mockWeightUsecase) ListWeights(_ context.Context, userID uint) ([]entity.WeightRecord, error) {
	return m.ListWeightsFunc(userID)
}

func (m *mockWeightUsecase) SetGoal(_ context.Context, userID uint, targetWeight, targetDate string) (*entity.Goal, error) {
	return m.SetGoalFunc(userID, targetWeight, targetDate)
}

func (m *mockWeightUsecase) GetGoal(_ context.Context, userID uint) (*entity.Goal, error) {
	return m.GetGoalFunc(userID)
}

func newRouter(uc WeightUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWeightHandler(uc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, uint(7))
		c.Next()
	})
	r.GET("/weights", h.List)
	r.POST("/weights", h.Add)
	r.DELETE("/weights/:id", h.Delete)
	r.GET("/goal", h.GetGoal)
	r.PUT("/goal", h.SetGoal)
	return r
}

func TestWeightHandler_Add(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		body           string
		contentType    string
		addErr         error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "json number",
			body:           `{"weight":71.5,"record_date":"2024-05-01"}`,
			contentType:    "application/json",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":1,"weight":71.5,"record_date":"2024-05-01"}`,
		},
		{
			name:           "json string",
			body:           `{"weight":"71.5","record_date":"2024-05-01"}`,
			contentType:    "application/json",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":1,"weight":71.5,"record_date":"2024-05-01"}`,
		},
		{
			name:           "form",
			body:           url.Values{"weight": {"71.5"}, "record_date": {"2024-05-01"}}.Encode(),
			contentType:    "application/x-www-form-urlencoded",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":1,"weight":71.5,"record_date":"2024-05-01"}`,
		},
		{
			name:           "validation error",
			body:           `{"weight":"abc","record_date":"2024-05-01"}`,
			contentType:    "application/json",
			addErr:         apperr.Validation(usecase.ReasonInvalidWeight),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid weight"}`,
		},
		{
			name:           "storage error",
			body:           `{"weight":"71.5","record_date":"2024-05-01"}`,
			contentType:    "application/json",
			addErr:         apperr.Storage("upsert weight", errors.New("db down")),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockWeightUsecase{AddWeightFunc: func(userID uint, weight, recordDate string) (*entity.WeightRecord, error) {
				assert.Equal(t, uint(7), userID)
				if tt.addErr != nil {
					return nil, tt.addErr
				}
				assert.Equal(t, "71.5", weight)
				assert.Equal(t, "2024-05-01", recordDate)
				return &entity.WeightRecord{ID: 1, UserID: userID, Weight: 71.5, RecordDate: date}, nil
			}}
			req := httptest.NewRequest(http.MethodPost, "/weights", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()
			newRouter(uc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestWeightHandler_List(t *testing.T) {
	uc := &mockWeightUsecase{ListWeightsFunc: func(uint) ([]entity.WeightRecord, error) {
		return []entity.WeightRecord{
			{ID: 2, Weight: 70, RecordDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
			{ID: 1, Weight: 71, RecordDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		}, nil
	}}
	w := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/weights", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":2,"weight":70,"record_date":"2024-05-02"},{"id":1,"weight":71,"record_date":"2024-05-01"}]`, w.Body.String())
}

func TestWeightHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		deleteErr      error
		expectedStatus int
	}{
		{"success", "/weights/3", nil, http.StatusNoContent},
		{"not found", "/weights/3", usecase.ErrWeightNotFound, http.StatusNotFound},
		{"non numeric id", "/weights/abc", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockWeightUsecase{DeleteWeightFunc: func(userID, id uint) error {
				assert.Equal(t, uint(7), userID)
				assert.Equal(t, uint(3), id)
				return tt.deleteErr
			}}
			w := httptest.NewRecorder()
			newRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, tt.path, nil))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestWeightHandler_Goal(t *testing.T) {
	t.Run("unset goal is null", func(t *testing.T) {
		uc := &mockWeightUsecase{GetGoalFunc: func(uint) (*entity.Goal, error) { return nil, nil }}
		w := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/goal", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"goal":null}`, w.Body.String())
	})

	t.Run("set goal with date", func(t *testing.T) {
		target := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		uc := &mockWeightUsecase{SetGoalFunc: func(userID uint, targetWeight, targetDate string) (*entity.Goal, error) {
			assert.Equal(t, "78", targetWeight)
			assert.Equal(t, "2025-01-01", targetDate)
			return &entity.Goal{ID: 1, UserID: userID, TargetWeight: 78, TargetDate: &target}, nil
		}}
		req := httptest.NewRequest(http.MethodPut, "/goal", strings.NewReader(`{"target_weight":78,"target_date":"2025-01-01"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Goal struct {
				TargetWeight float64 `json:"target_weight"`
				TargetDate   *string `json:"target_date"`
			} `json:"goal"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.InDelta(t, 78.0, body.Goal.TargetWeight, 1e-9)
		require.NotNil(t, body.Goal.TargetDate)
		assert.Equal(t, "2025-01-01", *body.Goal.TargetDate)
	})

	t.Run("missing target weight", func(t *testing.T) {
		uc := &mockWeightUsecase{SetGoalFunc: func(uint, string, string) (*entity.Goal, error) {
			return nil, apperr.Validation(usecase.ReasonMissingFields)
		}}
		req := httptest.NewRequest(http.MethodPut, "/goal", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"missing fields"}`, w.Body.String())
	})
}
