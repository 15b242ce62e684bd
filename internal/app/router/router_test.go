package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"health_backend/internal/app/di"
	"health_backend/internal/platform/config"
	"health_backend/internal/platform/db"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPassword = "Passw0rd!"

// client は1ユーザー分のCookieを保持してルーターを呼び出します。
type client struct {
	t       *testing.T
	r       *gin.Engine
	cookies []*http.Cookie
	bearer  string
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return setupRouterWith(t, func(*config.Config) {})
}

// setupRouterWith は設定を差し替えてからルーターを組み立てます。
func setupRouterWith(t *testing.T, modify func(*config.Config)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb, di.Models()...))

	usda := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/foods/search":
			_, _ = w.Write([]byte(`{"totalHits":1,"foods":[{"fdcId":1102702,"description":"Apples, raw","dataType":"Foundation"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(usda.Close)

	cfg := &config.Config{
		Session:  config.SessionConfig{CookieName: "sessionId", TTL: time.Hour},
		Password: config.PasswordConfig{Cost: 4},
		USDA:     config.USDAConfig{APIKey: "k", BaseURL: usda.URL, Timeout: time.Second},
	}
	modify(cfg)
	h, err := di.NewHandlers(cfg, gdb, di.NewSessionRepository(nil, gdb, "session"))
	require.NoError(t, err)
	return NewRouter(config.ServerConfig{}, h)
}

func TestRouter_Healthz(t *testing.T) {
	r := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_ProtectedRoutesRequireLogin(t *testing.T) {
	r := setupRouter(t)
	for _, path := range []string{"/me", "/dashboard", "/search?q=x", "/weights", "/goal", "/supplements", "/nutrition/favorites"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRouter_UserJourney(t *testing.T) {
	c := &client{t: t, r: setupRouter(t)}

	w := c.do(http.MethodPost, "/register", map[string]string{
		"username": "alice", "email": "alice@example.com",
		"password": testPassword, "confirm_password": testPassword,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = c.do(http.MethodPost, "/login", map[string]string{"username": "alice", "password": testPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotEmpty(t, c.cookies)

	// ログイン済みでの再ログインは拒否
	w = c.do(http.MethodPost, "/login", map[string]string{"username": "alice", "password": testPassword})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 同じ日付は上書き
	w = c.do(http.MethodPost, "/weights", map[string]any{"weight": 70.5, "record_date": "2024-05-01"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = c.do(http.MethodPost, "/weights", map[string]any{"weight": "71.25", "record_date": "2024-05-01"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodPut, "/goal", map[string]any{"target_weight": 65, "target_date": "2024-12-31"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodPost, "/supplements", map[string]string{"supplement_name": "Vitamin D", "dosage": "1000 IU"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = c.do(http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode(t, w)
	weights := dash["recent_weights"].([]any)
	require.Len(t, weights, 1)
	assert.InDelta(t, 71.25, weights[0].(map[string]any)["weight"], 1e-9)
	assert.InDelta(t, 65.0, dash["goal"].(map[string]any)["target_weight"], 1e-9)
	assert.Len(t, dash["supplements"], 1)

	w = c.do(http.MethodGet, "/search?q="+url.QueryEscape("supplement vitamin"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	found := decode(t, w)
	assert.Equal(t, true, found["has_results"])
	assert.Len(t, found["supplements"], 1)
	assert.Empty(t, found["weight_records"])

	w = c.do(http.MethodGet, "/nutrition/search?q=apple", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode(t, w)["foods"], 1)

	w = c.do(http.MethodPost, "/nutrition/favorites", map[string]any{"fdc_id": 1102702, "food_name": "Apples, raw"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = c.do(http.MethodPost, "/nutrition/favorites", map[string]any{"fdc_id": 1102702, "food_name": "Apples, raw"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = c.do(http.MethodGet, "/nutrition/foods/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.do(http.MethodDelete, "/account", map[string]string{"password": testPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodGet, "/weights", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 削除後は同じユーザー名で再登録できる
	w = c.do(http.MethodPost, "/register", map[string]string{
		"username": "alice", "email": "alice@example.com",
		"password": testPassword, "confirm_password": testPassword,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestRouter_UsersAreIsolated(t *testing.T) {
	r := setupRouter(t)
	alice := &client{t: t, r: r}
	bob := &client{t: t, r: r}

	for name, c := range map[string]*client{"alice": alice, "bob": bob} {
		w := c.do(http.MethodPost, "/register", map[string]string{
			"username": name, "email": name + "@example.com",
			"password": testPassword, "confirm_password": testPassword,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		w = c.do(http.MethodPost, "/login", map[string]string{"username": name, "password": testPassword})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := alice.do(http.MethodPost, "/supplements", map[string]string{"supplement_name": "Zinc"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := int(decode(t, w)["id"].(float64))

	w = bob.do(http.MethodGet, "/supplements", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = bob.do(http.MethodDelete, "/supplements/"+strconv.Itoa(id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = alice.do(http.MethodDelete, "/supplements/"+strconv.Itoa(id), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_BearerTokenRejectedAfterAccountDeletion(t *testing.T) {
	r := setupRouterWith(t, func(cfg *config.Config) {
		cfg.JWT = config.JWTConfig{Secret: "test-secret", Expiration: time.Hour}
	})
	api := &client{t: t, r: r}

	w := api.do(http.MethodPost, "/register", map[string]string{
		"username": "carol", "email": "carol@example.com",
		"password": testPassword, "confirm_password": testPassword,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	api.cookies = nil

	w = api.do(http.MethodPost, "/api/token", map[string]string{"username": "carol", "password": testPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	api.bearer = token

	w = api.do(http.MethodPost, "/weights", map[string]any{"weight": 60, "record_date": "2024-05-01"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodDelete, "/account", map[string]string{"password": testPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 削除済みユーザーのトークンでは書き込みも読み出しもできない
	w = api.do(http.MethodPost, "/weights", map[string]any{"weight": 61, "record_date": "2024-05-02"})
	assert.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	w = api.do(http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
}
