// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"health_backend/internal/feature/auth/domain/entity"
	"health_backend/internal/feature/auth/transport/http/dto"
	"health_backend/internal/feature/auth/usecase"
	"health_backend/internal/platform/http/response"
	"health_backend/internal/platform/session"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, in usecase.LoginInput) (*entity.Session, error)
	IssueToken(ctx context.Context, username, password string) (string, error)
	CurrentUser(ctx context.Context, userID uint) (*entity.User, error)
	DeleteAccount(ctx context.Context, userID uint, password string) error
}

// SessionBinder はセッションをクライアント（Cookie）に結び付けます。
type SessionBinder interface {
	Establish(c *gin.Context, s *entity.Session) error
	Destroy(c *gin.Context)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth     AuthUsecase
	sessions SessionBinder
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase, sessions SessionBinder) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

func toUserRes(u *entity.User) dto.UserRes {
	return dto.UserRes{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

// Register はユーザー登録エンドポイントを処理します。
// - 検証エラー時は400、ユーザー名/メール重複時は409を返却
// - 成功時は201を返却（セッションは発行しない）
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "register bind failed", err)
		return
	}
	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		response.Error(c, "register failed", err)
		return
	}
	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, toUserRes(user))
}

// Login はユーザーログインエンドポイントを処理します。
// - 認証失敗時は存在しないユーザーとパスワード誤りを区別せず401を返却
// - 成功時はセッションCookieを設定して200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "login bind failed", err)
		return
	}
	s, err := h.auth.Login(c.Request.Context(), usecase.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, "login failed", err)
		return
	}
	if err := h.sessions.Establish(c, s); err != nil {
		slog.Error("failed to store session", "error", err, "user_id", s.UserID, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, response.ErrorBody{Error: "internal error"})
		return
	}
	slog.Info("user login successful", "user_id", s.UserID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"user_id": s.UserID, "username": s.Username, "expires_at": s.ExpiresAt})
}

// Logout はセッションを無条件に破棄します。
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Destroy(c)
	c.JSON(http.StatusOK, dto.MessageRes{Message: "logged out"})
}

// Token はAPIクライアント向けにJWTトークンを発行します。
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "token bind failed", err)
		return
	}
	token, err := h.auth.IssueToken(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, usecase.ErrTokensDisabled) {
		c.JSON(http.StatusNotImplemented, response.ErrorBody{Error: err.Error()})
		return
	}
	if err != nil {
		response.Error(c, "token issuance failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenRes{Token: token})
}

// Me はログイン中のユーザー情報を返します。
func (h *AuthHandler) Me(c *gin.Context) {
	userID, _ := session.UserID(c)
	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, "load current user failed", err)
		return
	}
	c.JSON(http.StatusOK, toUserRes(user))
}

// DeleteAccount はパスワード確認の上でアカウントと全データを削除し、ログアウトさせます。
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	var req dto.DeleteAccountReq
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "delete account bind failed", err)
		return
	}
	userID, _ := session.UserID(c)
	if err := h.auth.DeleteAccount(c.Request.Context(), userID, req.Password); err != nil {
		response.Error(c, "delete account failed", err)
		return
	}
	h.sessions.Destroy(c)
	slog.Info("account deleted", "user_id", userID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.MessageRes{Message: "account deleted"})
}
