package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"health_backend/internal/feature/auth/domain/entity"
	"health_backend/internal/feature/auth/usecase"
	jwtmw "health_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

// ContextSession is the gin context key holding the current *entity.Session.
const ContextSession = "session"

// Options configures the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// UserLookup resolves the owner of a bearer token. It returns
// usecase.ErrUserNotFound once the account has been deleted.
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// Manager binds sessions stored in a SessionRepository to clients via an
// HttpOnly, SameSite=Lax cookie.
type Manager struct {
	repo  usecase.SessionRepository
	users UserLookup
	opts  Options
}

// NewManager creates a Manager over repo. Bearer tokens are only honoured
// while users still finds their owner; a nil users skips that check.
func NewManager(repo usecase.SessionRepository, users UserLookup, opts Options) *Manager {
	return &Manager{repo: repo, users: users, opts: opts}
}

// Establish persists s and sets the session cookie on the response.
func (m *Manager) Establish(c *gin.Context, s *entity.Session) error {
	if err := m.repo.Create(c.Request.Context(), s); err != nil {
		return err
	}
	m.setCookie(c, s.ID, int(m.opts.TTL.Seconds()))
	m.bind(c, s)
	return nil
}

// Destroy ends the current session. A failure to delete the stored record is
// only logged; the cookie is always cleared.
func (m *Manager) Destroy(c *gin.Context) {
	if id, err := c.Cookie(m.opts.CookieName); err == nil && id != "" {
		if err := m.repo.Delete(c.Request.Context(), id); err != nil {
			slog.Warn("failed to delete session", "error", err, "remote_addr", c.ClientIP())
		}
	}
	m.setCookie(c, "", -1)
	c.Set(ContextSession, nil)
	c.Set(jwtmw.ContextUserID, uint(0))
}

// Load resolves the session cookie into the request context. Requests without
// a valid session continue anonymously.
func (m *Manager) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(m.opts.CookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}

		s, err := m.repo.FindByID(c.Request.Context(), id)
		switch {
		case err == nil:
			m.bind(c, s)
		case errors.Is(err, usecase.ErrSessionNotFound):
			// stale cookie from an expired or revoked session
			m.setCookie(c, "", -1)
		default:
			slog.Error("failed to load session", "error", err, "remote_addr", c.ClientIP())
		}
		c.Next()
	}
}

// RequireUser rejects requests that have neither a session nor a valid bearer
// token. tokens may be nil when bearer tokens are disabled.
func (m *Manager) RequireUser(tokens jwtmw.TokenParser) gin.HandlerFunc {
	bearer := jwtmw.AuthRequired(tokens)
	return func(c *gin.Context) {
		if _, ok := Current(c); ok {
			c.Next()
			return
		}
		if _, ok := jwtmw.BearerToken(c); ok {
			bearer(c)
			if c.IsAborted() || !m.tokenOwnerExists(c) {
				return
			}
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
}

// tokenOwnerExists rejects bearer tokens whose account has been deleted.
func (m *Manager) tokenOwnerExists(c *gin.Context) bool {
	if m.users == nil {
		return true
	}
	userID, _ := UserID(c)
	_, err := m.users.FindByID(c.Request.Context(), userID)
	switch {
	case err == nil:
		return true
	case errors.Is(err, usecase.ErrUserNotFound):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	default:
		slog.Error("failed to load token owner", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
	return false
}

// RejectAuthenticated stops logged-in clients from reaching login and
// registration endpoints.
func (m *Manager) RejectAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Current(c); ok {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "already logged in"})
			return
		}
		c.Next()
	}
}

func (m *Manager) bind(c *gin.Context, s *entity.Session) {
	c.Set(ContextSession, s)
	c.Set(jwtmw.ContextUserID, s.UserID)
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, value, maxAge, "/", "", m.opts.Secure, true)
}

// Current returns the session bound to the request, if any.
func Current(c *gin.Context) (*entity.Session, bool) {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil, false
	}
	s, ok := v.(*entity.Session)
	return s, ok && s != nil
}

// UserID returns the authenticated user's ID set by a session or bearer token.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(jwtmw.ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
