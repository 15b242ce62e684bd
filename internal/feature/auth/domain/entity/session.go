package entity

import "time"

// Session is a server-side login record referenced by an opaque cookie token.
type Session struct {
	ID        string    // Opaque token value (64-character hex string)
	UserID    uint      // Authenticated user
	Username  string    // Display name captured at login
	UserAgent string    // Client's User-Agent header
	IPAddress string    // Client's IP address
	CreatedAt time.Time // Login time
	ExpiresAt time.Time // Fixed expiry, CreatedAt + session TTL
}

// IsExpired returns true if the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return !time.Now().Before(s.ExpiresAt)
}
