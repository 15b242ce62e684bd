package adapters

import (
	"time"

	"health_backend/internal/feature/auth/domain/entity"
)

// SessionModel はRedis未設定時に使うsessionsテーブルの行です。
// ユーザー削除時はON DELETE CASCADEで一緒に消えます。
type SessionModel struct {
	ID        string      `gorm:"primaryKey;size:64"`
	UserID    uint        `gorm:"index;not null"`
	User      entity.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Username  string      `gorm:"size:50;not null"`
	UserAgent string      `gorm:"size:512"`
	IPAddress string      `gorm:"size:45"`
	CreatedAt time.Time   `gorm:"not null"`
	ExpiresAt time.Time   `gorm:"index;not null"`
}

func (SessionModel) TableName() string { return "sessions" }

func (m *SessionModel) toEntity() *entity.Session {
	s := entity.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		Username:  m.Username,
		UserAgent: m.UserAgent,
		IPAddress: m.IPAddress,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
	}
	return &s
}

func toSessionModel(s *entity.Session) *SessionModel {
	m := SessionModel{
		ID:        s.ID,
		UserID:    s.UserID,
		Username:  s.Username,
		UserAgent: s.UserAgent,
		IPAddress: s.IPAddress,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
	return &m
}
