// Package di はアプリケーション部品の組み立て（依存性注入）を行うファクトリーを提供します。
package di

import (
	authadapters "health_backend/internal/feature/auth/adapters"
	"health_backend/internal/feature/auth/usecase"
	"health_backend/internal/platform/session"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewSessionRepository はSessionRepositoryの実装を返します。
// Redisが利用可能な場合はRedis実装、そうでなければDB（sessionsテーブル）実装です。
func NewSessionRepository(rdb *redis.Client, db *gorm.DB, keyPrefix string) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, keyPrefix)
	}
	return authadapters.NewSessionGorm(db)
}
