package usecase

import (
	"context"

	"health_backend/internal/feature/auth/domain/entity"
)

// SessionRepository はログインセッションの保存先です。
// Redis実装（platform/session）とDB実装（adapters）があります。
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error

	// FindByID は期限内のセッションを返します。期限切れ・存在しない場合はErrSessionNotFoundです。
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Delete は存在しないIDに対してもエラーを返しません。
	Delete(ctx context.Context, id string) error

	// DeleteByUserID はアカウント削除時にユーザーの全セッションを破棄します。
	DeleteByUserID(ctx context.Context, userID uint) error

	// DeleteExpired は期限切れのセッションを削除し、削除件数を返します。
	DeleteExpired(ctx context.Context) (int64, error)
}
