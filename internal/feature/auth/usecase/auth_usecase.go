// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"health_backend/internal/feature/auth/domain/entity"
	"health_backend/internal/shared/apperr"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// sessionTokenBytes はセッショントークンのバイト数です（hexで64文字）。
	sessionTokenBytes = 32

	// ValidationErrorのreason
	ReasonMissingFields = "missing fields"
	ReasonMismatch      = "mismatch"
	ReasonTooShort      = "too short"
	ReasonWeakPassword  = "weak password"

	// ConflictErrorのreason
	ReasonDuplicate = "duplicate"

	// dummyHash はユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュです。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	dummySalt = "00000000000000000000000000000000"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// ユーザー名またはメールアドレスが重複する場合、ErrDuplicateUserを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername はユーザー名に完全一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// ExistsByUsernameOrEmail はユーザー名またはメールアドレスが既に使われているかを返します。
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// Delete はユーザーを削除します。所有レコードはカスケード削除されます。
	Delete(ctx context.Context, id uint) error
}

// PasswordHasher はソルト付きパスワードハッシュのインターフェースです。
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(password, salt string) (string, error)
	Verify(password, hash, salt string) bool
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, username string) (string, error)
}

// RegisterInput は登録フォームの入力値です。
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginInput はログインフォームの入力値とクライアント情報です。
type LoginInput struct {
	Username  string
	Password  string
	UserAgent string
	IPAddress string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	sessions     SessionRepository
	hasher       PasswordHasher
	jwtGenerator JWTGenerator
	sessionTTL   time.Duration
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// jwtGeneratorがnilの場合、APIトークンの発行は無効になります。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, hasher PasswordHasher,
	jwtGenerator JWTGenerator, sessionTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:        users,
		sessions:     sessions,
		hasher:       hasher,
		jwtGenerator: jwtGenerator,
		sessionTTL:   sessionTTL,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
// 小文字・大文字・数字と、そのいずれでもない文字を1つ以上含む必要があります。
func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return apperr.Validation(ReasonTooShort)
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		// 文字種はASCIIで判定し、それ以外の文字はすべて記号扱い
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}
	if !lower || !upper || !digit || !special {
		return apperr.Validation(ReasonWeakPassword)
	}
	return nil
}

// Register は入力を検証し、ソルト付きハッシュで新規ユーザーを登録します。
// 検証は記載順に行い、最初の失敗で打ち切ります。セッションは発行しません。
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if username == "" || email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, apperr.Validation(ReasonMissingFields)
	}
	if in.Password != in.ConfirmPassword {
		return nil, apperr.Validation(ReasonMismatch)
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	exists, err := u.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, apperr.Storage("check existing user", err)
	}
	if exists {
		return nil, apperr.Conflict(ReasonDuplicate)
	}

	salt, err := u.hasher.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := u.hasher.Hash(in.Password, salt)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
	}
	if err := u.users.Create(ctx, user); err != nil {
		// 存在確認と作成の間に同じユーザー名が登録された場合
		if errors.Is(err, ErrDuplicateUser) {
			return nil, apperr.Conflict(ReasonDuplicate)
		}
		return nil, apperr.Storage("create user", err)
	}
	return user, nil
}

// authenticate はユーザー名とパスワードを検証します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもハッシュ検証を実行します。
func (u *authUsecase) authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	if username == "" || password == "" {
		return nil, apperr.Validation(ReasonMissingFields)
	}

	user, err := u.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, apperr.Storage("find user", err)
	}

	hash, salt := dummyHash, dummySalt
	if user != nil {
		hash, salt = user.PasswordHash, user.Salt
	}

	// ユーザー未検出またはパスワード不一致の場合、同一の汎用エラーを返す
	if ok := u.hasher.Verify(password, hash, salt); !ok || user == nil {
		return nil, apperr.ErrInvalidCredentials
	}
	return user, nil
}

// Login はユーザーを認証し、新しいセッションを値として返します。
// セッションの永続化とCookie設定は呼び出し側（transport層）が行います。
func (u *authUsecase) Login(ctx context.Context, in LoginInput) (*entity.Session, error) {
	user, err := u.authenticate(ctx, strings.TrimSpace(in.Username), in.Password)
	if err != nil {
		return nil, err
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &entity.Session{
		ID:        token,
		UserID:    user.ID,
		Username:  user.Username,
		UserAgent: in.UserAgent,
		IPAddress: in.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}, nil
}

// IssueToken はユーザーを認証し、APIクライアント用の署名済みJWTトークンを返します。
func (u *authUsecase) IssueToken(ctx context.Context, username, password string) (string, error) {
	if u.jwtGenerator == nil {
		return "", ErrTokensDisabled
	}
	user, err := u.authenticate(ctx, strings.TrimSpace(username), password)
	if err != nil {
		return "", err
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// CurrentUser はログイン中のユーザー情報を返します。
// セッションが残っていてもユーザーが削除済みの場合は未認証として扱います。
func (u *authUsecase) CurrentUser(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.ErrUnauthenticated
		}
		return nil, apperr.Storage("find user", err)
	}
	return user, nil
}

// DeleteAccount はパスワードを再確認した上でユーザーを削除し、全セッションを破棄します。
// 体重・目標・サプリメント・お気に入り食品はカスケード削除されます。
func (u *authUsecase) DeleteAccount(ctx context.Context, userID uint, password string) error {
	if password == "" {
		return apperr.Validation(ReasonMissingFields)
	}
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperr.ErrUnauthenticated
		}
		return apperr.Storage("find user", err)
	}
	if !u.hasher.Verify(password, user.PasswordHash, user.Salt) {
		return apperr.ErrInvalidCredentials
	}

	// セッション失効を先に行い、失敗時はユーザーを残したままエラーにする
	if err := u.sessions.DeleteByUserID(ctx, userID); err != nil {
		return apperr.Storage("delete sessions", err)
	}
	if err := u.users.Delete(ctx, userID); err != nil {
		return apperr.Storage("delete user", err)
	}
	return nil
}

// newSessionToken は推測不能なセッショントークンを生成します。
func newSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
