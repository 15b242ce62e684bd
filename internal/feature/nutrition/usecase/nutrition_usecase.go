// Package usecase はUSDA食品検索とお気に入り食品のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"health_backend/internal/feature/nutrition/domain/entity"
	"health_backend/internal/shared/apperr"
)

const (
	// DefaultPageSize は検索結果のデフォルト件数です。
	DefaultPageSize = 20
	// MaxPageSize は検索結果の最大件数です。
	MaxPageSize = 50

	maxFoodNameLength = 255

	ReasonMissingFields = "missing fields"
	ReasonTooLong       = "too long"
	ReasonAlreadySaved  = "already saved"
)

// FoodCatalog は外部の食品データベース（USDA FoodData Central）を抽象化します。
type FoodCatalog interface {
	// SearchFoods はキーワードで食品を検索します。
	SearchFoods(ctx context.Context, query string, pageSize int) (*entity.SearchResult, error)
	// GetFood は食品の栄養情報を取得します。存在しない場合、ErrFoodNotFoundを返します。
	GetFood(ctx context.Context, fdcID int) (*entity.NutritionInfo, error)
}

// FavoriteRepository はお気に入り食品の永続化層を抽象化します。
type FavoriteRepository interface {
	// Create は(user_id, fdc_id)が重複する場合、ErrDuplicateFavoriteを返します。
	Create(ctx context.Context, f *entity.FavoriteFood) error
	// Delete はユーザーが所有するお気に入りのみ削除します。該当なしはErrFavoriteNotFoundです。
	Delete(ctx context.Context, userID, id uint) error
	// ListByUser は保存日時の新しい順に返します。
	ListByUser(ctx context.Context, userID uint) ([]entity.FavoriteFood, error)
}

// FoodDetails は食品詳細と主要栄養素のまとめです。
type FoodDetails struct {
	Info   entity.NutritionInfo
	Common entity.CommonNutrientSet
}

type nutritionUsecase struct {
	catalog   FoodCatalog
	favorites FavoriteRepository
}

// NewNutritionUsecase はnutritionUsecaseの新しいインスタンスを生成します。
func NewNutritionUsecase(catalog FoodCatalog, favorites FavoriteRepository) *nutritionUsecase {
	return &nutritionUsecase{catalog: catalog, favorites: favorites}
}

// ClampPageSize はページサイズを1..MaxPageSizeに収めます。0以下はデフォルト値です。
func ClampPageSize(n int) int {
	switch {
	case n <= 0:
		return DefaultPageSize
	case n > MaxPageSize:
		return MaxPageSize
	default:
		return n
	}
}

// upstream は外部APIのエラーをErrUpstreamとして分類します。NotFoundはそのまま返します。
func upstream(op string, err error) error {
	if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrUpstream) {
		return err
	}
	return fmt.Errorf("%s: %w: %v", op, apperr.ErrUpstream, err)
}

// Search は食品を検索します。空白のみのクエリは外部APIを呼ばずに空の結果を返します。
func (u *nutritionUsecase) Search(ctx context.Context, query string, pageSize int) (*entity.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &entity.SearchResult{Foods: []entity.FoodSummary{}}, nil
	}
	res, err := u.catalog.SearchFoods(ctx, query, ClampPageSize(pageSize))
	if err != nil {
		return nil, upstream("search foods", err)
	}
	return res, nil
}

// Details は食品の栄養情報と主要栄養素を返します。
func (u *nutritionUsecase) Details(ctx context.Context, fdcID int) (*FoodDetails, error) {
	if fdcID <= 0 {
		return nil, ErrFoodNotFound
	}
	info, err := u.catalog.GetFood(ctx, fdcID)
	if err != nil {
		return nil, upstream("get food", err)
	}
	return &FoodDetails{Info: *info, Common: entity.CommonNutrients(*info)}, nil
}

// SaveFavorite は食品をお気に入りに保存します。同じ食品は1ユーザーにつき1件です。
func (u *nutritionUsecase) SaveFavorite(ctx context.Context, userID uint, fdcID int, foodName string, data map[string]any) (*entity.FavoriteFood, error) {
	foodName = strings.TrimSpace(foodName)
	if fdcID <= 0 || foodName == "" {
		return nil, apperr.Validation(ReasonMissingFields)
	}
	if utf8.RuneCountInString(foodName) > maxFoodNameLength {
		return nil, apperr.Validation(ReasonTooLong)
	}
	if data == nil {
		data = map[string]any{}
	}

	f := &entity.FavoriteFood{UserID: userID, FdcID: fdcID, FoodName: foodName, NutritionData: data}
	if err := u.favorites.Create(ctx, f); err != nil {
		if errors.Is(err, ErrDuplicateFavorite) {
			return nil, apperr.Conflict(ReasonAlreadySaved)
		}
		return nil, apperr.Storage("create favorite", err)
	}
	return f, nil
}

// ListFavorites はお気に入りを新しい順に返します。
func (u *nutritionUsecase) ListFavorites(ctx context.Context, userID uint) ([]entity.FavoriteFood, error) {
	fs, err := u.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("list favorites", err)
	}
	return fs, nil
}

// DeleteFavorite はユーザー自身のお気に入りを削除します。
func (u *nutritionUsecase) DeleteFavorite(ctx context.Context, userID, id uint) error {
	err := u.favorites.Delete(ctx, userID, id)
	if err == nil || errors.Is(err, ErrFavoriteNotFound) {
		return err
	}
	return apperr.Storage("delete favorite", err)
}
