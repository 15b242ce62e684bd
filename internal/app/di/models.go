package di

import (
	authadapters "health_backend/internal/feature/auth/adapters"
	authentity "health_backend/internal/feature/auth/domain/entity"
	nutritionadapters "health_backend/internal/feature/nutrition/adapters"
	supplementsadapters "health_backend/internal/feature/supplements/adapters"
	weightadapters "health_backend/internal/feature/weight/adapters"
)

// Models はマイグレーション対象のモデルです。usersを先頭に置きます。
func Models() []any {
	return []any{
		&authentity.User{},
		&authadapters.SessionModel{},
		&weightadapters.WeightRecordModel{},
		&weightadapters.GoalModel{},
		&supplementsadapters.SupplementModel{},
		&nutritionadapters.FavoriteFoodModel{},
	}
}
