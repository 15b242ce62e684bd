// Package entity defines the domain models for the nutrition feature.
package entity

import "time"

// FoodSummary is one hit of a food search.
type FoodSummary struct {
	FdcID       int
	Description string
	DataType    string
	BrandOwner  string
}

// SearchResult is a page of food search hits.
type SearchResult struct {
	TotalHits int
	Foods     []FoodSummary
}

// NutrientAmount is the amount of one nutrient per 100g (or per serving for branded foods).
type NutrientAmount struct {
	Amount     float64 `json:"amount"`
	Unit       string  `json:"unit"`
	NutrientID int     `json:"nutrientId,omitempty"`
}

// NutritionInfo is the normalized nutrition facts of a food, keyed by the
// USDA nutrient name (e.g. "Protein", "Total lipid (fat)").
type NutritionInfo struct {
	FdcID       int
	Description string
	BrandOwner  string
	Ingredients string
	Nutrients   map[string]NutrientAmount
}

// CommonNutrientSet is the summary shown to users. A nil field means the
// food does not report that nutrient.
type CommonNutrientSet struct {
	Calories      *NutrientAmount `json:"calories"`
	Protein       *NutrientAmount `json:"protein"`
	Carbohydrates *NutrientAmount `json:"carbohydrates"`
	Fat           *NutrientAmount `json:"fat"`
	Fiber         *NutrientAmount `json:"fiber"`
	Sugar         *NutrientAmount `json:"sugar"`
	Sodium        *NutrientAmount `json:"sodium"`
	Calcium       *NutrientAmount `json:"calcium"`
	Iron          *NutrientAmount `json:"iron"`
	VitaminC      *NutrientAmount `json:"vitaminC"`
}

// CommonNutrients picks the commonly tracked nutrients out of info.
func CommonNutrients(info NutritionInfo) CommonNutrientSet {
	var set CommonNutrientSet
	targets := map[string]**NutrientAmount{
		"Energy":                         &set.Calories,
		"Protein":                        &set.Protein,
		"Carbohydrate, by difference":    &set.Carbohydrates,
		"Total lipid (fat)":              &set.Fat,
		"Fiber, total dietary":           &set.Fiber,
		"Sugars, total including NLEA":   &set.Sugar,
		"Sodium, Na":                     &set.Sodium,
		"Calcium, Ca":                    &set.Calcium,
		"Iron, Fe":                       &set.Iron,
		"Vitamin C, total ascorbic acid": &set.VitaminC,
	}
	for name, dst := range targets {
		if n, ok := info.Nutrients[name]; ok {
			*dst = &NutrientAmount{Amount: n.Amount, Unit: n.Unit}
		}
	}
	return set
}

// FavoriteFood is a food a user saved, with a snapshot of its nutrition data.
// (UserID, FdcID) is unique.
type FavoriteFood struct {
	ID            uint
	UserID        uint
	FdcID         int
	FoodName      string
	NutritionData map[string]any
	CreatedAt     time.Time
}
