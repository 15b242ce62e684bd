// Package dto defines data transfer objects for the FoodData Central API responses.
package dto

// SearchResponse represents the JSON response from the /foods/search endpoint.
type SearchResponse struct {
	TotalHits   int `json:"totalHits"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Foods       []struct {
		FdcID       int    `json:"fdcId"`
		Description string `json:"description"`
		DataType    string `json:"dataType"`
		BrandOwner  string `json:"brandOwner,omitempty"`
	} `json:"foods"`
}

// FoodResponse represents the JSON response from the /food/{fdcId} endpoint.
type FoodResponse struct {
	FdcID         int    `json:"fdcId"`
	Description   string `json:"description"`
	BrandOwner    string `json:"brandOwner,omitempty"`
	Ingredients   string `json:"ingredients,omitempty"`
	FoodNutrients []struct {
		Nutrient *struct {
			ID       int    `json:"id"`
			Name     string `json:"name"`
			UnitName string `json:"unitName"`
		} `json:"nutrient"`
		// Amount is absent for nutrients without a measured value.
		Amount *float64 `json:"amount"`
	} `json:"foodNutrients"`
}
