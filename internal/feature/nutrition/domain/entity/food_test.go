package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommonNutrients(t *testing.T) {
	info := NutritionInfo{
		Description: "Apple, raw",
		Nutrients: map[string]NutrientAmount{
			"Energy":                         {Amount: 52, Unit: "kcal", NutrientID: 1008},
			"Protein":                        {Amount: 0.26, Unit: "g", NutrientID: 1003},
			"Total lipid (fat)":              {Amount: 0.17, Unit: "g"},
			"Vitamin C, total ascorbic acid": {Amount: 4.6, Unit: "mg"},
			"Water":                          {Amount: 85.6, Unit: "g"},
		},
	}

	got := CommonNutrients(info)

	require.NotNil(t, got.Calories)
	assert.Equal(t, NutrientAmount{Amount: 52, Unit: "kcal"}, *got.Calories, "nutrient id is not carried over")
	require.NotNil(t, got.Protein)
	assert.InDelta(t, 0.26, got.Protein.Amount, 1e-9)
	require.NotNil(t, got.Fat)
	require.NotNil(t, got.VitaminC)
	assert.Equal(t, "mg", got.VitaminC.Unit)

	assert.Nil(t, got.Carbohydrates)
	assert.Nil(t, got.Fiber)
	assert.Nil(t, got.Sugar)
	assert.Nil(t, got.Sodium)
	assert.Nil(t, got.Calcium)
	assert.Nil(t, got.Iron)
}

func TestCommonNutrients_Empty(t *testing.T) {
	assert.Equal(t, CommonNutrientSet{}, CommonNutrients(NutritionInfo{}))
}
