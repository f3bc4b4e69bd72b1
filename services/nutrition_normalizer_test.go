package services

import (
	"strings"
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func fullAnalysis() *models.NutritionAnalysis {
	return &models.NutritionAnalysis{
		ProductDetails: &models.ProductDetails{
			Name: "Peanut Butter",
			ServingSize: &models.ServingSize{
				Amount: f(32),
				Unit:   "g",
			},
		},
		TotalCalories: f(190),
		Nutrients: &models.Nutrients{
			TotalFat: &models.Nutrient{
				Amount: f(16),
				SubNutrients: map[string]*models.Nutrient{
					"saturated_fat": {Amount: f(3)},
				},
			},
			Carbohydrates: &models.Nutrient{
				Amount: f(8),
				SubNutrients: map[string]*models.Nutrient{
					"dietary_fiber": {Amount: f(2)},
					"total_sugar":   {Amount: f(3)},
				},
			},
			Protein: &models.Nutrient{Amount: f(7)},
			Sodium:  &models.Nutrient{Amount: f(140), Unit: "mg"},
			Vitamins: []models.Vitamin{
				{VitaminType: "E", Amount: f(2), Unit: "mg"},
			},
		},
		Allergens: []string{"peanuts", "soy"},
	}
}

func TestNormalizeNutritionNilInput(t *testing.T) {
	result, degraded := NormalizeNutrition(nil, nil)

	assert.True(t, degraded)
	assert.Equal(t, "Unknown food", result.FoodName)
	assert.Zero(t, result.Calories)
	assert.Zero(t, result.Carbs)
	assert.Nil(t, result.RawData)
}

func TestNormalizeNutritionUnexpectedShape(t *testing.T) {
	// nil analysis but non-nil raw data: valid JSON arrived in the wrong
	// shape and could not be decoded.
	result, degraded := NormalizeNutrition(nil, map[string]any{"calories": "lots"})

	assert.True(t, degraded)
	assert.Equal(t, "Processed food item", result.FoodName)
	assert.Equal(t, "Error extracting detailed nutrition information", result.AdditionalInfo)
	assert.Nil(t, result.RawData)
}

func TestNormalizeNutritionEmptyAnalysis(t *testing.T) {
	raw := map[string]any{"text": "the label was unreadable"}

	result, degraded := NormalizeNutrition(&models.NutritionAnalysis{}, raw)

	assert.False(t, degraded)
	assert.Equal(t, "Food item", result.FoodName)
	assert.Zero(t, result.Calories)
	assert.Zero(t, result.Carbs)
	assert.Zero(t, result.Protein)
	assert.Zero(t, result.Fat)
	assert.Zero(t, result.Sugar)
	assert.Zero(t, result.Fiber)
	assert.Equal(t, "No additional information available", result.AdditionalInfo)
	assert.Equal(t, raw, result.RawData)
}

func TestNormalizeNutritionRoundTrip(t *testing.T) {
	analysis := fullAnalysis()
	raw := map[string]any{"total_calories": 190.0}

	result, degraded := NormalizeNutrition(analysis, raw)

	require.False(t, degraded)
	assert.Equal(t, "Peanut Butter", result.FoodName)
	assert.Equal(t, float64(190), result.Calories)
	assert.Equal(t, float64(8), result.Carbs)
	assert.Equal(t, float64(7), result.Protein)
	assert.Equal(t, float64(16), result.Fat)
	assert.Equal(t, float64(3), result.Sugar)
	assert.Equal(t, float64(2), result.Fiber)
	assert.Equal(t, raw, result.RawData)
}

func TestNormalizeNutritionAdditionalInfo(t *testing.T) {
	result, _ := NormalizeNutrition(fullAnalysis(), nil)

	lines := strings.Split(result.AdditionalInfo, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Serving size: 32 g", lines[0])
	assert.Equal(t, "Sodium: 140mg", lines[1])
	assert.Equal(t, "Vitamins: E: 2mg", lines[2])
	assert.Equal(t, "Allergens: peanuts, soy", lines[3])
}

func TestNormalizeNutritionMissingSubNutrients(t *testing.T) {
	analysis := &models.NutritionAnalysis{
		TotalCalories: f(250),
		Nutrients: &models.Nutrients{
			Carbohydrates: &models.Nutrient{Amount: f(30)},
			Protein:       &models.Nutrient{Amount: f(12)},
		},
	}

	result, degraded := NormalizeNutrition(analysis, nil)

	assert.False(t, degraded)
	assert.Equal(t, float64(250), result.Calories)
	assert.Equal(t, float64(30), result.Carbs)
	assert.Equal(t, float64(12), result.Protein)
	assert.Zero(t, result.Sugar)
	assert.Zero(t, result.Fiber)
	assert.NotContains(t, result.AdditionalInfo, "Vitamins")
	assert.NotContains(t, result.AdditionalInfo, "Allergens")
}

func TestNormalizeNutritionSodiumDefaultUnit(t *testing.T) {
	analysis := &models.NutritionAnalysis{
		Nutrients: &models.Nutrients{
			Sodium: &models.Nutrient{Amount: f(95)},
		},
	}

	result, _ := NormalizeNutrition(analysis, nil)

	assert.Contains(t, result.AdditionalInfo, "Sodium: 95mg")
}

func TestNormalizeNutritionSkipsZeroAmounts(t *testing.T) {
	analysis := &models.NutritionAnalysis{
		ProductDetails: &models.ProductDetails{
			Name:        "Sparkling Water",
			ServingSize: &models.ServingSize{Amount: f(0), Unit: "ml"},
		},
		Nutrients: &models.Nutrients{
			Sodium: &models.Nutrient{Amount: f(0), Unit: "mg"},
		},
	}

	result, degraded := NormalizeNutrition(analysis, nil)

	assert.False(t, degraded)
	assert.NotContains(t, result.AdditionalInfo, "Serving size")
	assert.NotContains(t, result.AdditionalInfo, "Sodium")
	assert.Equal(t, "No additional information available", result.AdditionalInfo)
}
