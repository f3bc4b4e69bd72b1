package services

import (
	"fmt"
	"strings"

	"backend/models"
)

// NormalizeNutrition flattens a decoded model analysis into the storage-ready
// record shape. It is total: absent or undecodable input yields a usable
// placeholder record and degraded=true instead of an error; callers never see
// a normalization failure.
func NormalizeNutrition(analysis *models.NutritionAnalysis, rawData any) (models.NutritionResult, bool) {
	if analysis == nil && rawData == nil {
		return models.NutritionResult{
			FoodName:       "Unknown food",
			AdditionalInfo: "No data available",
			RawData:        nil,
		}, true
	}

	if analysis == nil {
		// Valid JSON came back but not in the shape we asked for.
		return models.NutritionResult{
			FoodName:       "Processed food item",
			AdditionalInfo: "Error extracting detailed nutrition information",
			RawData:        nil,
		}, true
	}

	foodName := "Food item"
	if analysis.ProductDetails != nil && analysis.ProductDetails.Name != "" {
		foodName = analysis.ProductDetails.Name
	}

	calories := 0.0
	if analysis.TotalCalories != nil {
		calories = *analysis.TotalCalories
	}

	var carbs, protein, fat, sugar, fiber float64
	if n := analysis.Nutrients; n != nil {
		carbs = n.Carbohydrates.AmountOf()
		protein = n.Protein.AmountOf()
		fat = n.TotalFat.AmountOf()
		sugar = n.Carbohydrates.Sub("total_sugar").AmountOf()
		fiber = n.Carbohydrates.Sub("dietary_fiber").AmountOf()
	}

	return models.NutritionResult{
		FoodName:       foodName,
		Calories:       calories,
		Carbs:          carbs,
		Protein:        protein,
		Fat:            fat,
		Sugar:          sugar,
		Fiber:          fiber,
		AdditionalInfo: generateAdditionalInfo(analysis),
		RawData:        rawData,
	}, false
}

// generateAdditionalInfo synthesizes the free-text summary from fields that
// have no column of their own: serving size, sodium, vitamins and allergens.
// Zero amounts are omitted.
func generateAdditionalInfo(analysis *models.NutritionAnalysis) string {
	var parts []string

	if pd := analysis.ProductDetails; pd != nil && pd.ServingSize != nil && pd.ServingSize.Amount != nil && *pd.ServingSize.Amount != 0 {
		parts = append(parts, strings.TrimSpace(fmt.Sprintf("Serving size: %v %s",
			*pd.ServingSize.Amount, pd.ServingSize.Unit)))
	}

	if n := analysis.Nutrients; n != nil {
		if n.Sodium != nil && n.Sodium.Amount != nil && *n.Sodium.Amount != 0 {
			unit := n.Sodium.Unit
			if unit == "" {
				unit = "mg"
			}
			parts = append(parts, fmt.Sprintf("Sodium: %v%s", *n.Sodium.Amount, unit))
		}

		if len(n.Vitamins) > 0 {
			entries := make([]string, 0, len(n.Vitamins))
			for _, v := range n.Vitamins {
				amount := 0.0
				if v.Amount != nil {
					amount = *v.Amount
				}
				entries = append(entries, fmt.Sprintf("%s: %v%s", v.VitaminType, amount, v.Unit))
			}
			parts = append(parts, "Vitamins: "+strings.Join(entries, ", "))
		}
	}

	if len(analysis.Allergens) > 0 {
		parts = append(parts, "Allergens: "+strings.Join(analysis.Allergens, ", "))
	}

	if len(parts) == 0 {
		return "No additional information available"
	}
	return strings.Join(parts, "\n")
}
