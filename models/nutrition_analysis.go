package models

// NutritionAnalysis is the single source of truth for the shape the model is
// asked to produce. The extraction prompt in services.NutritionPrompt
// describes exactly this structure, and the normalizer reads it through these
// types, so a schema change breaks the build instead of silently drifting.
//
// Every field is optional on the wire: models omit, null or mistype fields
// routinely, which is why amounts are pointers and extraction defaults to 0.
type NutritionAnalysis struct {
	Metadata       *AnalysisMetadata `json:"metadata,omitempty"`
	ProductDetails *ProductDetails   `json:"product_details,omitempty"`
	TotalCalories  *float64          `json:"total_calories,omitempty"`
	Nutrients      *Nutrients        `json:"nutrients,omitempty"`
	Ingredients    []string          `json:"ingredients,omitempty"`
	Allergens      []string          `json:"allergens,omitempty"`
}

type AnalysisMetadata struct {
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`
	ErrorStatus     *bool    `json:"error_status,omitempty"`
}

type ProductDetails struct {
	Name        string       `json:"name,omitempty"`
	ServingSize *ServingSize `json:"serving_size,omitempty"`
}

type ServingSize struct {
	Amount *float64 `json:"amount,omitempty"`
	Unit   string   `json:"unit,omitempty"`
	Type   string   `json:"type,omitempty"`
}

type Nutrients struct {
	TotalFat      *Nutrient `json:"total_fat,omitempty"`
	Cholesterol   *Nutrient `json:"cholesterol,omitempty"`
	Carbohydrates *Nutrient `json:"carbohydrates,omitempty"`
	Protein       *Nutrient `json:"protein,omitempty"`
	Sodium        *Nutrient `json:"sodium,omitempty"`
	Calcium       *Nutrient `json:"calcium,omitempty"`
	Iron          *Nutrient `json:"iron,omitempty"`
	Vitamins      []Vitamin `json:"vitamins,omitempty"`
}

type Nutrient struct {
	Amount               *float64             `json:"amount,omitempty"`
	Unit                 string               `json:"unit,omitempty"`
	DailyValuePercentage *float64             `json:"daily_value_percentage,omitempty"`
	Group                string               `json:"group,omitempty"`
	Category             string               `json:"category,omitempty"`
	SubNutrients         map[string]*Nutrient `json:"sub_nutrients,omitempty"`
}

type Vitamin struct {
	VitaminType          string   `json:"vitamin_type"`
	Amount               *float64 `json:"amount,omitempty"`
	Unit                 string   `json:"unit,omitempty"`
	DailyValuePercentage *float64 `json:"daily_value_percentage,omitempty"`
	Group                string   `json:"group,omitempty"`
	Category             string   `json:"category,omitempty"`
}

// AmountOf returns the nutrient's amount or 0 when the nutrient or its
// amount is missing.
func (n *Nutrient) AmountOf() float64 {
	if n == nil || n.Amount == nil {
		return 0
	}
	return *n.Amount
}

// Sub returns the named sub-nutrient, or nil when either level is absent.
func (n *Nutrient) Sub(name string) *Nutrient {
	if n == nil || n.SubNutrients == nil {
		return nil
	}
	return n.SubNutrients[name]
}
