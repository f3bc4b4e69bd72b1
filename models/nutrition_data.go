package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NutritionData is the persisted nutrition record. Each user's records live
// in their own collection ("{uuid}.nutritionData"); UserID is stored as a
// plain string field on top of that so ownership survives exports.
type NutritionData struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          string             `bson:"userId" json:"userId"`
	ImageURL        string             `bson:"imageUrl" json:"imageUrl"`
	ImageID         string             `bson:"imageId,omitempty" json:"imageId,omitempty"`
	FileName        string             `bson:"fileName,omitempty" json:"fileName,omitempty"`
	FileType        string             `bson:"fileType,omitempty" json:"fileType,omitempty"`
	FileSize        int64              `bson:"fileSize,omitempty" json:"fileSize,omitempty"`
	FoodName        string             `bson:"foodName" json:"foodName"`
	Calories        float64            `bson:"calories" json:"calories"`
	Carbs           float64            `bson:"carbs" json:"carbs"`
	Protein         float64            `bson:"protein" json:"protein"`
	Fat             float64            `bson:"fat" json:"fat"`
	Sugar           float64            `bson:"sugar" json:"sugar"`
	Fiber           float64            `bson:"fiber" json:"fiber"`
	AdditionalInfo  string             `bson:"additionalInfo,omitempty" json:"additionalInfo,omitempty"`
	RawAnalysisData any                `bson:"rawAnalysisData,omitempty" json:"rawAnalysisData,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NutritionResult is the flat draft produced by the normalizer before a
// record is persisted. It is also what analysis-complete events carry; ID is
// filled in only when the save succeeded.
type NutritionResult struct {
	ID             string  `json:"id,omitempty"`
	FoodName       string  `json:"foodName"`
	Calories       float64 `json:"calories"`
	Carbs          float64 `json:"carbs"`
	Protein        float64 `json:"protein"`
	Fat            float64 `json:"fat"`
	Sugar          float64 `json:"sugar"`
	Fiber          float64 `json:"fiber"`
	AdditionalInfo string  `json:"additionalInfo"`
	RawData        any     `json:"rawData"`
}
