package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type NutritionController struct {
	Store *services.NutritionStore
}

func NewNutritionController(store *services.NutritionStore) *NutritionController {
	return &NutritionController{Store: store}
}

type CreateNutritionInput struct {
	ImageURL       string   `json:"imageUrl" binding:"required"`
	FoodName       string   `json:"foodName" binding:"required"`
	Calories       *float64 `json:"calories" binding:"required"`
	Carbs          *float64 `json:"carbs" binding:"required"`
	Protein        *float64 `json:"protein" binding:"required"`
	Fat            *float64 `json:"fat" binding:"required"`
	Sugar          *float64 `json:"sugar"`
	Fiber          *float64 `json:"fiber"`
	AdditionalInfo string   `json:"additionalInfo"`
}

func (nc *NutritionController) Create(c *gin.Context) {
	var input CreateNutritionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user := CurrentUser(c)

	data := &models.NutritionData{
		ImageURL:       input.ImageURL,
		FoodName:       input.FoodName,
		Calories:       *input.Calories,
		Carbs:          *input.Carbs,
		Protein:        *input.Protein,
		Fat:            *input.Fat,
		AdditionalInfo: input.AdditionalInfo,
	}
	if input.Sugar != nil {
		data.Sugar = *input.Sugar
	}
	if input.Fiber != nil {
		data.Fiber = *input.Fiber
	}

	saved, err := nc.Store.Create(c.Request.Context(), user.UUID, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create nutrition data"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Nutrition data created successfully",
		"data":    saved,
	})
}

func (nc *NutritionController) List(c *gin.Context) {
	user := CurrentUser(c)

	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	search := c.Query("search")

	result, err := nc.Store.List(c.Request.Context(), user.UUID, page, limit, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve nutrition data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Nutrition data retrieved successfully",
		"data": gin.H{
			"items": result.Items,
			"pagination": gin.H{
				"total":      result.Total,
				"page":       result.Page,
				"limit":      result.Limit,
				"totalPages": result.TotalPages,
			},
		},
	})
}

func (nc *NutritionController) Get(c *gin.Context) {
	user := CurrentUser(c)

	data, err := nc.Store.GetByID(c.Request.Context(), user.UUID, c.Param("id"))
	if errors.Is(err, services.ErrNutritionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Nutrition data not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve nutrition data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Nutrition data retrieved successfully",
		"data":    data,
	})
}

type UpdateNutritionInput struct {
	FoodName       *string  `json:"foodName"`
	Calories       *float64 `json:"calories"`
	Carbs          *float64 `json:"carbs"`
	Protein        *float64 `json:"protein"`
	Fat            *float64 `json:"fat"`
	Sugar          *float64 `json:"sugar"`
	Fiber          *float64 `json:"fiber"`
	AdditionalInfo *string  `json:"additionalInfo"`
}

func (nc *NutritionController) Update(c *gin.Context) {
	var input UpdateNutritionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	fields := map[string]any{}
	if input.FoodName != nil {
		if *input.FoodName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Food name cannot be empty"})
			return
		}
		fields["foodName"] = *input.FoodName
	}
	if input.Calories != nil {
		fields["calories"] = *input.Calories
	}
	if input.Carbs != nil {
		fields["carbs"] = *input.Carbs
	}
	if input.Protein != nil {
		fields["protein"] = *input.Protein
	}
	if input.Fat != nil {
		fields["fat"] = *input.Fat
	}
	if input.Sugar != nil {
		fields["sugar"] = *input.Sugar
	}
	if input.Fiber != nil {
		fields["fiber"] = *input.Fiber
	}
	if input.AdditionalInfo != nil {
		fields["additionalInfo"] = *input.AdditionalInfo
	}

	user := CurrentUser(c)

	data, err := nc.Store.Update(c.Request.Context(), user.UUID, c.Param("id"), fields)
	if errors.Is(err, services.ErrNutritionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Nutrition data not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update nutrition data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Nutrition data updated successfully",
		"data":    data,
	})
}

func (nc *NutritionController) Delete(c *gin.Context) {
	user := CurrentUser(c)

	err := nc.Store.Delete(c.Request.Context(), user.UUID, c.Param("id"))
	if errors.Is(err, services.ErrNutritionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Nutrition data not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete nutrition data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Nutrition data deleted successfully"})
}
