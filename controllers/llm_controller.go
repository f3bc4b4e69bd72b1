package controllers

import (
	"errors"
	"net/http"

	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type LLMController struct {
	VLM *services.VLMService
}

func NewLLMController(vlm *services.VLMService) *LLMController {
	return &LLMController{VLM: vlm}
}

type GenerateInput struct {
	ImageURL string `json:"imageUrl" binding:"required"`
	Prompt   string `json:"prompt"`
	Model    string `json:"model"`
}

// Generate is the synchronous, non-streaming analysis variant: the same
// gateway and normalize path as the socket flow, returning the flat record
// directly instead of streaming progress, and persisting nothing. A custom
// prompt opts out of the nutrition schema and returns the parsed model
// content as-is.
func (lc *LLMController) Generate(c *gin.Context) {
	var input GenerateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image URL is required"})
		return
	}

	utils.Logger.Infow("processing image URL", "imageUrl", input.ImageURL)

	if input.Prompt != "" {
		result, err := lc.VLM.Call(c.Request.Context(), input.Prompt, input.ImageURL, input.Model)
		if err != nil {
			gatewayErrorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"content": result},
		})
		return
	}

	analysis, parsed, err := lc.VLM.AnalyzeFood(c.Request.Context(), input.ImageURL)
	if err != nil {
		gatewayErrorResponse(c, err)
		return
	}

	record, degraded := services.NormalizeNutrition(analysis, parsed)
	if degraded {
		utils.Logger.Warnw("analysis normalized with placeholder values", "imageUrl", input.ImageURL)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"content": record},
	})
}

func gatewayErrorResponse(c *gin.Context, err error) {
	payload := gin.H{"success": false, "message": "Error processing request with language model"}
	var gerr *services.GatewayError
	if errors.As(err, &gerr) {
		payload["message"] = gerr.Message
		payload["details"] = gerr.Details
	}
	c.JSON(http.StatusInternalServerError, payload)
}
