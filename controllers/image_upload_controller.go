package controllers

import (
	"net/http"

	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadImageInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// UploadImage stores a base64 data-URI image in S3 and returns the public
// URL the analysis flow hands to the model, plus a generated image id for
// correlating progress events.
func UploadImage(c *gin.Context) {
	var input UploadImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	user := CurrentUser(c)
	imageID := uuid.NewString()

	url, err := utils.UploadBase64ImageToS3(c.Request.Context(), input.ImageBase64, user.UUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Upload failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"url": url, "imageId": imageID},
	})
}
