package controllers

import (
	"backend/models"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the authenticated user payload set by the auth
// middleware, or a zero payload when the request is unauthenticated.
func CurrentUser(c *gin.Context) models.UserPayload {
	if v, ok := c.Get("user"); ok {
		if payload, ok := v.(models.UserPayload); ok {
			return payload
		}
	}
	return models.UserPayload{}
}
