package controllers

import (
	"errors"
	"net/http"
	"time"

	"backend/config"
	"backend/models"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Users *services.UserService
	Cfg   *config.Config
}

func NewAuthController(users *services.UserService, cfg *config.Config) *AuthController {
	return &AuthController{Users: users, Cfg: cfg}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	UserName string `json:"userName" binding:"required"`
}

func (a *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user, err := a.Users.Register(c.Request.Context(), input.Email, input.Password, input.UserName)
	if errors.Is(err, services.ErrEmailTaken) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already registered"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed"})
		return
	}

	token, err := a.token(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful",
		"data":    gin.H{"token": token, "user": user},
	})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user, err := a.Users.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	token, err := a.token(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data":    gin.H{"token": token, "user": user},
	})
}

type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func (a *AuthController) ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	err := a.Users.ResetPassword(c.Request.Context(), input.Email, input.NewPassword)
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Password reset failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successful"})
}

// GetCurrentUser returns the profile for the authenticated token.
func (a *AuthController) GetCurrentUser(c *gin.Context) {
	payload := CurrentUser(c)

	user, err := a.Users.FindByUUID(c.Request.Context(), payload.UUID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User retrieved", "data": user})
}

func (a *AuthController) token(user *models.User) (string, error) {
	return utils.GenerateJWT(
		[]byte(a.Cfg.JWTSecret),
		models.UserPayload{UUID: user.UUID, Email: user.Email, UserName: user.UserName},
		time.Duration(a.Cfg.JWTExpiresHrs)*time.Hour,
	)
}
