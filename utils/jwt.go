package utils

import (
	"errors"
	"time"

	"backend/models"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT signs an HS256 token carrying the user's uuid, email and
// userName claims.
func GenerateJWT(secret []byte, user models.UserPayload, expiresIn time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uuid":     user.UUID,
		"email":    user.Email,
		"userName": user.UserName,
		"exp":      time.Now().Add(expiresIn).Unix(),
	})
	return token.SignedString(secret)
}

// VerifyJWT validates the token signature and expiry and returns the user
// payload encoded in the claims.
func VerifyJWT(secret []byte, tokenString string) (models.UserPayload, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return models.UserPayload{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.UserPayload{}, errors.New("invalid claims")
	}

	payload := models.UserPayload{}
	payload.UUID, _ = claims["uuid"].(string)
	payload.Email, _ = claims["email"].(string)
	payload.UserName, _ = claims["userName"].(string)
	if payload.UUID == "" {
		return models.UserPayload{}, errors.New("uuid claim missing")
	}
	return payload, nil
}
