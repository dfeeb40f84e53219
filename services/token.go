package services

import (
	"errors"
	"fmt"
	"time"

	"quicknotes/utils"

	"github.com/golang-jwt/jwt/v5"
)

const TokenIssuer = "quicknotes"

// resetTokenDuration bounds how long a password reset link stays valid.
const resetTokenDuration = 15 * time.Minute

// GenerateToken issues a short-lived access token for the user.
func GenerateToken(userID string) (string, error) {
	return signToken(jwt.MapClaims{
		"user_id": userID,
		"iss":     TokenIssuer,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Duration(utils.JWTExpirationTime) * time.Second).Unix(),
	})
}

// GenerateRefreshToken issues a long-lived refresh token for the user.
func GenerateRefreshToken(userID string) (string, error) {
	return signToken(jwt.MapClaims{
		"user_id": userID,
		"type":    "refresh",
		"iss":     TokenIssuer,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Duration(utils.RefreshTokenExpirationTime) * time.Second).Unix(),
	})
}

// GenerateResetToken issues a password-reset token.
func GenerateResetToken(userID string) (string, error) {
	return signToken(jwt.MapClaims{
		"user_id": userID,
		"type":    "reset",
		"iss":     TokenIssuer,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(resetTokenDuration).Unix(),
	})
}

func signToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// ParseResetToken validates a password-reset token and returns the user ID.
func ParseResetToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	if tokenType, _ := claims["type"].(string); tokenType != "reset" {
		return "", errors.New("not a reset token")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errors.New("invalid user ID in token")
	}
	return userID, nil
}
