package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 72 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// GenerateJWT signs an HS256 token carrying the user's id and email.
func GenerateJWT(secret []byte, userID uint, email string) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt secret not configured")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"exp":    time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(secret)
}

// ParseJWT validates tokenString and returns the user id and email claims.
func ParseJWT(secret []byte, tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return 0, "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	// numeric claims come back as float64 after JSON decoding
	switch id := claims["userId"].(type) {
	case float64:
		return uint(id), email, nil
	case int64:
		return uint(id), email, nil
	}
	return 0, "", fmt.Errorf("%w: userId claim missing", ErrInvalidToken)
}
