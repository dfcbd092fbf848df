package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// AccessTokenValidity mirrors the 7-day session the web client expects.
const AccessTokenValidity = time.Hour * 24 * 7

// GenerateToken signs an access token for the given user.
func GenerateToken(userID uint, email string, secret string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("empty signing secret")
	}

	claims := jwt.MapClaims{
		"id":    userID,
		"email": email,
		"exp":   time.Now().Add(AccessTokenValidity).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAndGetClaims verifies the token signature and expiry and returns
// its claims.
func ValidateAndGetClaims(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
