package helpers

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gracechurch/server/internal/models"
)

const TokenTTL = 24 * time.Hour

// TokenClaims is the identity a session token carries.
type TokenClaims struct {
	UserID uint
	Email  string
	Role   models.UserRole
}

func IssueToken(user models.User, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(TokenTTL).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// VerifyToken parses and validates a session token. Any failure (bad
// signature, expiry, malformed claims) returns an error; callers treat
// that as "no identity", never as a hard failure.
func VerifyToken(tokenString, secret string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid id claim")
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid email claim")
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid role claim")
	}
	role, err := models.ParseUserRole(roleStr)
	if err != nil {
		return nil, err
	}

	return &TokenClaims{
		UserID: uint(id),
		Email:  email,
		Role:   role,
	}, nil
}
