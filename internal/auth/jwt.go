package auth

import (
	"errors"
	"time"

	"retail-edge-pos/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 2 * time.Hour

// Signing key, set once at startup from the validated config.
var jwtKey []byte

func SetSecret(secret string) {
	jwtKey = []byte(secret)
}

// Claims defines what is inside the token (The "ID Card")
type Claims struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool { return c != nil && c.Role == "admin" }

// GenerateToken creates a signed JWT for a user
func GenerateToken(userID uint, email, role string) (string, error) {
	if len(jwtKey) == 0 {
		return "", errors.New("signing key not configured")
	}

	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ValidateToken checks if a token is fake or expired
func ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperr.Auth("Unauthorized")
	}
	if len(jwtKey) == 0 {
		return nil, apperr.Auth("Unauthorized")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Auth("Token expired")
		}
		return nil, apperr.Auth("Invalid token")
	}
	if !token.Valid {
		return nil, apperr.Auth("Invalid token")
	}

	return claims, nil
}
