package auth

import (
	"strings"

	"retail-edge-pos/internal/apperr"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	passwordSymbols   = "@$!%*?&#"
)

var errWeakPassword = apperr.Validation("Password must be at least 8 characters and include uppercase, lowercase, number & special character")

// ValidatePassword enforces the password policy: at least 8 characters drawn from
// letters, digits and @$!%*?&#, with at least one of each class.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errWeakPassword
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return errWeakPassword
		}
	}

	if !lower || !upper || !digit || !symbol {
		return errWeakPassword
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Server("Failed to hash password", err)
	}
	return string(hash), nil
}

// CheckPassword compares in constant time via bcrypt.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
