// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"testing"

	"retail-edge-pos/internal/database"
	"retail-edge-pos/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestSecret signs tokens in tests.
const TestSecret = "test-secret-that-is-at-least-32-bytes-long"

// NewDB returns a migrated in-memory SQLite database that lives for the duration of t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:", logger.Silent)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// UseDB points database.DB at a fresh test database and restores it afterwards.
func UseDB(t *testing.T) *gorm.DB {
	t.Helper()

	original := database.DB
	db := NewDB(t)
	database.DB = db
	t.Cleanup(func() { database.DB = original })
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, fullName, email, password, role string, approved bool) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := &models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Approved:     approved,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}
	return user
}

func CreateProduct(t *testing.T, db *gorm.DB, name, category string, quantity int, price float64) *models.Product {
	t.Helper()

	product := &models.Product{Name: name, Category: category, Quantity: quantity, Price: price}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("Failed to create product %s: %v", name, err)
	}
	return product
}

func Quantity(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		t.Fatalf("Failed to reload product %d: %v", productID, err)
	}
	return product.Quantity
}
