// Package inventory is the product catalog. Quantities set here are absolute;
// sales decrement stock through the sales processor only.
package inventory

import (
	"errors"
	"strings"

	"retail-edge-pos/internal/apperr"
	"retail-edge-pos/internal/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New()

type ProductInput struct {
	Name     string  `json:"name" validate:"required,max=150"`
	Category string  `json:"category" validate:"max=100"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	Price    float64 `json:"price" validate:"gte=0"`
	ImageURL string  `json:"image_url" validate:"max=255"`
}

// ProductUpdate is a partial update; nil fields are left alone.
type ProductUpdate struct {
	Name     *string  `json:"name" validate:"omitempty,min=1,max=150"`
	Category *string  `json:"category" validate:"omitempty,max=100"`
	Quantity *int     `json:"quantity" validate:"omitempty,gte=0"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	ImageURL *string  `json:"image_url" validate:"omitempty,max=255"`
}

func List(db *gorm.DB) ([]models.Product, error) {
	var products []models.Product
	if err := db.Order("name").Find(&products).Error; err != nil {
		return nil, apperr.Server("Failed to fetch products", err)
	}
	return products, nil
}

func Get(db *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	err := db.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Product not found")
	}
	if err != nil {
		return nil, apperr.Server("Failed to fetch product", err)
	}
	return &product, nil
}

func Create(db *gorm.DB, in ProductInput) (*models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if err := validate.Struct(in); err != nil {
		return nil, apperr.Validation("Name is required; quantity and price must not be negative")
	}

	product := &models.Product{
		Name:     in.Name,
		Category: in.Category,
		Quantity: in.Quantity,
		Price:    in.Price,
		ImageURL: strings.TrimSpace(in.ImageURL),
	}
	if err := db.Create(product).Error; err != nil {
		return nil, apperr.Server("Failed to create product", err)
	}
	return product, nil
}

func Update(db *gorm.DB, id uint, upd ProductUpdate) (*models.Product, error) {
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apperr.Validation("Name must not be empty")
		}
		upd.Name = &name
	}
	if upd.Category != nil {
		category := strings.TrimSpace(*upd.Category)
		upd.Category = &category
	}
	if err := validate.Struct(upd); err != nil {
		return nil, apperr.Validation("Name must not be empty; quantity and price must not be negative")
	}

	product, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if upd.Name != nil {
		changes["name"] = *upd.Name
	}
	if upd.Category != nil {
		changes["category"] = *upd.Category
	}
	if upd.Quantity != nil {
		changes["quantity"] = *upd.Quantity
	}
	if upd.Price != nil {
		changes["price"] = *upd.Price
	}
	if upd.ImageURL != nil {
		changes["image_url"] = strings.TrimSpace(*upd.ImageURL)
	}
	if len(changes) == 0 {
		return product, nil
	}

	if err := db.Model(product).Updates(changes).Error; err != nil {
		return nil, apperr.Server("Failed to update product", err)
	}
	return Get(db, id)
}

func Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return apperr.Server("Failed to delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Product not found")
	}
	return nil
}

// LowStock lists products with fewer than threshold units left, scarcest first.
func LowStock(db *gorm.DB, threshold int) ([]models.Product, error) {
	var products []models.Product
	err := db.Where("quantity < ?", threshold).Order("quantity, name").Find(&products).Error
	if err != nil {
		return nil, apperr.Server("Failed to fetch low stock", err)
	}
	return products, nil
}
