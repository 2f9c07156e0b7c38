package models

import (
	"time"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User - an admin or a staff member working the till
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:100;not null" json:"full_name"`
	Email        string    `gorm:"uniqueIndex;size:150;not null" json:"email"` // always stored lower-cased
	PasswordHash string    `gorm:"size:255;not null" json:"-"`                 // Never return this in JSON
	Role         string    `gorm:"size:20;not null;index" json:"role"`         // 'admin', 'staff'
	Approved     bool      `gorm:"not null;default:false" json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Product - The Inventory
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Category  string    `gorm:"size:100;index" json:"category"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"` // never negative
	Price     float64   `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	ImageURL  string    `gorm:"size:255" json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Customer is stored inline on the sale.
type Customer struct {
	Name  string `gorm:"size:150" json:"name"`
	Email string `gorm:"size:150" json:"email"`
	Phone string `gorm:"size:30" json:"phone"`
}

// Sale - The Transaction Header. Immutable once written.
type Sale struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ReceiptNo      string     `gorm:"size:36;uniqueIndex" json:"receipt_no"`
	StaffID        uint       `gorm:"index" json:"staff_id"`
	StaffName      string     `gorm:"size:100" json:"staff_name"` // snapshot, survives staff deletion
	Staff          *User      `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Customer       Customer   `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	Items          []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
	Discount       float64    `json:"discount"` // percent
	TaxRate        float64    `json:"tax_rate"` // fraction
	Subtotal       float64    `gorm:"type:decimal(12,2)" json:"subtotal"`
	DiscountAmount float64    `gorm:"type:decimal(12,2)" json:"discount_amount"`
	TaxAmount      float64    `gorm:"type:decimal(12,2)" json:"tax_amount"`
	Total          float64    `gorm:"type:decimal(12,2)" json:"total"`
	PaymentMethod  string     `gorm:"size:20;default:cash" json:"payment_method"`
	Notes          string     `gorm:"size:255" json:"notes"`
	TerminalID     string     `gorm:"size:20" json:"terminal_id"` // which till rang it up
	Date           time.Time  `gorm:"index" json:"date"`
	CreatedAt      time.Time  `json:"created_at"`
}

// SaleItem - one snapshot line of a sale
type SaleItem struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	SaleID      uint     `gorm:"index" json:"sale_id"`
	ProductID   uint     `gorm:"index" json:"product_id"`
	Product     *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // nil once the product is deleted
	ProductName string   `gorm:"size:150" json:"product_name"`
	Price       float64  `gorm:"type:decimal(12,2)" json:"price"` // Snapshot of price at time of sale
	Quantity    int      `json:"quantity"`
}

// SaleDate is the moment the sale happened, falling back to the row timestamp
// for records written without an explicit date.
func (s Sale) SaleDate() time.Time {
	if !s.Date.IsZero() {
		return s.Date
	}
	return s.CreatedAt
}
