package sales

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"retail-edge-pos/internal/apperr"
	"retail-edge-pos/internal/auth"
	"retail-edge-pos/internal/events"
	"retail-edge-pos/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var paymentMethods = map[string]bool{
	"cash":   true,
	"card":   true,
	"upi":    true,
	"wallet": true,
}

// Item is one cart line as sent by the till.
type Item struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// SaleRequest is a checkout. Money totals are always derived server-side; the
// client never gets to choose them.
type SaleRequest struct {
	Customer      models.Customer `json:"customer"`
	Items         []Item          `json:"items"`
	Discount      float64         `json:"discount"`           // percent, 0-100
	TaxRate       *float64        `json:"tax_rate,omitempty"` // fraction; nil means the store default
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
}

// Processor turns carts into sales.
type Processor struct {
	DB                *gorm.DB
	Publisher         events.Publisher
	DefaultTaxRate    float64
	LowStockThreshold int
	TerminalID        string
}

// CreateSale validates the cart against live stock, decrements inventory and records
// the sale in one transaction. Either every line is sold and the sale exists, or nothing
// changed. The decrement is conditional on the stock still being there, so concurrent
// checkouts can never push a product below zero.
func (p *Processor) CreateSale(ctx context.Context, staff *auth.Claims, req SaleRequest) (*models.Sale, error) {
	if staff == nil {
		return nil, apperr.Auth("Unauthorized")
	}
	if len(req.Items) == 0 {
		return nil, apperr.Validation("Cart is empty")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, apperr.Validation("Quantity must be at least 1")
		}
	}
	if req.Discount < 0 || req.Discount > 100 {
		return nil, apperr.Validation("Discount must be between 0 and 100 percent")
	}
	taxRate := p.DefaultTaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	if taxRate < 0 || taxRate > 1 {
		return nil, apperr.Validation("Tax rate must be between 0 and 1")
	}
	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if method == "" {
		method = "cash"
	}
	if !paymentMethods[method] {
		return nil, apperr.Validation("Unsupported payment method " + strconv.Quote(req.PaymentMethod))
	}

	// 1. Start a Database Transaction (ACID Safety)
	tx := p.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperr.Server("Failed to start sale", tx.Error)
	}
	fail := func(err error) (*models.Sale, error) {
		tx.Rollback()
		return nil, err
	}

	// 2. The seller must still exist and be allowed to sell
	var seller models.User
	if err := tx.First(&seller, staff.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(apperr.Auth("Unauthorized"))
		}
		return fail(apperr.Server("Failed to load staff", err))
	}
	if seller.Role == models.RoleStaff && !seller.Approved {
		return fail(apperr.Auth("Account is deactivated"))
	}

	var saleItems []models.SaleItem
	var lines []Line
	var low []events.LowStock

	// 3. Loop through cart items, in order
	for _, item := range req.Items {
		var product models.Product

		// Lock the row where the dialect supports it
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, item.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(apperr.Validation(fmt.Sprintf("Insufficient stock for product #%d", item.ProductID)))
		}
		if err != nil {
			return fail(apperr.Server("Failed to load product", err))
		}

		// Check Stock
		if product.Quantity < item.Quantity {
			return fail(apperr.Validation("Insufficient stock for " + product.Name))
		}

		// Deduct Stock, only if it is still there
		res := tx.Model(&models.Product{}).
			Where("id = ? AND quantity >= ?", product.ID, item.Quantity).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", item.Quantity))
		if res.Error != nil {
			return fail(apperr.Server("Failed to update stock", res.Error))
		}
		if res.RowsAffected == 0 {
			return fail(apperr.Validation("Insufficient stock for " + product.Name))
		}

		remaining := product.Quantity - item.Quantity
		if remaining < p.LowStockThreshold {
			low = append(low, events.LowStock{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  remaining,
				Threshold: p.LowStockThreshold,
			})
		}

		saleItems = append(saleItems, models.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    item.Quantity,
		})
		lines = append(lines, Line{Price: product.Price, Quantity: item.Quantity})
	}

	// 4. Money
	totals := ComputeTotals(lines, req.Discount, taxRate)

	// 5. Create the Sale Header
	sale := models.Sale{
		ReceiptNo:      uuid.NewString(),
		StaffID:        seller.ID,
		StaffName:      seller.FullName,
		Customer:       trimCustomer(req.Customer),
		Items:          saleItems, // GORM will automatically insert these!
		Discount:       req.Discount,
		TaxRate:        taxRate,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		Total:          totals.Total,
		PaymentMethod:  method,
		Notes:          strings.TrimSpace(req.Notes),
		TerminalID:     p.TerminalID,
		Date:           time.Now(),
	}

	if err := tx.Create(&sale).Error; err != nil {
		return fail(apperr.Server("Failed to create sale record", err))
	}

	// 6. Commit Transaction
	if err := tx.Commit().Error; err != nil {
		return nil, apperr.Server("Failed to commit sale", err)
	}

	p.announce(ctx, &sale, low)
	return &sale, nil
}

// announce publishes after commit; a broker outage never undoes a completed sale.
// The sale is already recorded, so a client hanging up must not drop its events.
func (p *Processor) announce(ctx context.Context, sale *models.Sale, low []events.LowStock) {
	if p.Publisher == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	evt := events.SaleCreated{
		SaleID:    sale.ID,
		ReceiptNo: sale.ReceiptNo,
		StaffID:   sale.StaffID,
		Total:     sale.Total,
		At:        sale.Date,
	}
	for _, it := range sale.Items {
		evt.Items = append(evt.Items, events.SaleLine{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	if err := p.Publisher.Publish(ctx, events.TopicSaleCreated, sale.ReceiptNo, evt); err != nil {
		slog.Error("Failed to publish sale event", "receipt_no", sale.ReceiptNo, "err", err)
	}

	for _, l := range low {
		if err := p.Publisher.Publish(ctx, events.TopicLowStock, strconv.FormatUint(uint64(l.ProductID), 10), l); err != nil {
			slog.Error("Failed to publish low stock event", "product_id", l.ProductID, "err", err)
		}
	}
}

func trimCustomer(c models.Customer) models.Customer {
	return models.Customer{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.ToLower(strings.TrimSpace(c.Email)),
		Phone: strings.TrimSpace(c.Phone),
	}
}

// SaleFilter narrows ListSales. Zero values mean "all".
type SaleFilter struct {
	StaffID uint
	From    time.Time
	To      time.Time
}

// ListSales returns sales newest first with staff and products resolved where they still exist.
func ListSales(db *gorm.DB, f SaleFilter) ([]models.Sale, error) {
	q := db.Preload("Staff").Preload("Items.Product").Order("date desc, id desc")
	if f.StaffID != 0 {
		q = q.Where("staff_id = ?", f.StaffID)
	}

	var sales []models.Sale
	if err := q.Find(&sales).Error; err != nil {
		return nil, apperr.Server("Failed to fetch sales", err)
	}
	return FilterSalesByRange(sales, f.From, f.To), nil
}

func GetSale(db *gorm.DB, id uint) (*models.Sale, error) {
	var sale models.Sale
	err := db.Preload("Staff").Preload("Items.Product").First(&sale, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Sale not found")
	}
	if err != nil {
		return nil, apperr.Server("Failed to fetch sale", err)
	}
	return &sale, nil
}
