// Package reports aggregates recorded sales and stock into the numbers the back office reads.
package reports

import (
	"sort"
	"time"

	"retail-edge-pos/internal/apperr"
	"retail-edge-pos/internal/auth"
	"retail-edge-pos/internal/models"
	"retail-edge-pos/internal/sales"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const UnknownStaff = "Unknown Staff"

type StaffSummary struct {
	Staff       string  `json:"staff"`
	TotalSales  int     `json:"total_sales"`
	TotalAmount float64 `json:"total_amount"`
}

type ProductSummary struct {
	ProductID    uint    `json:"product_id"`
	Product      string  `json:"product"`
	Category     string  `json:"category"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// Overview is the dashboard headline for a period.
type Overview struct {
	TotalSales        int              `json:"total_sales"`
	TotalRevenue      float64          `json:"total_revenue"`
	TotalProductsSold int              `json:"total_products_sold"`
	TopSellers        []ProductSummary `json:"top_sellers"`
}

// StaffName resolves who rang up a sale: the live account first, then the name
// recorded on the sale, then UnknownStaff.
func StaffName(s models.Sale) string {
	if s.Staff != nil && s.Staff.FullName != "" {
		return s.Staff.FullName
	}
	if s.StaffName != "" {
		return s.StaffName
	}
	return UnknownStaff
}

// StaffWiseSummary totals sales per staff member within [from, to]. Admin only.
func StaffWiseSummary(db *gorm.DB, caller *auth.Claims, from, to time.Time) ([]StaffSummary, error) {
	if caller == nil || !caller.IsAdmin() {
		return nil, apperr.Forbidden("Admin access required")
	}

	list, err := sales.ListSales(db, sales.SaleFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	return summarizeStaff(list), nil
}

func summarizeStaff(list []models.Sale) []StaffSummary {
	type acc struct {
		count  int
		amount decimal.Decimal
	}
	grouped := map[string]*acc{}
	for _, s := range list {
		name := StaffName(s)
		a, ok := grouped[name]
		if !ok {
			a = &acc{}
			grouped[name] = a
		}
		a.count++
		a.amount = a.amount.Add(decimal.NewFromFloat(s.Total))
	}

	out := make([]StaffSummary, 0, len(grouped))
	for name, a := range grouped {
		out = append(out, StaffSummary{Staff: name, TotalSales: a.count, TotalAmount: a.amount.Round(2).InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalAmount != out[j].TotalAmount {
			return out[i].TotalAmount > out[j].TotalAmount
		}
		return out[i].Staff < out[j].Staff
	})
	return out
}

// ProductWiseSummary totals units and revenue per product within [from, to].
// Lines whose product no longer exists are left out; revenue uses the price
// recorded on the line.
func ProductWiseSummary(db *gorm.DB, from, to time.Time) ([]ProductSummary, error) {
	list, err := sales.ListSales(db, sales.SaleFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	return summarizeProducts(list), nil
}

func summarizeProducts(list []models.Sale) []ProductSummary {
	type acc struct {
		summary ProductSummary
		revenue decimal.Decimal
	}
	grouped := map[uint]*acc{}
	for _, s := range list {
		for _, item := range s.Items {
			if item.Product == nil {
				continue
			}
			a, ok := grouped[item.ProductID]
			if !ok {
				a = &acc{summary: ProductSummary{
					ProductID: item.ProductID,
					Product:   item.Product.Name,
					Category:  item.Product.Category,
				}}
				grouped[item.ProductID] = a
			}
			a.summary.QuantitySold += item.Quantity
			a.revenue = a.revenue.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}

	out := make([]ProductSummary, 0, len(grouped))
	for _, a := range grouped {
		a.summary.Revenue = a.revenue.Round(2).InexactFloat64()
		out = append(out, a.summary)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}

// GetOverview counts every sale in range, including lines for products that were
// since deleted. topN limits the best sellers list; zero or less means 5.
func GetOverview(db *gorm.DB, from, to time.Time, topN int) (*Overview, error) {
	if topN <= 0 {
		topN = 5
	}

	list, err := sales.ListSales(db, sales.SaleFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	overview := &Overview{TotalSales: len(list)}
	for _, s := range list {
		revenue = revenue.Add(decimal.NewFromFloat(s.Total))
		for _, item := range s.Items {
			overview.TotalProductsSold += item.Quantity
		}
	}
	overview.TotalRevenue = revenue.Round(2).InexactFloat64()

	top := summarizeProducts(list)
	if len(top) > topN {
		top = top[:topN]
	}
	overview.TopSellers = top
	return overview, nil
}
