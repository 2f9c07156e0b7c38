package reports

import (
	"sort"

	"retail-edge-pos/internal/apperr"
	"retail-edge-pos/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ValuationItem is one product row of the stock valuation.
type ValuationItem struct {
	ProductID  uint    `json:"product_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	TotalValue float64 `json:"total_value"`
}

// CategoryGroup is one category table, e.g. "Beverages".
type CategoryGroup struct {
	CategoryName string          `json:"category_name"`
	Items        []ValuationItem `json:"items"`
	Subtotal     float64         `json:"subtotal"`
}

type Valuation struct {
	Categories []CategoryGroup `json:"categories"`
	GrandTotal float64         `json:"grand_total"`
}

// StockValuation values everything on the shelves at list price, grouped by category.
func StockValuation(db *gorm.DB) (*Valuation, error) {
	var products []models.Product
	if err := db.Order("name").Find(&products).Error; err != nil {
		return nil, apperr.Server("Failed to fetch inventory", err)
	}

	grand := decimal.Zero
	subtotals := map[string]decimal.Decimal{}
	grouped := map[string]*CategoryGroup{}

	for _, p := range products {
		// Items without a category go to "Uncategorized"
		cat := p.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		if _, ok := grouped[cat]; !ok {
			grouped[cat] = &CategoryGroup{CategoryName: cat, Items: []ValuationItem{}}
		}

		value := decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Quantity))).Round(2)
		grouped[cat].Items = append(grouped[cat].Items, ValuationItem{
			ProductID:  p.ID,
			Name:       p.Name,
			Quantity:   p.Quantity,
			Price:      p.Price,
			TotalValue: value.InexactFloat64(),
		})
		subtotals[cat] = subtotals[cat].Add(value)
		grand = grand.Add(value)
	}

	out := &Valuation{Categories: []CategoryGroup{}, GrandTotal: grand.InexactFloat64()}
	for cat, group := range grouped {
		group.Subtotal = subtotals[cat].InexactFloat64()
		out.Categories = append(out.Categories, *group)
	}
	sort.Slice(out.Categories, func(i, j int) bool {
		return out.Categories[i].CategoryName < out.Categories[j].CategoryName
	})
	return out, nil
}
