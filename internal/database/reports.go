package database

import (
	"time"

	"retail-edge-pos/internal/models"

	"gorm.io/gorm"
)

// SalesReportResult holds the headline numbers for a period
type SalesReportResult struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalCount   int64   `json:"total_count"`
}

// GetSalesReport calculates sales within a specific date range (inclusive)
func GetSalesReport(db *gorm.DB, start, end time.Time) (*SalesReportResult, error) {
	var result SalesReportResult

	// 1. Calculate Revenue
	// COALESCE ensures we get 0 instead of NULL if no sales exist
	err := db.Model(&models.Sale{}).
		Where("date BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total), 0)").
		Scan(&result.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	// 2. Count Orders
	err = db.Model(&models.Sale{}).
		Where("date BETWEEN ? AND ?", start, end).
		Count(&result.TotalCount).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
