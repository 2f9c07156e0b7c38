package database

import (
	"testing"
	"time"

	"retail-edge-pos/internal/models"

	"gorm.io/gorm/logger"
)

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("oracle", "", logger.Silent); err == nil {
		t.Error("Expected an error for an unsupported driver")
	}
}

func TestGetSalesReport(t *testing.T) {
	db, err := Open("sqlite", ":memory:", logger.Silent)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	day := func(d int) time.Time { return time.Date(2025, 4, d, 10, 0, 0, 0, time.UTC) }
	for i, s := range []models.Sale{
		{ReceiptNo: "a", Total: 10.5, Date: day(1)},
		{ReceiptNo: "b", Total: 20, Date: day(2)},
		{ReceiptNo: "c", Total: 99, Date: day(9)},
	} {
		if err := db.Create(&s).Error; err != nil {
			t.Fatalf("Failed to seed sale %d: %v", i, err)
		}
	}

	testCases := []struct {
		name    string
		start   time.Time
		end     time.Time
		revenue float64
		count   int64
	}{
		{"first week", day(1), day(7), 30.5, 2},
		{"single day", day(9), day(9).Add(time.Hour), 99, 1},
		{"no sales", day(20), day(21), 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			report, err := GetSalesReport(db, tc.start, tc.end)
			if err != nil {
				t.Fatalf("GetSalesReport failed: %v", err)
			}
			if report.TotalRevenue != tc.revenue || report.TotalCount != tc.count {
				t.Errorf("Expected %v/%d, got %+v", tc.revenue, tc.count, report)
			}
		})
	}
}
