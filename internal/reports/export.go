package reports

import (
	"time"

	"retail-edge-pos/internal/apperr"
	"retail-edge-pos/internal/models"
	"retail-edge-pos/internal/sales"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	SheetSales    = "Sales"
	SheetStaff    = "Staff"
	SheetProducts = "Products"
)

// ExportSalesWorkbook builds an xlsx with one sheet of sales and one sheet per summary.
// The caller owns the returned file and must Close it.
func ExportSalesWorkbook(db *gorm.DB, from, to time.Time) (*excelize.File, error) {
	list, err := sales.ListSales(db, sales.SaleFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := fillWorkbook(f, list); err != nil {
		f.Close()
		return nil, apperr.Server("Failed to build workbook", err)
	}
	return f, nil
}

func fillWorkbook(f *excelize.File, list []models.Sale) error {
	if err := f.SetSheetName("Sheet1", SheetSales); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetStaff); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetProducts); err != nil {
		return err
	}

	rows := [][]any{{"Receipt", "Date", "Staff", "Customer", "Payment", "Subtotal", "Discount", "Tax", "Total"}}
	for _, s := range list {
		rows = append(rows, []any{
			s.ReceiptNo,
			s.SaleDate().Format(time.RFC3339),
			StaffName(s),
			s.Customer.Name,
			s.PaymentMethod,
			s.Subtotal,
			s.DiscountAmount,
			s.TaxAmount,
			s.Total,
		})
	}
	if err := writeRows(f, SheetSales, rows); err != nil {
		return err
	}

	rows = [][]any{{"Staff", "Sales", "Amount"}}
	for _, s := range summarizeStaff(list) {
		rows = append(rows, []any{s.Staff, s.TotalSales, s.TotalAmount})
	}
	if err := writeRows(f, SheetStaff, rows); err != nil {
		return err
	}

	rows = [][]any{{"Product ID", "Product", "Category", "Quantity Sold", "Revenue"}}
	for _, p := range summarizeProducts(list) {
		rows = append(rows, []any{p.ProductID, p.Product, p.Category, p.QuantitySold, p.Revenue})
	}
	return writeRows(f, SheetProducts, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
