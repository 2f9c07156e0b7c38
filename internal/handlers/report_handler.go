package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"retail-edge-pos/internal/apperr"
	"retail-edge-pos/internal/database"
	"retail-edge-pos/internal/middleware"
	"retail-edge-pos/internal/reports"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// --- GET: /api/reports/staff-sales ---
func GetStaffSales(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := reports.StaffWiseSummary(database.DB, middleware.Claims(c), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// --- GET: /api/reports/product-wise ---
func GetProductSales(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := reports.ProductWiseSummary(database.DB, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// --- GET: /api/reports/overview?top=5 ---
func GetOverview(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		respondError(c, err)
		return
	}

	top := 0
	if s := c.Query("top"); s != "" {
		if top, err = strconv.Atoi(s); err != nil || top < 1 {
			respondError(c, apperr.Validation("top must be a positive integer"))
			return
		}
	}

	overview, err := reports.GetOverview(database.DB, from, to, top)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// --- GET: /api/reports/valuation ---
// GetStockValuation calculates the total monetary value of all physical inventory
func GetStockValuation(c *gin.Context) {
	valuation, err := reports.StockValuation(database.DB)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, valuation)
}

// --- GET: /api/reports/export ---
func ExportSales(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		respondError(c, err)
		return
	}

	f, err := reports.ExportSalesWorkbook(database.DB, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("sales-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		// headers are already out; nothing left to tell the client
		c.Error(err)
	}
}
