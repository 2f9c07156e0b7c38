package handlers

import (
	"net/http"

	"retail-edge-pos/internal/apperr"
	"retail-edge-pos/internal/database"
	"retail-edge-pos/internal/middleware"
	"retail-edge-pos/internal/sales"

	"github.com/gin-gonic/gin"
)

// --- POST: /api/sales ---
func CreateSale(proc *sales.Processor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sales.SaleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperr.Validation("Invalid request body"))
			return
		}

		// The seller is whoever holds the token, never a field in the body
		sale, err := proc.CreateSale(c.Request.Context(), middleware.Claims(c), req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Sale completed successfully", "sale": sale})
	}
}

// --- GET: /api/sales?from=&to=&period=today ---
// Staff only ever see their own sales.
func ListSales(c *gin.Context) {
	claims := middleware.Claims(c)
	if claims == nil {
		respondError(c, apperr.Auth("Unauthorized"))
		return
	}

	from, to, err := dateRange(c)
	if err != nil {
		respondError(c, err)
		return
	}

	filter := sales.SaleFilter{From: from, To: to}
	if !claims.IsAdmin() {
		filter.StaffID = claims.UserID
	}

	list, err := sales.ListSales(database.DB, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// --- GET: /api/sales/:id ---
func GetSale(c *gin.Context) {
	claims := middleware.Claims(c)
	if claims == nil {
		respondError(c, apperr.Auth("Unauthorized"))
		return
	}

	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	sale, err := sales.GetSale(database.DB, id)
	if err != nil {
		respondError(c, err)
		return
	}
	// Other staff members' sales look the same as missing ones
	if !claims.IsAdmin() && sale.StaffID != claims.UserID {
		respondError(c, apperr.NotFound("Sale not found"))
		return
	}
	c.JSON(http.StatusOK, sale)
}
