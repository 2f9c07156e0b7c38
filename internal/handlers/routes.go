package handlers

import (
	"net/http"

	"retail-edge-pos/internal/config"
	"retail-edge-pos/internal/middleware"
	"retail-edge-pos/internal/models"
	"retail-edge-pos/internal/sales"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the whole API on r.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, proc *sales.Processor) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "online"}) })
	r.Static("/uploads", UploadDir)

	// --- PUBLIC ---
	r.POST("/api/register", Register(cfg))
	r.POST("/api/login", Login)
	r.GET("/api/system/status", GetSystemStatus(proc.TerminalID))

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// STAFF & ADMIN
		api.GET("/me", Me)
		api.PUT("/me", UpdateMe)
		api.GET("/products", GetProducts)
		api.GET("/products/low-stock", LowStock(cfg))
		api.GET("/products/:id", GetProduct)
		api.POST("/sales", CreateSale(proc))
		api.GET("/sales", ListSales)
		api.GET("/sales/:id", GetSale)
		api.GET("/reports/product-wise", GetProductSales)

		// ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/products", AddProduct)
			admin.PUT("/products/:id", UpdateProduct)
			admin.DELETE("/products/:id", DeleteProduct)
			admin.POST("/upload", UploadImage(cfg))

			admin.GET("/reports/staff-sales", GetStaffSales)
			admin.GET("/reports/overview", GetOverview)
			admin.GET("/reports/valuation", GetStockValuation)
			admin.GET("/reports/export", ExportSales)

			admin.GET("/staff", ListStaff)
			admin.PATCH("/staff/approve/:id", ApproveStaff)
			admin.PATCH("/staff/deactivate/:id", DeactivateStaff)
			admin.DELETE("/staff/:id", DeleteStaff)

			admin.POST("/ask", AskAI(cfg))
		}
	}
}
