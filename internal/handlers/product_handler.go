package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"retail-edge-pos/internal/apperr"
	"retail-edge-pos/internal/config"
	"retail-edge-pos/internal/database"
	"retail-edge-pos/internal/inventory"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadDir is where product images are stored and served from.
var UploadDir = "./uploads"

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

// --- GET: List all products ---
func GetProducts(c *gin.Context) {
	products, err := inventory.List(database.DB)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// --- GET: /api/products/:id ---
func GetProduct(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	product, err := inventory.Get(database.DB, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- POST: Add a new product ---
func AddProduct(c *gin.Context) {
	var input inventory.ProductInput

	// 1. Parse JSON Input
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Invalid input"))
		return
	}

	// 2. Save to DB
	product, err := inventory.Create(database.DB, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product added successfully", "product": product})
}

// --- PUT: Update name, category, price or stock ---
func UpdateProduct(c *gin.Context) {
	// 1. Get ID from URL (e.g., /products/5)
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	// 2. Only the fields that were sent are updated
	var input inventory.ProductUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Invalid input"))
		return
	}

	// 3. Save updates
	product, err := inventory.Update(database.DB, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// --- DELETE: Remove a product ---
// Past sales keep their own copy of the name and price, so history survives.
func DeleteProduct(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := inventory.Delete(database.DB, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// --- GET: /api/products/low-stock?threshold=N ---
func LowStock(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		threshold := cfg.LowStockThreshold
		if s := c.Query("threshold"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				respondError(c, apperr.Validation("threshold must be a non-negative integer"))
				return
			}
			threshold = n
		}

		products, err := inventory.LowStock(database.DB, threshold)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"threshold": threshold, "products": products})
	}
}

// --- UPLOAD: Handle Image Files ---
func UploadImage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get the file from the request
		file, err := c.FormFile("file")
		if err != nil {
			respondError(c, apperr.Validation("No file uploaded"))
			return
		}

		// 2. Only allow images
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !imageExtensions[ext] {
			respondError(c, apperr.Validation("Only image files are allowed"))
			return
		}

		// 3. Never trust the client's filename
		filename := uuid.NewString() + ext

		// 4. Save the file to the 'uploads' folder
		if err := c.SaveUploadedFile(file, filepath.Join(UploadDir, filename)); err != nil {
			respondError(c, apperr.Server("Failed to save file", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "File uploaded successfully",
			"url":     strings.TrimRight(cfg.BaseURL, "/") + "/uploads/" + filename,
		})
	}
}
