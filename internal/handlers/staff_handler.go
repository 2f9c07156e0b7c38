package handlers

import (
	"net/http"

	"retail-edge-pos/internal/database"
	"retail-edge-pos/internal/models"
	"retail-edge-pos/internal/staff"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- GET: /api/staff ---
func ListStaff(c *gin.Context) {
	list, err := staff.ListStaff(database.DB)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// --- PATCH: /api/staff/approve/:id ---
func ApproveStaff(c *gin.Context) {
	updateStaff(c, staff.Approve, "Staff approved")
}

// --- PATCH: /api/staff/deactivate/:id ---
func DeactivateStaff(c *gin.Context) {
	updateStaff(c, staff.Deactivate, "Staff deactivated")
}

// --- DELETE: /api/staff/:id ---
func DeleteStaff(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := staff.Delete(database.DB, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff deleted"})
}

func updateStaff(c *gin.Context, apply func(db *gorm.DB, id uint) (*models.User, error), msg string) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	member, err := apply(database.DB, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "staff": member})
}
