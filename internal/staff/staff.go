package staff

import (
	"errors"

	"retail-edge-pos/internal/apperr"
	"retail-edge-pos/internal/models"

	"gorm.io/gorm"
)

func ListStaff(db *gorm.DB) ([]models.User, error) {
	var staff []models.User
	if err := db.Where("role = ?", models.RoleStaff).Order("full_name").Find(&staff).Error; err != nil {
		return nil, apperr.Server("Failed to fetch staff", err)
	}
	return staff, nil
}

func Approve(db *gorm.DB, id uint) (*models.User, error) {
	return setApproved(db, id, true)
}

// Deactivate revokes approval. Existing tokens stop working for sales immediately.
func Deactivate(db *gorm.DB, id uint) (*models.User, error) {
	return setApproved(db, id, false)
}

func Delete(db *gorm.DB, id uint) error {
	res := db.Where("role = ?", models.RoleStaff).Delete(&models.User{}, id)
	if res.Error != nil {
		return apperr.Server("Failed to delete staff", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Staff not found")
	}
	return nil
}

func setApproved(db *gorm.DB, id uint, approved bool) (*models.User, error) {
	member, err := find(db, id)
	if err != nil {
		return nil, err
	}
	if err := db.Model(member).Update("approved", approved).Error; err != nil {
		return nil, apperr.Server("Failed to update staff", err)
	}
	member.Approved = approved
	return member, nil
}

func find(db *gorm.DB, id uint) (*models.User, error) {
	var member models.User
	err := db.Where("role = ?", models.RoleStaff).First(&member, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Staff not found")
	}
	if err != nil {
		return nil, apperr.Server("Failed to fetch staff", err)
	}
	return &member, nil
}
