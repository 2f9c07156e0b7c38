package auth

import (
	"errors"
	"strings"

	"retail-edge-pos/internal/apperr"
	"retail-edge-pos/internal/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New()

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=150"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // optional; must match the account when given
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type ProfileUpdate struct {
	FullName string `json:"full_name" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"omitempty,email,max=150"`
	Password string `json:"password"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. Staff start unapproved; admins are approved on creation.
// Additional admins can only self-register when allowAdmin is set.
func Register(db *gorm.DB, req RegisterRequest, allowAdmin bool) (*models.User, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = normalizeEmail(req.Email)
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))
	if req.Role == "" {
		req.Role = models.RoleStaff
	}

	if err := validate.Struct(req); err != nil {
		return nil, apperr.Validation("Full name and a valid email are required")
	}
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleStaff {
		return nil, apperr.Validation("Role must be admin or staff")
	}

	if req.Role == models.RoleAdmin && !allowAdmin {
		var admins int64
		if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error; err != nil {
			return nil, apperr.Server("Failed to register user", err)
		}
		if admins > 0 {
			return nil, apperr.Forbidden("Admin registration is closed")
		}
	}

	if err := ensureEmailFree(db, req.Email, 0); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Approved:     req.Role == models.RoleAdmin,
	}
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Email already registered")
		}
		return nil, apperr.Server("Failed to register user", err)
	}

	return user, nil
}

// Login checks credentials and issues a token. Unapproved staff cannot log in.
func Login(db *gorm.DB, req LoginRequest) (*LoginResult, error) {
	var user models.User
	err := db.Where("email = ?", normalizeEmail(req.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Auth("Email not found")
	}
	if err != nil {
		return nil, apperr.Server("Failed to look up user", err)
	}

	if !CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperr.Auth("Incorrect password")
	}

	if role := strings.ToLower(strings.TrimSpace(req.Role)); role != "" && role != user.Role {
		return nil, apperr.Auth("Role mismatch")
	}

	if user.Role == models.RoleStaff && !user.Approved {
		return nil, apperr.Auth("Account is awaiting admin approval")
	}

	token, err := GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperr.Server("Failed to generate token", err)
	}

	return &LoginResult{Token: token, User: &user}, nil
}

func Profile(db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	err := db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Server("Failed to load profile", err)
	}
	return &user, nil
}

// UpdateProfile changes the caller's own name, email or password. Empty fields are left alone.
func UpdateProfile(db *gorm.DB, userID uint, upd ProfileUpdate) (*models.User, error) {
	upd.FullName = strings.TrimSpace(upd.FullName)
	upd.Email = normalizeEmail(upd.Email)
	if err := validate.Struct(upd); err != nil {
		return nil, apperr.Validation("Invalid profile details")
	}

	user, err := Profile(db, userID)
	if err != nil {
		return nil, err
	}

	if upd.FullName != "" {
		user.FullName = upd.FullName
	}
	if upd.Email != "" && upd.Email != user.Email {
		if err := ensureEmailFree(db, upd.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = upd.Email
	}
	if upd.Password != "" {
		if err := ValidatePassword(upd.Password); err != nil {
			return nil, err
		}
		hash, err := HashPassword(upd.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Email already registered")
		}
		return nil, apperr.Server("Failed to update profile", err)
	}
	return user, nil
}

func ensureEmailFree(db *gorm.DB, email string, exceptID uint) error {
	var count int64
	err := db.Model(&models.User{}).Where("email = ? AND id <> ?", email, exceptID).Count(&count).Error
	if err != nil {
		return apperr.Server("Failed to check email", err)
	}
	if count > 0 {
		return apperr.Conflict("Email already registered")
	}
	return nil
}
