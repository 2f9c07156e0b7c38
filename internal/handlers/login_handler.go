package handlers

import (
	"net/http"

	"retail-edge-pos/internal/apperr"
	"retail-edge-pos/internal/auth"
	"retail-edge-pos/internal/config"
	"retail-edge-pos/internal/database"
	"retail-edge-pos/internal/middleware"

	"github.com/gin-gonic/gin"
)

// --- POST: /api/register ---
func Register(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input auth.RegisterRequest
		// 1. Parse JSON
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, apperr.Validation("Invalid input"))
			return
		}

		// 2. Create the account (password policy, role and uniqueness are checked inside)
		user, err := auth.Register(database.DB, input, cfg.AllowAdminRegistration)
		if err != nil {
			respondError(c, err)
			return
		}

		msg := "User registered successfully. Awaiting admin approval."
		if user.Approved {
			msg = "User registered successfully"
		}
		c.JSON(http.StatusCreated, gin.H{"message": msg, "user": user})
	}
}

// --- POST: /api/login ---
func Login(c *gin.Context) {
	var input auth.LoginRequest
	// 1. Validate Input JSON
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Invalid input"))
		return
	}

	// 2. Verify credentials and issue the token
	result, err := auth.Login(database.DB, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// --- GET: /api/me ---
func Me(c *gin.Context) {
	claims := middleware.Claims(c)
	if claims == nil {
		respondError(c, apperr.Auth("Unauthorized"))
		return
	}

	user, err := auth.Profile(database.DB, claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// --- PUT: /api/me ---
func UpdateMe(c *gin.Context) {
	claims := middleware.Claims(c)
	if claims == nil {
		respondError(c, apperr.Auth("Unauthorized"))
		return
	}

	var input auth.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Invalid input"))
		return
	}

	user, err := auth.UpdateProfile(database.DB, claims.UserID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}
