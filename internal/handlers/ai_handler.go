package handlers

import (
	"net/http"

	"retail-edge-pos/internal/ai"
	"retail-edge-pos/internal/apperr"
	"retail-edge-pos/internal/config"
	"retail-edge-pos/internal/database"
	"retail-edge-pos/internal/middleware"

	"github.com/gin-gonic/gin"
)

type AskRequest struct {
	Message string `json:"message" binding:"required"`
}

// --- POST: /api/ask ---
func AskAI(cfg *config.Config) gin.HandlerFunc {
	agent := &ai.Agent{APIKey: cfg.GeminiAPIKey}

	return func(c *gin.Context) {
		var req AskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperr.Validation("Message is required"))
			return
		}

		// 1. The key comes from the environment, never from the client
		if cfg.GeminiAPIKey == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Assistant is not configured"})
			return
		}

		// 2. Run the AI Agent with the caller's permissions
		tools := &ai.Toolbox{
			DB:                database.DB,
			Caller:            middleware.Claims(c),
			LowStockThreshold: cfg.LowStockThreshold,
		}
		response, err := agent.Ask(c.Request.Context(), tools, req.Message)
		if err != nil {
			respondError(c, apperr.Server("Assistant failed to answer", err))
			return
		}

		// 3. Return the Answer
		c.JSON(http.StatusOK, gin.H{"reply": response})
	}
}
