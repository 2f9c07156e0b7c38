package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSystemStatus tells the till which terminal it is talking to.
func GetSystemStatus(terminalID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "online",
			"terminal_id": terminalID,
		})
	}
}
