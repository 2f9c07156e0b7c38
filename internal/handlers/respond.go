package handlers

import (
	"log"
	"strconv"
	"time"

	"retail-edge-pos/internal/apperr"
	"retail-edge-pos/internal/sales"

	"github.com/gin-gonic/gin"
)

// respondError is the single place errors become HTTP responses.
func respondError(c *gin.Context, err error) {
	if apperr.KindOf(err) == apperr.KindServer {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(apperr.StatusCode(err), gin.H{"message": apperr.PublicMessage(err)})
}

func idParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("Invalid ID")
	}
	return uint(id), nil
}

// dateRange reads ?from=&to= and the ?period=today shortcut.
func dateRange(c *gin.Context) (time.Time, time.Time, error) {
	if c.Query("period") == "today" {
		from, to := sales.TodayRange(time.Now())
		return from, to, nil
	}
	return sales.ParseRange(c.Query("from"), c.Query("to"), time.Local)
}
