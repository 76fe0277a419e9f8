package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// isoMillis formats t in UTC with exactly three fractional digits, e.g. 2026-01-02T03:04:05.000Z.
func isoMillis(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func timestamp() string {
	return isoMillis(time.Now())
}

// Health handles GET /health. It never touches the store.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"status":    "healthy",
		"timestamp": timestamp(),
	})
}

// Root handles GET /
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"message":   "Member Registration API",
		"health":    "/health",
		"version":   Version,
		"timestamp": timestamp(),
	})
}

// NotFound answers every unmatched route.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Not Found"})
}
