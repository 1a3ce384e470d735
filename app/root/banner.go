package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Banner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "CloudMedia Hub API is running!",
		"docs":    "/docs",
	})
}

func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}
