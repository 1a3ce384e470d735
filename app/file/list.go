package file

import (
	"net/http"

	"bitwise74/cloudmedia/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func FileList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	entries, err := d.Uploader.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up file records", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, entries)
}
