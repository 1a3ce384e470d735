package file

import (
	"errors"
	"net/http"
	"strconv"

	"bitwise74/cloudmedia/internal"
	"bitwise74/cloudmedia/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func FileDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "ID must be an integer",
			"requestID": requestID,
		})
		return
	}

	err = d.Uploader.Delete(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "File not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete file", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Deleted successfully",
	})
}
