// The thumbnailer receives object storage change notifications over a
// webhook and writes a resized copy of every uploaded image back into the
// bucket under the thumbnails/ prefix.
package main

import (
	"fmt"
	"net/http"

	"bitwise74/cloudmedia/aws"
	"bitwise74/cloudmedia/config"
	"bitwise74/cloudmedia/internal/thumbnailer"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	config.MakeLogger()

	s3, err := aws.NewS3()
	if err != nil {
		panic(err)
	}

	h := thumbnailer.New(s3, viper.GetInt("thumbnail.max_dim"))

	router := gin.New()
	router.Use(gin.Recovery())

	// HEAD /heartbeat	-> Used to check if the worker is alive
	router.HEAD("/heartbeat", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// POST /events 	-> Receives storage change notification batches
	router.POST("/events", func(c *gin.Context) {
		var e thumbnailer.Event

		if err := c.ShouldBindJSON(&e); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid event payload",
			})
			return
		}

		if err := h.Handle(c.Request.Context(), e); err != nil {
			// Non-2xx tells the trigger infrastructure to redeliver
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": err.Error(),
			})

			zap.L().Error("Failed to handle storage event", zap.Error(err))
			return
		}

		c.Status(http.StatusOK)
	})

	zap.L().Info("Thumbnailer starting", zap.Int("port", viper.GetInt("thumbnail.port")))

	err = router.Run(fmt.Sprintf(":%d", viper.GetInt("thumbnail.port")))
	if err != nil {
		panic(err)
	}
}
