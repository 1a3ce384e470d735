// Package app contains all endpoints available
package app

import (
	"fmt"
	"net/http"
	"time"

	"bitwise74/cloudmedia/app/file"
	"bitwise74/cloudmedia/app/root"
	"bitwise74/cloudmedia/aws"
	"bitwise74/cloudmedia/db"
	"bitwise74/cloudmedia/internal"
	"bitwise74/cloudmedia/internal/service"
	"bitwise74/cloudmedia/pkg/middleware"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var store = persist.NewMemoryStore(time.Minute)

// Cache key CacheByRequestURI derives for the list route
const listCacheKey = "/files/"

func NewRouter() (*gin.Engine, error) {
	d := &internal.Deps{}

	conn, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Postgres connection, %w", err)
	}
	d.DB = conn

	s3, err := aws.NewS3()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
	}
	d.S3 = s3
	d.Uploader = service.NewUploader(conn, s3, *s3.Bucket)

	return newRouter(d), nil
}

// newRouter wires the routes and middleware around already-built deps,
// so tests can hand in their own stores.
func newRouter(d *internal.Deps) *gin.Engine {
	router := gin.New()

	router.Use(
		// Development posture: the frontend may live anywhere
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:    []string{"*"},
			MaxAge:          12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	maxUploadSize := viper.GetInt64("upload.max_size")

	// GET / 			-> Liveness banner
	router.GET("/", root.Banner)

	// HEAD /heartbeat 		-> Used to check if the server is alive
	router.HEAD("/heartbeat", root.Heartbeat)

	// POST /upload/ 		-> Uploads a new file and stores its metadata
	router.POST("/upload/", middleware.BodySizeLimiter(maxUploadSize), evictListCache(func(c *gin.Context) { file.FileUpload(c, d) }))

	f := router.Group("/files")
	{
		// GET /files/ 		-> Returns all stored file records
		f.GET("/", cacheFor(10), func(c *gin.Context) { file.FileList(c, d) })

		// DELETE /files/:id	-> Deletes a file and its metadata
		f.DELETE("/:id", evictListCache(func(c *gin.Context) { file.FileDelete(c, d) }))
	}

	return router
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}

// evictListCache drops the cached list response after a successful
// mutation. Uploads and deletes have to show up in GET /files/ right
// away, not after the cache TTL runs out.
func evictListCache(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		h(c)

		if c.Writer.Status() < http.StatusMultipleChoices {
			_ = store.Delete(listCacheKey)
		}
	}
}
