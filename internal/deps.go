package internal

import (
	"bitwise74/cloudmedia/aws"
	"bitwise74/cloudmedia/internal/service"

	"gorm.io/gorm"
)

// Deps holds the store clients built once at startup and handed to every
// handler. Nothing reaches for ambient globals, so tests can inject
// doubles for both stores.
type Deps struct {
	DB       *gorm.DB
	S3       *aws.S3Client
	Uploader *service.Uploader
}
