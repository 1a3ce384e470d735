// Package model defines database models
package model

import "time"

type MediaFile struct {
	ID uint `gorm:"primaryKey;autoIncrement;index" json:"id"`

	// Original file name as the client sent it. Not unique and may contain
	// anything, so it never becomes part of a bucket key
	Filename string `json:"filename"`

	// Key of the object in the bucket, generated server-side
	StorageKey string `gorm:"uniqueIndex" json:"storage_key"`

	// Extension taken verbatim from the original name
	FileType string `json:"file_type"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (MediaFile) TableName() string {
	return "media_files"
}
