package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"bitwise74/cloudmedia/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a file id has no record in the metadata store.
var ErrNotFound = errors.New("file not found")

// Uploader orchestrates the two-step writes between the bucket and the
// metadata table. The two stores aren't jointly transactional, so the
// ordering below decides which side can end up orphaned on a failure.
type Uploader struct {
	DB     *gorm.DB
	Store  BlobStore
	Bucket string
}

func NewUploader(db *gorm.DB, store BlobStore, bucket string) *Uploader {
	return &Uploader{
		DB:     db,
		Store:  store,
		Bucket: bucket,
	}
}

// Upload streams body into the bucket under a fresh key and then records
// the metadata row. The bucket write goes first so a failure never leaves
// a row pointing at a missing object.
func (u *Uploader) Upload(ctx context.Context, body io.Reader, filename string, size int64, contentType string) (*model.MediaFile, error) {
	key := NewStorageKey(filename)

	err := u.Store.Put(ctx, u.Bucket, key, body, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file to the bucket, %w", err)
	}

	ent := &model.MediaFile{
		Filename:   filename,
		StorageKey: key,
		FileType:   FileType(filename),
		CreatedAt:  time.Now().UTC(),
	}

	err = u.DB.WithContext(ctx).Create(ent).Error
	if err != nil {
		// The object is already in the bucket and nothing references it
		// anymore. Log the key so a reconciliation sweep can pick it up.
		zap.L().Error("Failed to save file record, orphaned object left in bucket",
			zap.String("key", key), zap.Error(err))

		return nil, fmt.Errorf("failed to save file record, %w", err)
	}

	return ent, nil
}

// List returns every known file record. The slice is never nil, an empty
// table renders as a JSON array rather than null.
func (u *Uploader) List(ctx context.Context) ([]model.MediaFile, error) {
	entries := make([]model.MediaFile, 0)

	err := u.DB.WithContext(ctx).Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up file records, %w", err)
	}

	return entries, nil
}

// Delete removes the object first and only then the metadata row. If the
// bucket delete fails the row stays, so an object that might still exist
// is never left without anything referencing it.
func (u *Uploader) Delete(ctx context.Context, id uint) error {
	var ent model.MediaFile

	err := u.DB.WithContext(ctx).First(&ent, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}

		return fmt.Errorf("failed to look up file record, %w", err)
	}

	err = u.Store.Delete(ctx, u.Bucket, ent.StorageKey)
	if err != nil {
		return fmt.Errorf("failed to delete object from the bucket, %w", err)
	}

	err = u.DB.WithContext(ctx).Delete(&model.MediaFile{}, ent.ID).Error
	if err != nil {
		return fmt.Errorf("failed to delete file record, %w", err)
	}

	return nil
}
