// Package thumbnailer consumes object storage change notifications and
// writes a resized copy of every new image under the thumbnails/ prefix.
package thumbnailer

import (
	"bytes"
	"context"
	"fmt"

	"bitwise74/cloudmedia/internal/service"

	"go.uber.org/zap"
)

// Event is the notification batch the storage trigger delivers. Delivery
// is at-least-once and possibly out of order, so handling has to be
// idempotent per key.
type Event struct {
	Messages []Message `json:"messages"`
}

type Message struct {
	Details Details `json:"details"`
}

type Details struct {
	BucketID string `json:"bucket_id"`
	ObjectID string `json:"object_id"`
}

type Handler struct {
	Store  service.BlobStore
	MaxDim int
}

func New(store service.BlobStore, maxDim int) *Handler {
	return &Handler{
		Store:  store,
		MaxDim: maxDim,
	}
}

// Handle processes one notification batch. Failures are returned to the
// trigger infrastructure so its retry policy kicks in, never swallowed.
func (h *Handler) Handle(ctx context.Context, e Event) error {
	for _, m := range e.Messages {
		if err := h.handleObject(ctx, m.Details.BucketID, m.Details.ObjectID); err != nil {
			return err
		}
	}

	return nil
}

func (h *Handler) handleObject(ctx context.Context, bucket, key string) error {
	// Thumbnails raise change notifications of their own. Writing a
	// thumbnail of a thumbnail would loop forever, so derivatives are a
	// normal-path no-op.
	if service.IsDerivative(key) {
		zap.L().Debug("Skipping derivative object", zap.String("key", key))
		return nil
	}

	body, err := h.Store.Get(ctx, bucket, key)
	if err != nil {
		return fmt.Errorf("failed to fetch original %q, %w", key, err)
	}
	defer body.Close()

	thumb, contentType, err := service.Thumbnail(body, h.MaxDim)
	if err != nil {
		return fmt.Errorf("failed to make thumbnail for %q, %w", key, err)
	}

	thumbKey := service.ThumbnailKey(key)

	err = h.Store.Put(ctx, bucket, thumbKey, bytes.NewReader(thumb), int64(len(thumb)), contentType)
	if err != nil {
		return fmt.Errorf("failed to upload thumbnail %q, %w", thumbKey, err)
	}

	zap.L().Info("Thumbnail created", zap.String("key", thumbKey))
	return nil
}
