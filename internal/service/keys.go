package service

import (
	"strings"

	"github.com/google/uuid"
)

// Objects written by the thumbnailer live under this prefix. Upload keys
// never contain a slash, so originals can't collide with it.
const thumbnailPrefix = "thumbnails/"

// FileType returns the extension of a client-supplied file name, the
// verbatim substring after the last dot. A name without a dot is
// returned whole.
func FileType(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i+1:]
	}

	return filename
}

// NewStorageKey generates a unique bucket key for an upload. Only the
// extension of the client name survives, the rest is a random UUID, which
// rules out both collisions and path traversal.
func NewStorageKey(filename string) string {
	return uuid.NewString() + "." + FileType(filename)
}

// ThumbnailKey returns the key the derivative of key is stored under.
func ThumbnailKey(key string) string {
	return thumbnailPrefix + key
}

// IsDerivative reports whether key points at a generated artifact rather
// than an uploaded original. The thumbnailer has to skip these or it
// would keep re-triggering itself on its own output.
func IsDerivative(key string) bool {
	return strings.HasPrefix(key, thumbnailPrefix)
}
