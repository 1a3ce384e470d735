package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
)

// Thumbnail decodes src, shrinks it so neither side exceeds maxDim while
// keeping the aspect ratio, and re-encodes it in the source format.
// Images already inside the box pass through unscaled. The output only
// depends on the input bytes, so regenerating a thumbnail always yields
// the same content.
func Thumbnail(src io.Reader, maxDim int) ([]byte, string, error) {
	img, format, err := image.Decode(src)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image, %w", err)
	}

	var enc imaging.Format

	switch format {
	case "jpeg":
		enc = imaging.JPEG
	case "png":
		enc = imaging.PNG
	case "gif":
		enc = imaging.GIF
	default:
		return nil, "", fmt.Errorf("unsupported image format %q", format)
	}

	thumb := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)

	buf := bytes.NewBuffer(nil)
	if err := imaging.Encode(buf, thumb, enc); err != nil {
		return nil, "", fmt.Errorf("failed to encode thumbnail, %w", err)
	}

	return buf.Bytes(), "image/" + format, nil
}
