package files

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// DefaultThumbnailSide is the bounding box used for upload previews.
const DefaultThumbnailSide = 256

// Thumbnail decodes an image and fits it into a maxSide square box, keeping
// the aspect ratio. Images already inside the box are only re-encoded.
// The result is PNG.
func Thumbnail(data []byte, maxSide int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("thumbnail: %w", err)
	}
	if maxSide <= 0 {
		maxSide = DefaultThumbnailSide
	}
	var thumb image.Image = img
	if b := img.Bounds(); b.Dx() > maxSide || b.Dy() > maxSide {
		thumb = imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return nil, fmt.Errorf("thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
