package output

import (
	"image"

	"github.com/nfnt/resize"
)

// Thumbnail downscales img so that neither edge exceeds maxEdge, keeping the
// aspect ratio. Images already within the limit are returned unchanged, as is
// img when maxEdge is not positive.
func Thumbnail(img image.Image, maxEdge int) image.Image {
	if maxEdge <= 0 {
		return img
	}
	return resize.Thumbnail(uint(maxEdge), uint(maxEdge), img, resize.Lanczos3)
}
