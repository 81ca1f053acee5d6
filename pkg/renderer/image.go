package renderer

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageOptions controls how accumulated pixels become an image
type ImageOptions struct {
	// PreserveAlpha writes coverage into the alpha channel of an *image.NRGBA.
	// When false the output is an opaque *image.RGBA.
	PreserveAlpha bool
}

// newImage allocates the image type selected by the options
func (o ImageOptions) newImage(rect image.Rectangle) draw.Image {
	if o.PreserveAlpha {
		return image.NewNRGBA(rect)
	}
	return image.NewRGBA(rect)
}

// pixelColor converts accumulated pixel statistics to an output color
func (o ImageOptions) pixelColor(ps *PixelStats) color.Color {
	c := toDisplay(ps.GetColor())
	if !o.PreserveAlpha {
		return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
	}
	alpha := uint8(255*clamp01(ps.GetAlpha()) + 0.5)
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: alpha}
}

// ColorToRGBA converts a linear color to an opaque 8-bit color with gamma 2.0
func ColorToRGBA(colorVec core.Vec3) color.RGBA {
	c := toDisplay(colorVec)
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

// toDisplay applies gamma 2.0, clamps to [0,1] and quantizes to 8 bits
func toDisplay(colorVec core.Vec3) [3]uint8 {
	colorVec = colorVec.Clamp(0.0, 1.0).GammaCorrect(2.0)
	return [3]uint8{
		uint8(255 * colorVec.X),
		uint8(255 * colorVec.Y),
		uint8(255 * colorVec.Z),
	}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
