package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder

	"github.com/disintegration/imaging"

	"github.com/df07/go-whitted-raytracer/pkg/environment"
)

// LoadImage loads a PNG or JPEG image, applying any EXIF orientation
func LoadImage(filename string) (image.Image, error) {
	img, err := imaging.Open(filename, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	return img, nil
}

// LoadCubeMap loads six face images ordered +X, -X, +Y, -Y, +Z, -Z
func LoadCubeMap(paths [6]string, options environment.CubeMapOptions) (*environment.CubeMap, error) {
	var faces [6]image.Image
	for i, path := range paths {
		img, err := LoadImage(path)
		if err != nil {
			return nil, fmt.Errorf("cube map face %s: %w", environment.CubeFace(i), err)
		}
		faces[i] = img
	}
	return environment.NewCubeMap(faces, options)
}

// LoadCubeMapCross loads a cube map stored as a single horizontal cross image
func LoadCubeMapCross(path string, options environment.CubeMapOptions) (*environment.CubeMap, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	faces, err := SplitCross(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return environment.NewCubeMap(faces, options)
}

// crossLayout gives the (column, row) of each face in a 4x3 horizontal cross:
//
//	     +Y
//	-X   +Z   +X   -Z
//	     -Y
var crossLayout = [6]image.Point{
	environment.FacePositiveX: {X: 2, Y: 1},
	environment.FaceNegativeX: {X: 0, Y: 1},
	environment.FacePositiveY: {X: 1, Y: 0},
	environment.FaceNegativeY: {X: 1, Y: 2},
	environment.FacePositiveZ: {X: 1, Y: 1},
	environment.FaceNegativeZ: {X: 3, Y: 1},
}

// SplitCross crops the six faces out of a horizontal cross image
func SplitCross(img image.Image) ([6]image.Image, error) {
	var faces [6]image.Image

	bounds := img.Bounds()
	edge := bounds.Dx() / 4
	if edge == 0 || bounds.Dx() != edge*4 || bounds.Dy() != edge*3 {
		return faces, fmt.Errorf("horizontal cross must be 4:3 with square faces, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	for i, cell := range crossLayout {
		corner := bounds.Min.Add(cell.Mul(edge))
		faces[i] = imaging.Crop(img, image.Rectangle{Min: corner, Max: corner.Add(image.Pt(edge, edge))})
	}
	return faces, nil
}
