package environment

import (
	"fmt"
	"image"
	"math"

	"github.com/nfnt/resize"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CubeFace indexes the six faces of a cube map
type CubeFace int

const (
	FacePositiveX CubeFace = iota
	FaceNegativeX
	FacePositiveY
	FaceNegativeY
	FacePositiveZ
	FaceNegativeZ
)

// String returns the conventional face name
func (f CubeFace) String() string {
	switch f {
	case FacePositiveX:
		return "+x"
	case FaceNegativeX:
		return "-x"
	case FacePositiveY:
		return "+y"
	case FaceNegativeY:
		return "-y"
	case FacePositiveZ:
		return "+z"
	case FaceNegativeZ:
		return "-z"
	default:
		return fmt.Sprintf("face(%d)", int(f))
	}
}

// CubeMapOptions controls how face images are converted
type CubeMapOptions struct {
	MaxEdge int     // Downscale faces to at most this edge length (0 = keep)
	Gamma   float64 // Decode gamma applied to 8-bit face colors (0 = 2.0, 1 = linear)
}

// CubeMap is an environment backed by six square images using the OpenGL
// cube map face orientation.
type CubeMap struct {
	Size  int            // Edge length of every face in pixels
	Faces [6][]core.Vec3 // Row-major: Faces[f][y*Size + x]
}

// NewCubeMap converts six face images into a cube map. Faces must be square;
// faces of different sizes are resized to the smallest edge.
func NewCubeMap(faces [6]image.Image, options CubeMapOptions) (*CubeMap, error) {
	edge := 0
	for i, face := range faces {
		if face == nil {
			return nil, fmt.Errorf("cube map face %s is missing", CubeFace(i))
		}
		bounds := face.Bounds()
		if bounds.Dx() != bounds.Dy() || bounds.Dx() == 0 {
			return nil, fmt.Errorf("cube map face %s must be square, got %dx%d", CubeFace(i), bounds.Dx(), bounds.Dy())
		}
		if edge == 0 || bounds.Dx() < edge {
			edge = bounds.Dx()
		}
	}
	if options.MaxEdge > 0 && edge > options.MaxEdge {
		edge = options.MaxEdge
	}

	gamma := options.Gamma
	if gamma <= 0 {
		gamma = 2.0
	}

	cm := &CubeMap{Size: edge}
	for i, face := range faces {
		if face.Bounds().Dx() != edge {
			face = resize.Resize(uint(edge), uint(edge), face, resize.Bilinear)
		}
		cm.Faces[i] = imageToLinear(face, gamma)
	}
	return cm, nil
}

// NewSolidCubeMap creates a 1x1 cube map with one color per face
func NewSolidCubeMap(colors [6]core.Vec3) *CubeMap {
	cm := &CubeMap{Size: 1}
	for i, c := range colors {
		cm.Faces[i] = []core.Vec3{c}
	}
	return cm
}

// Lookup implements core.Environment
func (cm *CubeMap) Lookup(direction core.Vec3) core.Vec3 {
	face, s, t, ok := FaceCoordinates(direction)
	if !ok || cm.Size == 0 {
		return core.Vec3{}
	}
	return cm.sampleBilinear(face, s, t)
}

// FaceCoordinates selects the face hit by direction and returns texture
// coordinates (s, t) in [0,1], with t growing downward in the face image.
func FaceCoordinates(direction core.Vec3) (CubeFace, float64, float64, bool) {
	ax, ay, az := math.Abs(direction.X), math.Abs(direction.Y), math.Abs(direction.Z)

	var face CubeFace
	var sc, tc, ma float64
	switch {
	case ax >= ay && ax >= az && ax > 0:
		ma = ax
		if direction.X > 0 {
			face, sc, tc = FacePositiveX, -direction.Z, -direction.Y
		} else {
			face, sc, tc = FaceNegativeX, direction.Z, -direction.Y
		}
	case ay >= az && ay > 0:
		ma = ay
		if direction.Y > 0 {
			face, sc, tc = FacePositiveY, direction.X, direction.Z
		} else {
			face, sc, tc = FaceNegativeY, direction.X, -direction.Z
		}
	case az > 0:
		ma = az
		if direction.Z > 0 {
			face, sc, tc = FacePositiveZ, direction.X, -direction.Y
		} else {
			face, sc, tc = FaceNegativeZ, -direction.X, -direction.Y
		}
	default:
		return 0, 0, 0, false
	}

	s := 0.5 * (sc/ma + 1.0)
	t := 0.5 * (tc/ma + 1.0)
	return face, s, t, true
}

// sampleBilinear filters between the four nearest texel centers, clamping at face edges
func (cm *CubeMap) sampleBilinear(face CubeFace, s, t float64) core.Vec3 {
	pixels := cm.Faces[face]
	size := cm.Size

	x := s*float64(size) - 0.5
	y := t*float64(size) - 0.5
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	at := func(px, py int) core.Vec3 {
		px = max(0, min(size-1, px))
		py = max(0, min(size-1, py))
		return pixels[py*size+px]
	}

	c00 := at(x0, y0)
	c10 := at(x0+1, y0)
	c01 := at(x0, y0+1)
	c11 := at(x0+1, y0+1)

	top := c00.Lerp(c10, fx)
	bottom := c01.Lerp(c11, fx)
	return top.Lerp(bottom, fy)
}

// imageToLinear converts an image into linear Vec3 colors
func imageToLinear(img image.Image, gamma float64) []core.Vec3 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			c := core.NewVec3(float64(r)/65535.0, float64(g)/65535.0, float64(b)/65535.0)
			if gamma != 1 {
				c = core.NewVec3(math.Pow(c.X, gamma), math.Pow(c.Y, gamma), math.Pow(c.Z, gamma))
			}
			pixels[y*width+x] = c
		}
	}
	return pixels
}
