package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera is looking at
	Up          core.Vec3 // Up direction (usually (0,1,0))
	Width       int       // Image width in pixels
	AspectRatio float64   // Width / height
	VFov        float64   // Vertical field of view in degrees
}

// Camera is a pinhole camera that generates primary rays for pixels
type Camera struct {
	config        CameraConfig
	width         int
	height        int
	halfWidth     float64 // Half the viewport width at unit distance
	halfHeight    float64 // Half the viewport height at unit distance
	cameraToWorld mgl64.Mat4
}

// NewCamera creates a camera from the configuration, filling in defaults for
// missing values.
func NewCamera(config CameraConfig) *Camera {
	if config.Width <= 0 {
		config.Width = 400
	}
	if config.AspectRatio <= 0 {
		config.AspectRatio = 16.0 / 9.0
	}
	if config.VFov <= 0 || config.VFov >= 180 {
		config.VFov = 40.0
	}
	if config.Up.IsZero() {
		config.Up = core.NewVec3(0, 1, 0)
	}
	if config.LookAt == config.Center {
		config.LookAt = config.Center.Add(core.NewVec3(0, 0, -1))
	}

	forward := config.LookAt.Subtract(config.Center).Normalize()
	if forward.Cross(config.Up.Normalize()).LengthSquared() < 1e-12 {
		// Up is parallel to the view direction, pick any perpendicular axis
		config.Up = core.NewVec3(0, 0, 1)
		if math.Abs(forward.Z) > 0.9 {
			config.Up = core.NewVec3(1, 0, 0)
		}
	}

	// Round so a ratio built from w/h gives back exactly h
	height := int(math.Round(float64(config.Width) / config.AspectRatio))
	if height < 1 {
		height = 1
	}

	halfHeight := math.Tan(mgl64.DegToRad(config.VFov) / 2)
	view := mgl64.LookAtV(toMgl(config.Center), toMgl(config.LookAt), toMgl(config.Up))

	return &Camera{
		config:        config,
		width:         config.Width,
		height:        height,
		halfWidth:     halfHeight * config.AspectRatio,
		halfHeight:    halfHeight,
		cameraToWorld: view.Inv(),
	}
}

// Config returns the configuration after defaults were applied
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Size returns the image width and height in pixels
func (c *Camera) Size() (int, int) {
	return c.width, c.height
}

// GetRay returns the primary ray through pixel (i, j), where j = 0 is the top
// row. du and dv offset the sample inside the pixel and lie in [0, 1); 0.5
// samples the pixel center. The returned direction is normalized.
func (c *Camera) GetRay(i, j int, du, dv float64) core.Ray {
	x := (2.0*(float64(i)+du)/float64(c.width) - 1.0) * c.halfWidth
	y := (1.0 - 2.0*(float64(j)+dv)/float64(c.height)) * c.halfHeight

	eye := mgl64.Vec4{x, y, -1.0, 0.0}
	world := c.cameraToWorld.Mul4x1(eye).Vec3().Normalize()

	return core.NewRay(c.config.Center, fromMgl(world))
}

// GetCameraForward returns the unit view direction
func (c *Camera) GetCameraForward() core.Vec3 {
	forward := c.cameraToWorld.Mul4x1(mgl64.Vec4{0, 0, -1, 0}).Vec3()
	return fromMgl(forward).Normalize()
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if !override.Center.IsZero() {
		result.Center = override.Center
	}
	if !override.LookAt.IsZero() {
		result.LookAt = override.LookAt
	}
	if !override.Up.IsZero() {
		result.Up = override.Up
	}
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.AspectRatio > 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov > 0 {
		result.VFov = override.VFov
	}
	return result
}
