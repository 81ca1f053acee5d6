package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Intersect returns the smallest root of the ray/sphere quadratic that is
// strictly greater than tMin. The ray direction does not need to be normalized;
// t is expressed in units of the direction's length.
func (s Sphere) Intersect(ray core.Ray, tMin float64) (float64, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	// A tangent ray (zero discriminant) does not count as a hit
	discriminant := b*b - 4.0*a*c
	if discriminant <= 0 || a == 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-b - sqrtD) / (2.0 * a)
	if root > tMin {
		return root, true
	}

	// Origin is inside the sphere or the near root is within tMin
	root = (-b + sqrtD) / (2.0 * a)
	if root > tMin {
		return root, true
	}

	return 0, false
}

// Hit intersects the ray and fills in a HitInfo for an accepted root
func (s Sphere) Hit(ray core.Ray, tMin float64) (HitInfo, bool) {
	t, ok := s.Intersect(ray, tMin)
	if !ok {
		return HitInfo{}, false
	}

	position := ray.At(t)
	return HitInfo{
		T:        t,
		Position: position,
		Normal:   s.NormalAt(position),
		Material: s.Material,
	}, true
}

// NormalAt returns the outward unit normal at a point on the sphere surface
func (s Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// IsValid reports whether the sphere has a finite center and a non-negative radius
func (s Sphere) IsValid() bool {
	return s.Center.IsFinite() && s.Radius >= 0 && !math.IsInf(s.Radius, 0) && !math.IsNaN(s.Radius)
}
