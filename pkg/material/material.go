package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material is a Blinn-Phong surface description. Diffuse and Specular are
// per-channel reflectance fractions; they are not required to sum to <= 1.
// Specular also drives mirror reflection: a zero Specular makes the surface
// non-reflective.
type Material struct {
	Diffuse   core.Vec3 // k_d
	Specular  core.Vec3 // k_s
	Shininess float64   // specular exponent n
}

// NewMaterial creates a material, clamping negative coefficients and shininess to zero
func NewMaterial(diffuse, specular core.Vec3, shininess float64) Material {
	if shininess < 0 || math.IsNaN(shininess) {
		shininess = 0
	}
	return Material{
		Diffuse:   clampNonNegative(diffuse),
		Specular:  clampNonNegative(specular),
		Shininess: shininess,
	}
}

// NewDiffuse creates a purely diffuse material with no specular highlight or reflection
func NewDiffuse(diffuse core.Vec3) Material {
	return NewMaterial(diffuse, core.Vec3{}, 0)
}

// NewMirror creates a material that only reflects, tinted by specular
func NewMirror(specular core.Vec3, shininess float64) Material {
	return NewMaterial(core.Vec3{}, specular, shininess)
}

// IsReflective reports whether the material can contribute reflection bounces
func (m Material) IsReflective() bool {
	return m.Specular.Sum() > 0
}

// Evaluate returns the light reflected toward viewDir from a single unoccluded
// light of the given intensity: Lambertian diffuse plus Blinn-Phong specular.
// normal, lightDir and viewDir are unit vectors. No ambient term and no
// distance falloff are applied.
func (m Material) Evaluate(normal, lightDir, viewDir, intensity core.Vec3) core.Vec3 {
	cosTheta := math.Max(normal.Dot(lightDir), 0.0)
	diffuse := m.Diffuse.Multiply(cosTheta).MultiplyVec(intensity)

	halfVec := lightDir.Add(viewDir).Normalize()
	specular := m.Specular.Multiply(m.SpecularLobe(normal.Dot(halfVec))).MultiplyVec(intensity)

	return diffuse.Add(specular)
}

// SpecularLobe returns max(cosHalf, 0)^Shininess. A shininess of zero yields 1
// for every cosHalf, including 0 (0^0 is taken as 1).
func (m Material) SpecularLobe(cosHalf float64) float64 {
	if m.Shininess <= 0 {
		return 1.0
	}
	return math.Pow(math.Max(cosHalf, 0.0), m.Shininess)
}

func clampNonNegative(v core.Vec3) core.Vec3 {
	return core.Vec3{X: math.Max(v.X, 0), Y: math.Max(v.Y, 0), Z: math.Max(v.Z, 0)}
}
