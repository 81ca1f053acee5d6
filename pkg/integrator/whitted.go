package integrator

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// MaxBounces caps reflection bounces regardless of the scene's bounce limit
const MaxBounces = 16

// TraceStats describes the path taken by one traced ray
type TraceStats struct {
	PrimaryHit bool // The primary ray hit a sphere
	Bounces    int  // Reflection rays cast after the primary hit
	Escaped    bool // A reflection ray left the scene and sampled the environment
}

// WhittedIntegrator shades the first hit with direct lighting and follows a
// single chain of mirror reflections, attenuated by the product of the
// specular coefficients along the chain. It has no state and is safe for
// concurrent use.
type WhittedIntegrator struct{}

// NewWhittedIntegrator creates a new Whitted-style integrator
func NewWhittedIntegrator() *WhittedIntegrator {
	return &WhittedIntegrator{}
}

// Trace implements Integrator
func (w *WhittedIntegrator) Trace(s *scene.Scene, ray core.Ray) (core.RGBA, error) {
	color, _, err := w.TraceWithStats(s, ray)
	return color, err
}

// bounceState is the loop state carried between reflection bounces
type bounceState struct {
	tint      core.Vec3        // Product of specular coefficients so far
	hit       geometry.HitInfo // Surface the next reflection leaves from
	direction core.Vec3        // Unit direction of the ray that reached hit
}

// TraceWithStats traces ray like Trace and also reports the bounces taken.
// A zero-length or non-finite direction returns core.ErrZeroDirection.
func (w *WhittedIntegrator) TraceWithStats(s *scene.Scene, ray core.Ray) (core.RGBA, TraceStats, error) {
	var stats TraceStats
	if s == nil {
		return core.RGBA{}, stats, fmt.Errorf("%w: nil scene", core.ErrInvalidScene)
	}
	if err := ray.Validate(); err != nil {
		return core.RGBA{}, stats, err
	}

	hit, ok := Intersect(s, ray)
	if !ok {
		return core.RGBA{Color: s.EnvironmentColor(ray.Direction), Alpha: 0}, stats, nil
	}
	stats.PrimaryHit = true

	direction := ray.Direction.Normalize()
	color := Shade(s, hit.Material, hit.Position, hit.Normal, direction.Negate())

	state := bounceState{
		tint:      hit.Material.Specular,
		hit:       hit,
		direction: direction,
	}

	limit := min(s.BounceLimit, MaxBounces)
	for bounce := 0; bounce < limit; bounce++ {
		if state.tint.Sum() <= 0 {
			break
		}

		reflected := state.direction.Reflect(state.hit.Normal).Normalize()
		origin := state.hit.Position.Add(state.hit.Normal.Multiply(core.Epsilon))
		stats.Bounces++

		next, ok := Intersect(s, core.NewRay(origin, reflected))
		if !ok {
			color = color.Add(state.tint.MultiplyVec(s.EnvironmentColor(reflected)))
			stats.Escaped = true
			break
		}

		local := Shade(s, next.Material, next.Position, next.Normal, reflected.Negate())
		color = color.Add(state.tint.MultiplyVec(local))

		state.tint = state.tint.MultiplyVec(next.Material.Specular)
		state.hit = next
		state.direction = reflected
	}

	return core.RGBA{Color: color, Alpha: 1}, stats, nil
}

// Intersect returns the nearest sphere hit along ray with t > core.Epsilon.
// Spheres are tested in scene order and ties keep the earlier sphere.
func Intersect(s *scene.Scene, ray core.Ray) (geometry.HitInfo, bool) {
	hit, _, ok := geometry.Nearest(s.Spheres, ray, core.Epsilon)
	return hit, ok
}

// Shade returns the direct lighting at position from every unshadowed point
// light: Lambertian diffuse plus Blinn-Phong specular, with no ambient term
// and no distance falloff. normal and view are unit vectors, view pointing
// back toward the viewer.
func Shade(s *scene.Scene, mat material.Material, position, normal, view core.Vec3) core.Vec3 {
	var color core.Vec3
	shadowOrigin := position.Add(normal.Multiply(core.Epsilon))

	for _, light := range s.Lights {
		sample, ok := light.Sample(position)
		if !ok {
			continue
		}

		// Binary shadow: any occluder closer than the light removes it entirely
		if shadow, blocked := Intersect(s, core.NewRay(shadowOrigin, sample.Direction)); blocked && shadow.T < sample.Distance {
			continue
		}

		color = color.Add(mat.Evaluate(normal, sample.Direction, view, sample.Intensity))
	}

	return color
}
