package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// HitInfo contains information about the nearest ray-sphere intersection
type HitInfo struct {
	T        float64           // Parameter t along the ray
	Position core.Vec3         // Point of intersection
	Normal   core.Vec3         // Outward unit normal (away from the sphere center)
	Material material.Material // Copy of the hit sphere's material
}

// Nearest returns the closest accepted intersection of the ray with spheres,
// scanning in order. Equal distances keep the earlier sphere.
func Nearest(spheres []Sphere, ray core.Ray, tMin float64) (HitInfo, int, bool) {
	var closest HitInfo
	index := -1

	for i, sphere := range spheres {
		t, ok := sphere.Intersect(ray, tMin)
		if !ok {
			continue
		}
		if index < 0 || t < closest.T {
			index = i
			closest.T = t
		}
	}

	if index < 0 {
		return HitInfo{}, -1, false
	}

	winner := spheres[index]
	closest.Position = ray.At(closest.T)
	closest.Normal = winner.NormalAt(closest.Position)
	closest.Material = winner.Material
	return closest, index, true
}
