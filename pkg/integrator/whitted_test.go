package integrator

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/environment"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

// createRedSphereScene creates one red unit sphere at the origin lit from (0,0,5)
func createRedSphereScene() *scene.Scene {
	s := &scene.Scene{
		BounceLimit: 4,
		Environment: environment.NewGradient(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1, 1, 1)),
	}
	s.AddSphere(core.NewVec3(0, 0, 0), 1, material.NewMaterial(core.NewVec3(1, 0, 0), core.Vec3{}, 0))
	s.AddLight(core.NewVec3(0, 0, 5), core.NewVec3(1, 1, 1))
	return s
}

// createFacingMirrorsScene places two huge spheres so that a ray along +X
// bounces between x=1 and x=-1 forever.
func createFacingMirrorsScene(mat material.Material, bounceLimit int) *scene.Scene {
	s := &scene.Scene{BounceLimit: bounceLimit}
	s.AddSphere(core.NewVec3(1001, 0, 0), 1000, mat)
	s.AddSphere(core.NewVec3(-1001, 0, 0), 1000, mat)
	return s
}

func TestTrace_RedSphereHeadOn(t *testing.T) {
	s := createRedSphereScene()
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	result, stats, err := NewWhittedIntegrator().TraceWithStats(s, ray)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !vecNear(result.Color, core.NewVec3(1, 0, 0), 1e-9) {
		t.Errorf("Expected (1,0,0), got %v", result.Color)
	}
	if result.Alpha != 1 {
		t.Errorf("Expected alpha 1, got %f", result.Alpha)
	}
	if !stats.PrimaryHit || stats.Bounces != 0 {
		t.Errorf("Expected primary hit with no bounces for zero specular, got %+v", stats)
	}
}

func TestTrace_MissReturnsEnvironment(t *testing.T) {
	gradient := environment.NewGradient(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1, 1, 1))

	tests := []struct {
		name  string
		scene *scene.Scene
		ray   core.Ray
	}{
		{
			name:  "parallel offset ray",
			scene: createRedSphereScene(),
			ray:   core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 1, 0)),
		},
		{
			name:  "empty scene",
			scene: &scene.Scene{BounceLimit: 4, Environment: gradient},
			ray:   core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0.3, -0.2, 1)),
		},
		{
			name:  "sphere behind ray",
			scene: createRedSphereScene(),
			ray:   core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewWhittedIntegrator().Trace(tt.scene, tt.ray)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			expected := gradient.Lookup(tt.ray.Direction)
			if !vecNear(result.Color, expected, 1e-12) {
				t.Errorf("Expected environment %v, got %v", expected, result.Color)
			}
			if result.Alpha != 0 {
				t.Errorf("Expected alpha 0, got %f", result.Alpha)
			}
		})
	}
}

func TestTrace_NilEnvironmentIsBlack(t *testing.T) {
	s := &scene.Scene{BounceLimit: 2}
	result, err := NewWhittedIntegrator().Trace(s, core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Color.IsZero() || result.Alpha != 0 {
		t.Errorf("Expected transparent black, got %+v", result)
	}
}

func TestTrace_InvalidRay(t *testing.T) {
	s := createRedSphereScene()
	tests := []struct {
		name      string
		direction core.Vec3
	}{
		{"zero direction", core.Vec3{}},
		{"NaN direction", core.NewVec3(math.NaN(), 0, -1)},
		{"infinite direction", core.NewVec3(0, math.Inf(-1), 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWhittedIntegrator().Trace(s, core.NewRay(core.NewVec3(0, 0, 5), tt.direction))
			if !errors.Is(err, core.ErrZeroDirection) {
				t.Errorf("Expected ErrZeroDirection, got %v", err)
			}
		})
	}

	if _, err := NewWhittedIntegrator().Trace(nil, core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))); !errors.Is(err, core.ErrInvalidScene) {
		t.Errorf("Expected ErrInvalidScene for nil scene, got %v", err)
	}
}

func TestTrace_Idempotent(t *testing.T) {
	s := scene.NewDefaultScene()
	w := NewWhittedIntegrator()
	width, height := s.Camera.Size()

	for _, px := range [][2]int{{0, 0}, {width / 2, height / 2}, {width / 3, 2 * height / 3}, {width - 1, height - 1}} {
		ray := s.Camera.GetRay(px[0], px[1], 0.5, 0.5)
		first, err := w.Trace(s, ray)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		second, _ := w.Trace(s, ray)
		if first != second {
			t.Errorf("Expected identical results for pixel %v, got %+v and %+v", px, first, second)
		}
	}
}

func TestTrace_BounceLimitZeroIsDirectShading(t *testing.T) {
	mat := material.NewMaterial(core.NewVec3(0.4, 0.4, 0.4), core.NewVec3(0.6, 0.6, 0.6), 20)
	s := &scene.Scene{
		BounceLimit: 0,
		Environment: environment.NewUniform(core.NewVec3(1, 1, 1)),
	}
	s.AddSphere(core.Vec3{}, 1, mat)
	s.AddLight(core.NewVec3(2, 3, 4), core.NewVec3(1, 1, 1))

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0.1, 0.05, -1))
	result, stats, err := NewWhittedIntegrator().TraceWithStats(s, ray)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	hit, ok := Intersect(s, ray)
	if !ok {
		t.Fatal("Expected primary hit")
	}
	direct := Shade(s, hit.Material, hit.Position, hit.Normal, ray.Direction.Normalize().Negate())
	if result.Color != direct {
		t.Errorf("Expected direct shading %v, got %v", direct, result.Color)
	}
	if stats.Bounces != 0 {
		t.Errorf("Expected no bounces, got %d", stats.Bounces)
	}
}

func TestTrace_ReflectionEscapesToEnvironment(t *testing.T) {
	s := &scene.Scene{
		BounceLimit: 4,
		Environment: environment.NewUniform(core.NewVec3(1, 1, 1)),
	}
	s.AddSphere(core.Vec3{}, 1, material.NewMirror(core.NewVec3(0.5, 0.25, 0), 32))

	result, stats, err := NewWhittedIntegrator().TraceWithStats(s, core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !vecNear(result.Color, core.NewVec3(0.5, 0.25, 0), 1e-12) {
		t.Errorf("Expected tinted environment (0.5,0.25,0), got %v", result.Color)
	}
	if result.Alpha != 1 {
		t.Errorf("Expected alpha 1, got %f", result.Alpha)
	}
	if stats.Bounces != 1 || !stats.Escaped {
		t.Errorf("Expected one escaping bounce, got %+v", stats)
	}
}

func TestTrace_BounceCeiling(t *testing.T) {
	mirror := material.NewMirror(core.NewVec3(1, 1, 1), 1000)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0))

	tests := []struct {
		name        string
		bounceLimit int
		expected    int
	}{
		{"below ceiling", 3, 3},
		{"at ceiling", MaxBounces, MaxBounces},
		{"above ceiling", 100, MaxBounces},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := createFacingMirrorsScene(mirror, tt.bounceLimit)
			result, stats, err := NewWhittedIntegrator().TraceWithStats(s, ray)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if stats.Bounces != tt.expected {
				t.Errorf("Expected %d bounces, got %d", tt.expected, stats.Bounces)
			}
			if stats.Escaped {
				t.Error("Expected ray to stay trapped between mirrors")
			}
			if !result.Color.IsZero() {
				t.Errorf("Expected black without lights or environment, got %v", result.Color)
			}
		})
	}
}

func TestTrace_ZeroSpecularStopsReflection(t *testing.T) {
	diffuse := material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5))
	s := createFacingMirrorsScene(diffuse, 10)

	_, stats, err := NewWhittedIntegrator().TraceWithStats(s, core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.Bounces != 0 {
		t.Errorf("Expected no bounces with zero specular, got %d", stats.Bounces)
	}
}

func TestTrace_TintNonIncreasing(t *testing.T) {
	mat := material.NewMaterial(core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0.5, 0.4, 0.3), 1)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0))
	w := NewWhittedIntegrator()

	var previous core.Vec3
	previousIncrement := core.NewVec3(math.Inf(1), math.Inf(1), math.Inf(1))
	for limit := 0; limit <= 6; limit++ {
		s := createFacingMirrorsScene(mat, limit)
		s.AddLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1))

		result, err := w.Trace(s, ray)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if limit > 0 {
			increment := result.Color.Subtract(previous)
			if increment.X > previousIncrement.X+1e-12 ||
				increment.Y > previousIncrement.Y+1e-12 ||
				increment.Z > previousIncrement.Z+1e-12 {
				t.Errorf("Bounce %d added %v, more than previous bounce %v", limit, increment, previousIncrement)
			}
			if increment.X < 0 || increment.Y < 0 || increment.Z < 0 {
				t.Errorf("Bounce %d added negative light %v", limit, increment)
			}
			previousIncrement = increment
		}
		previous = result.Color
	}
}

func TestTrace_ReflectionChainExactValue(t *testing.T) {
	// A ray along -Z bounces between sphere A (front face z=1) and sphere B
	// (front face z=9). The light sits on the axis between them, so every
	// shaded point sees n.L = n.H = 1 and Shade = (k_d + k_s) * I.
	kdA, ksA := core.NewVec3(0.2, 0.3, 0.4), core.NewVec3(0.5, 0.6, 0.7)
	kdB, ksB := core.NewVec3(0.1, 0.2, 0.3), core.NewVec3(0.4, 0.3, 0.2)
	shadeA := kdA.Add(ksA)
	shadeB := kdB.Add(ksB)

	tests := []struct {
		name        string
		bounceLimit int
		expected    core.Vec3
	}{
		{"direct only", 0, shadeA},
		{"one bounce", 1, shadeA.Add(ksA.MultiplyVec(shadeB))},
		{"two bounces", 2, shadeA.Add(ksA.MultiplyVec(shadeB)).Add(ksA.MultiplyVec(ksB).MultiplyVec(shadeA))},
		// Written out: (0.7,0.9,1.1) + (0.25,0.3,0.35) + (0.14,0.162,0.154)
		{"two bounces literal", 2, core.NewVec3(1.09, 1.362, 1.604)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &scene.Scene{BounceLimit: tt.bounceLimit}
			s.AddSphere(core.NewVec3(0, 0, 0), 1, material.NewMaterial(kdA, ksA, 10))
			s.AddSphere(core.NewVec3(0, 0, 10), 1, material.NewMaterial(kdB, ksB, 10))
			s.AddLight(core.NewVec3(0, 0, 5), core.NewVec3(1, 1, 1))

			ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
			result, stats, err := NewWhittedIntegrator().TraceWithStats(s, ray)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !vecNear(result.Color, tt.expected, 1e-6) {
				t.Errorf("Expected %v, got %v", tt.expected, result.Color)
			}
			if stats.Bounces != tt.bounceLimit {
				t.Errorf("Expected %d bounces, got %d", tt.bounceLimit, stats.Bounces)
			}
			if stats.Escaped {
				t.Error("Expected the chain to stay between the spheres")
			}
		})
	}
}

func TestIntersect_OriginAtCenter(t *testing.T) {
	s := &scene.Scene{}
	s.AddSphere(core.NewVec3(1, 2, 3), 2.5, material.NewDiffuse(core.NewVec3(1, 1, 1)))

	dir := core.NewVec3(1, -1, 2).Normalize()
	hit, ok := Intersect(s, core.NewRay(core.NewVec3(1, 2, 3), dir))
	if !ok {
		t.Fatal("Expected hit from inside the sphere")
	}
	if math.Abs(hit.T-2.5) > 1e-9 {
		t.Errorf("Expected t=2.5, got %f", hit.T)
	}
	if math.Abs(hit.Normal.Dot(dir)-1) > 1e-9 {
		t.Errorf("Expected normal parallel to %v, got %v", dir, hit.Normal)
	}
}

func TestIntersect_TieKeepsFirstSphere(t *testing.T) {
	first := material.NewDiffuse(core.NewVec3(1, 0, 0))
	second := material.NewDiffuse(core.NewVec3(0, 1, 0))
	s := &scene.Scene{}
	s.AddSphere(core.NewVec3(0, 0, -5), 1, first)
	s.AddSphere(core.NewVec3(0, 0, -5), 1, second)

	hit, ok := Intersect(s, core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)))
	if !ok || hit.Material != first {
		t.Errorf("Expected first sphere's material on tie, got %v", hit.Material)
	}
}

func TestShade_Occlusion(t *testing.T) {
	white := material.NewDiffuse(core.NewVec3(1, 1, 1))
	position := core.NewVec3(0, 0, 1)
	normal := core.NewVec3(0, 0, 1)

	tests := []struct {
		name     string
		occluder *core.Vec3
		expected core.Vec3
	}{
		{"unoccluded", nil, core.NewVec3(1, 1, 1)},
		{"occluder between surface and light", &core.Vec3{Z: 5}, core.Vec3{}},
		{"occluder beyond light", &core.Vec3{Z: 20}, core.NewVec3(1, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &scene.Scene{}
			s.AddSphere(core.Vec3{}, 1, white)
			if tt.occluder != nil {
				s.AddSphere(*tt.occluder, 0.5, white)
			}
			s.AddLight(core.NewVec3(0, 0, 10), core.NewVec3(1, 1, 1))

			got := Shade(s, white, position, normal, normal)
			if !vecNear(got, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestShade_PerLightShadowing(t *testing.T) {
	white := material.NewDiffuse(core.NewVec3(1, 1, 1))
	s := &scene.Scene{}
	s.AddSphere(core.Vec3{}, 1, white)
	s.AddSphere(core.NewVec3(0, 0, 5), 0.5, white) // blocks only the first light
	s.AddLight(core.NewVec3(0, 0, 10), core.NewVec3(1, 0, 0))
	s.AddLight(core.NewVec3(0, 10, 10), core.NewVec3(0, 0, 1))

	got := Shade(s, white, core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1))
	if got.X != 0 {
		t.Errorf("Expected blocked red light to contribute nothing, got %v", got)
	}
	if got.Z <= 0 {
		t.Errorf("Expected unblocked blue light to contribute, got %v", got)
	}
}

func TestShade_NoLightsIsBlack(t *testing.T) {
	s := &scene.Scene{}
	mat := material.NewMaterial(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), 0)
	got := Shade(s, mat, core.Vec3{}, core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))
	if !got.IsZero() {
		t.Errorf("Expected black with no lights, got %v", got)
	}
}

func TestShade_NoFalloff(t *testing.T) {
	white := material.NewDiffuse(core.NewVec3(1, 1, 1))
	normal := core.NewVec3(0, 1, 0)

	for _, height := range []float64{1, 10, 1000} {
		s := &scene.Scene{}
		s.AddLight(core.NewVec3(0, height, 0), core.NewVec3(0.5, 0.5, 0.5))
		got := Shade(s, white, core.Vec3{}, normal, normal)
		if !vecNear(got, core.NewVec3(0.5, 0.5, 0.5), 1e-12) {
			t.Errorf("Expected (0.5,0.5,0.5) at distance %f, got %v", height, got)
		}
	}
}

func TestShade_LightAtShadingPointIsSkipped(t *testing.T) {
	s := &scene.Scene{}
	s.AddLight(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1))
	mat := material.NewMaterial(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), 10)

	got := Shade(s, mat, core.NewVec3(1, 1, 1), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))
	if !got.IsFinite() || !got.IsZero() {
		t.Errorf("Expected black for coincident light, got %v", got)
	}
}

func TestShade_NeverNegative(t *testing.T) {
	s := scene.NewDefaultScene()
	mat := material.NewMaterial(core.NewVec3(0.3, 0.6, 0.9), core.NewVec3(0.5, 0.5, 0.5), 3)
	normals := []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, -1, 0),
		core.NewVec3(1, 1, 1).Normalize(),
		core.NewVec3(-1, 0.2, -0.4).Normalize(),
	}
	for _, n := range normals {
		for _, v := range normals {
			c := Shade(s, mat, core.NewVec3(0, 2, 0), n, v)
			if c.X < 0 || c.Y < 0 || c.Z < 0 {
				t.Errorf("Negative shading %v for normal %v view %v", c, n, v)
			}
		}
	}
}
