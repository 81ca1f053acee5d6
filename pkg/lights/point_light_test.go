package lights

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPointLight_Sample(t *testing.T) {
	tests := []struct {
		name              string
		lightPos          core.Vec3
		point             core.Vec3
		expectedDirection core.Vec3
		expectedDistance  float64
	}{
		{"Light above point", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), 4},
		{"Light to the side", core.NewVec3(3, 0, 0), core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), 3},
		{"Diagonal light", core.NewVec3(3, 4, 0), core.NewVec3(0, 0, 0), core.NewVec3(0.6, 0.8, 0), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light := NewPointLight(tt.lightPos, core.NewVec3(1, 1, 1))
			sample, ok := light.Sample(tt.point)
			if !ok {
				t.Fatal("Expected valid light sample")
			}
			if sample.Direction.Subtract(tt.expectedDirection).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.expectedDirection, sample.Direction)
			}
			if math.Abs(sample.Distance-tt.expectedDistance) > 1e-9 {
				t.Errorf("Expected distance %f, got %f", tt.expectedDistance, sample.Distance)
			}
		})
	}
}

func TestPointLight_NoDistanceFalloff(t *testing.T) {
	intensity := core.NewVec3(0.5, 1, 2)
	light := NewPointLight(core.NewVec3(0, 100, 0), intensity)

	near, _ := light.Sample(core.NewVec3(0, 99, 0))
	far, _ := light.Sample(core.NewVec3(0, -1000, 0))
	if near.Intensity != intensity || far.Intensity != intensity {
		t.Errorf("Expected intensity %v regardless of distance, got near %v far %v", intensity, near.Intensity, far.Intensity)
	}
}

func TestPointLight_SampleAtLightPosition(t *testing.T) {
	light := NewPointLight(core.NewVec3(1, 2, 3), core.NewVec3(1, 1, 1))
	if _, ok := light.Sample(core.NewVec3(1, 2, 3)); ok {
		t.Error("Expected no sample when point coincides with light")
	}
}

func TestPointLight_IsValid(t *testing.T) {
	if !NewPointLight(core.NewVec3(0, 1, 0), core.Vec3{}).IsValid() {
		t.Error("Zero intensity light should be valid")
	}
	if NewPointLight(core.NewVec3(0, 1, 0), core.NewVec3(-1, 0, 0)).IsValid() {
		t.Error("Negative intensity light should be invalid")
	}
	if NewPointLight(core.NewVec3(math.NaN(), 0, 0), core.NewVec3(1, 1, 1)).IsValid() {
		t.Error("NaN position light should be invalid")
	}
}
