package renderer

import (
	"fmt"
	"image"
	"math"
	"math/rand"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(s *scene.Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		integrator: integratorInst,
	}
}

// RenderTileBounds renders pixels within the specified bounds using the integrator.
// Each sample jitters its primary ray inside the pixel. The first trace error
// aborts the tile.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, random *rand.Rand, targetSamples int) (RenderStats, error) {
	camera := tr.scene.Camera
	if camera == nil {
		return RenderStats{}, fmt.Errorf("scene has no camera")
	}
	samplingConfig := tr.scene.SamplingConfig

	stats := tr.initRenderStatsForBounds(bounds, targetSamples)
	coverage := 0.0

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[j][i]
			alphaBefore := ps.AlphaAccum
			samplesUsed, err := tr.adaptiveSamplePixel(camera, i, j, ps, random, targetSamples, samplingConfig)
			if err != nil {
				return stats, fmt.Errorf("pixel (%d,%d): %w", i, j, err)
			}
			tr.updateStats(&stats, samplesUsed)
			coverage += ps.AlphaAccum - alphaBefore
		}
	}

	tr.finalizeStats(&stats, coverage)
	return stats, nil
}

// adaptiveSamplePixel samples one pixel until it converges or reaches maxSamples
func (tr *TileRenderer) adaptiveSamplePixel(camera *geometry.Camera, i, j int, ps *PixelStats, random *rand.Rand, maxSamples int, samplingConfig scene.SamplingConfig) (int, error) {
	initialSampleCount := ps.SampleCount

	for ps.SampleCount < maxSamples && !tr.shouldStopSampling(ps, maxSamples, samplingConfig) {
		ray := camera.GetRay(i, j, random.Float64(), random.Float64())
		sample, err := tr.integrator.Trace(tr.scene, ray)
		if err != nil {
			return ps.SampleCount - initialSampleCount, err
		}
		ps.AddSample(sample)
	}

	return ps.SampleCount - initialSampleCount, nil
}

// shouldStopSampling determines if adaptive sampling should stop based on perceptual relative error
func (tr *TileRenderer) shouldStopSampling(ps *PixelStats, maxSamples int, samplingConfig scene.SamplingConfig) bool {
	// A zero threshold disables adaptive stopping
	if samplingConfig.AdaptiveThreshold <= 0 {
		return false
	}

	minSamples := max(1, int(float64(maxSamples)*samplingConfig.AdaptiveMinSamples))
	if ps.SampleCount < minSamples {
		return false
	}

	mean := ps.LuminanceAccum / float64(ps.SampleCount)
	meanSq := ps.LuminanceSqAccum / float64(ps.SampleCount)
	variance := math.Max(0, meanSq-mean*mean)

	if mean <= 1e-8 {
		return variance < 1e-6
	}

	relativeError := math.Sqrt(variance) / mean
	return relativeError < samplingConfig.AdaptiveThreshold
}

// initRenderStatsForBounds initializes the render statistics tracking for specific bounds
func (tr *TileRenderer) initRenderStatsForBounds(bounds image.Rectangle, maxSamples int) RenderStats {
	return RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  maxSamples,
		MinSamples:  maxSamples, // Start with max, will be reduced
	}
}

// updateStats updates the render statistics with data from a single pixel
func (tr *TileRenderer) updateStats(stats *RenderStats, samplesUsed int) {
	stats.TotalSamples += samplesUsed
	stats.MinSamples = min(stats.MinSamples, samplesUsed)
	stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samplesUsed)
}

// finalizeStats calculates final statistics after all pixels are rendered.
// coverage is the summed alpha of the samples taken in this call.
func (tr *TileRenderer) finalizeStats(stats *RenderStats, coverage float64) {
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	if stats.TotalSamples > 0 {
		stats.Coverage = coverage / float64(stats.TotalSamples)
	}
}
