package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// renderOptions holds the command-line settings for one render
type renderOptions struct {
	Scene     string
	Width     int
	Height    int
	Samples   int
	Passes    int
	Bounces   int // -1 keeps the scene's bounce limit
	Alpha     bool
	Thumbnail int
	Upload    bool
	Workers   int
}

func main() {
	opts := renderOptions{}
	flag.StringVar(&opts.Scene, "scene", "default", "Built-in scene, scene file name in scenes/, or path to a .json scene")
	flag.IntVar(&opts.Width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&opts.Height, "height", 0, "Image height in pixels (0 = scene default)")
	flag.IntVar(&opts.Samples, "samples", 0, "Maximum samples per pixel (0 = scene default)")
	flag.IntVar(&opts.Passes, "passes", 1, "Number of progressive passes")
	flag.IntVar(&opts.Bounces, "bounces", -1, "Reflection bounce limit (-1 = scene default)")
	flag.BoolVar(&opts.Alpha, "alpha", false, "Write coverage into the PNG alpha channel")
	flag.IntVar(&opts.Thumbnail, "thumbnail", 0, "Also write a thumbnail with this maximum edge (0 = off)")
	flag.BoolVar(&opts.Upload, "upload", false, "Upload the render to the configured S3 bucket")
	flag.IntVar(&opts.Workers, "workers", -1, "Number of parallel workers (-1 = config, 0 = CPU count)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, opts); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.BuiltInScenes() {
		fmt.Printf("  %-14s - %s\n", info.ID, info.Description)
	}
	if files, err := scene.ListSceneFiles(); err == nil {
		for _, info := range files {
			fmt.Printf("  %-14s - %s\n", info.Name, info.Description)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
	fmt.Println("S3 settings are read from .env or S3_* environment variables.")
}

// run renders one scene and writes its outputs
func run(ctx context.Context, cfg *config.Config, opts renderOptions) error {
	fmt.Println("Starting Whitted Raytracer...")

	selectedScene, err := createScene(opts)
	if err != nil {
		return err
	}
	width, height := selectedScene.Camera.Size()
	fmt.Printf("Scene %q: %d spheres, %d lights, %d bounces, %dx%d\n",
		opts.Scene, selectedScene.GetPrimitiveCount(), len(selectedScene.Lights), selectedScene.BounceLimit, width, height)

	progressiveConfig := renderer.ProgressiveConfig{
		TileSize:           cfg.TileSize,
		InitialSamples:     1,
		MaxSamplesPerPixel: maxSamples(selectedScene, opts.Samples),
		MaxPasses:          opts.Passes,
		NumWorkers:         cfg.Workers,
		Image:              renderer.ImageOptions{PreserveAlpha: opts.Alpha},
	}
	if opts.Workers >= 0 {
		progressiveConfig.NumWorkers = opts.Workers
	}

	raytracer, err := renderer.NewProgressiveRaytracer(selectedScene, progressiveConfig, integrator.NewWhittedIntegrator(), renderer.NewDefaultLogger())
	if err != nil {
		return fmt.Errorf("failed to create raytracer: %w", err)
	}

	startTime := time.Now()
	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	fmt.Printf("Render completed in %v\n", time.Since(startTime))
	fmt.Printf("Samples per pixel: %.1f (range %d - %d), coverage %.1f%%\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed, stats.Coverage*100)

	outputDir := createOutputDir(cfg.OutputDir, opts.Scene)
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405")))
	if err := output.SavePNG(filename, img); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)

	if opts.Thumbnail > 0 {
		thumbName := output.ThumbnailPath(filename)
		if err := output.SavePNG(thumbName, output.Thumbnail(img, opts.Thumbnail)); err != nil {
			return err
		}
		fmt.Printf("Thumbnail saved as %s\n", thumbName)
	}

	if opts.Upload {
		if err := upload(ctx, cfg, filename, img); err != nil {
			return err
		}
	}

	return nil
}

// createScene loads the requested scene and applies size and bounce overrides
func createScene(opts renderOptions) (*scene.Scene, error) {
	if opts.Scene == "" {
		return nil, fmt.Errorf("no scene specified")
	}

	var overrides []geometry.CameraConfig
	if opts.Width > 0 || opts.Height > 0 {
		override := geometry.CameraConfig{Width: opts.Width}
		if opts.Width > 0 && opts.Height > 0 {
			override.AspectRatio = float64(opts.Width) / float64(opts.Height)
		}
		overrides = append(overrides, override)
	}

	s, err := scene.Load(opts.Scene, overrides...)
	if err != nil {
		return nil, err
	}

	if opts.Height > 0 && opts.Width <= 0 {
		// Keep the scene's aspect ratio and derive the width from the height
		cameraConfig := s.CameraConfig
		cameraConfig.Width = max(1, int(float64(opts.Height)*cameraConfig.AspectRatio+0.5))
		s.Camera = geometry.NewCamera(cameraConfig)
		s.CameraConfig = s.Camera.Config()
	}
	if opts.Bounces >= 0 {
		s.BounceLimit = opts.Bounces
	}
	s.SamplingConfig.Width, s.SamplingConfig.Height = s.Camera.Size()

	return s, nil
}

// maxSamples picks the sample budget: the flag, then the scene, then 16
func maxSamples(s *scene.Scene, flagSamples int) int {
	if flagSamples > 0 {
		return flagSamples
	}
	if s.SamplingConfig.SamplesPerPixel > 0 {
		return s.SamplingConfig.SamplesPerPixel
	}
	return 16
}

// createOutputDir returns output/<scene name>, using the file's base name for scene paths
func createOutputDir(root, sceneName string) string {
	name := strings.TrimPrefix(sceneName, "json:")
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if name == "" || name == "." {
		name = "scene"
	}
	return filepath.Join(root, name)
}

// upload sends the render to S3 under <scene dir>/<file name>
func upload(ctx context.Context, cfg *config.Config, filename string, img image.Image) error {
	if !cfg.UploadEnabled() {
		return fmt.Errorf("upload requested but S3_BUCKET, S3_ACCESS_KEY and S3_SECRET_KEY are not all set")
	}

	uploader, err := output.NewS3Uploader(cfg.S3)
	if err != nil {
		return err
	}
	data, err := output.EncodePNG(img)
	if err != nil {
		return err
	}

	name := path.Join(filepath.Base(filepath.Dir(filename)), filepath.Base(filename))
	key, err := uploader.Upload(ctx, name, data)
	if err != nil {
		return err
	}
	fmt.Printf("Render uploaded to s3://%s/%s\n", cfg.S3.Bucket, key)
	return nil
}
