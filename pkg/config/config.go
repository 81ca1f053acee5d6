// Package config loads renderer settings from a .env file and the process
// environment. Command-line flags are applied on top by the callers.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-whitted-raytracer/pkg/output"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds settings shared by the CLI and the web server
type Config struct {
	OutputDir string // Root directory for rendered images
	Workers   int    // Render workers, 0 = CPU count
	TileSize  int    // Tile edge in pixels
	Port      int    // Web server port
	S3        output.S3Config
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		OutputDir: "output",
		Workers:   0,
		TileSize:  64,
		Port:      8080,
		S3: output.S3Config{
			Region: "us-east-1",
		},
	}
}

// Load reads the given .env files (".env" when none are named) into the
// environment, then builds and validates a Config. Missing .env files are
// not an error. Variables already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables with defaults
func FromEnv() (*Config, error) {
	cfg := Default()

	cfg.OutputDir = getEnv("RAYTRACER_OUTPUT_DIR", cfg.OutputDir)

	var err error
	if cfg.Workers, err = getEnvInt("RAYTRACER_WORKERS", cfg.Workers); err != nil {
		return nil, err
	}
	if cfg.TileSize, err = getEnvInt("RAYTRACER_TILE_SIZE", cfg.TileSize); err != nil {
		return nil, err
	}
	if cfg.Port, err = getEnvInt("RAYTRACER_PORT", cfg.Port); err != nil {
		return nil, err
	}

	cfg.S3 = output.S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    getEnv("S3_REGION", cfg.S3.Region),
		Bucket:    os.Getenv("S3_BUCKET"),
		Prefix:    os.Getenv("S3_PREFIX"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks numeric ranges
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output directory is empty", ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.TileSize < 8 {
		return fmt.Errorf("%w: tile size must be at least 8, got %d", ErrInvalidConfig, c.TileSize)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port out of range: %d", ErrInvalidConfig, c.Port)
	}
	return nil
}

// UploadEnabled reports whether enough S3 settings are present to upload
func (c *Config) UploadEnabled() bool {
	return c.S3.Bucket != "" && c.S3.AccessKey != "" && c.S3.SecretKey != ""
}

// getEnv returns the variable's value, or fallback when it is unset
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer: %w", ErrInvalidConfig, key, value, err)
	}
	return n, nil
}
