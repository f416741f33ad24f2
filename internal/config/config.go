package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/acm19/imagetools/internal/imaging"
)

// Config is the full runtime configuration.
type Config struct {
	Engine   EngineConfig   `yaml:"engine"`
	Log      LogConfig      `yaml:"log"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Exif     ExifConfig     `yaml:"exif"`
	S3       S3Config       `yaml:"s3"`
}

// EngineConfig selects the ImageMagick executable.
type EngineConfig struct {
	Binary string `yaml:"binary"`
	// Timeout bounds each engine call; zero disables it.
	Timeout time.Duration `yaml:"timeout"`
}

// LogConfig controls the package logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultsConfig holds request defaults.
type DefaultsConfig struct {
	OptimizeQuality int      `yaml:"optimize_quality"`
	ConvertQuality  int      `yaml:"convert_quality"`
	IconSizes       []int    `yaml:"icon_sizes"`
	IconFormat      string   `yaml:"icon_format"`
	BatchExtensions []string `yaml:"batch_extensions"`
}

// ExifConfig controls EXIF enrichment of image info.
type ExifConfig struct {
	Enabled bool   `yaml:"enabled"`
	Binary  string `yaml:"binary"`
}

// S3Config configures upload_images.
type S3Config struct {
	Region        string `yaml:"region"`
	Endpoint      string `yaml:"endpoint"`
	UsePathStyle  bool   `yaml:"use_path_style"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

// Default returns the built-in configuration.
func Default() *Config {
	d := imaging.DefaultDefaults()
	return &Config{
		Engine: EngineConfig{Binary: imaging.DefaultBinary},
		Log:    LogConfig{Level: "info", Format: "text"},
		Defaults: DefaultsConfig{
			OptimizeQuality: d.OptimizeQuality,
			ConvertQuality:  d.ConvertQuality,
			IconSizes:       d.IconSizes,
			IconFormat:      d.IconFormat,
			BatchExtensions: d.BatchExtensions,
		},
		Exif: ExifConfig{Enabled: true},
		S3:   S3Config{MaxConcurrent: 5},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Engine.Binary == "" {
		errs = append(errs, errors.New("engine.binary must not be empty"))
	}
	if c.Engine.Timeout < 0 {
		errs = append(errs, errors.New("engine.timeout must not be negative"))
	}
	if q := c.Defaults.OptimizeQuality; q < 1 || q > 100 {
		errs = append(errs, fmt.Errorf("defaults.optimize_quality must be between 1 and 100, got %d", q))
	}
	if q := c.Defaults.ConvertQuality; q < 1 || q > 100 {
		errs = append(errs, fmt.Errorf("defaults.convert_quality must be between 1 and 100, got %d", q))
	}
	if !imaging.IsSupportedFormat(c.Defaults.IconFormat) {
		errs = append(errs, fmt.Errorf("defaults.icon_format %q is not supported", c.Defaults.IconFormat))
	}
	for _, size := range c.Defaults.IconSizes {
		if size <= 0 {
			errs = append(errs, fmt.Errorf("defaults.icon_sizes must be positive, got %d", size))
		}
	}
	if c.S3.MaxConcurrent < 1 {
		errs = append(errs, fmt.Errorf("s3.max_concurrent must be at least 1, got %d", c.S3.MaxConcurrent))
	}
	return errors.Join(errs...)
}

// ImagingDefaults converts the defaults section for the processor.
func (c *Config) ImagingDefaults() imaging.Defaults {
	return imaging.Defaults{
		OptimizeQuality: c.Defaults.OptimizeQuality,
		ConvertQuality:  c.Defaults.ConvertQuality,
		IconSizes:       c.Defaults.IconSizes,
		IconFormat:      c.Defaults.IconFormat,
		BatchExtensions: c.Defaults.BatchExtensions,
	}
}

// S3Settings converts the s3 section for the publisher.
func (c *Config) S3Settings() imaging.S3Settings {
	return imaging.S3Settings{
		Region:        c.S3.Region,
		Endpoint:      c.S3.Endpoint,
		UsePathStyle:  c.S3.UsePathStyle,
		MaxConcurrent: c.S3.MaxConcurrent,
	}
}
