package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/acm19/imagetools/internal/logger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigPath    = "IMAGETOOLS_CONFIG"
	EnvEngine        = "IMAGETOOLS_ENGINE"
	EnvEngineTimeout = "IMAGETOOLS_ENGINE_TIMEOUT"
	EnvLogLevel      = "IMAGETOOLS_LOG_LEVEL"
	EnvLogFormat     = "IMAGETOOLS_LOG_FORMAT"
	EnvExifEnabled   = "IMAGETOOLS_EXIF"
	EnvS3Region      = "IMAGETOOLS_S3_REGION"
	EnvS3Endpoint    = "IMAGETOOLS_S3_ENDPOINT"
)

// Loader reads configuration from an optional YAML file and the environment.
type Loader struct {
	useDotEnv bool
	dotEnv    []string
}

// NewLoader creates a loader that reads .env from the working directory.
func NewLoader() *Loader {
	return &Loader{useDotEnv: true}
}

// WithDotEnv toggles loading variables from .env files before reading config.
// Without files the default .env is used.
func (l *Loader) WithDotEnv(enabled bool, files ...string) *Loader {
	l.useDotEnv = enabled
	l.dotEnv = files
	return l
}

// Load builds the configuration. path falls back to IMAGETOOLS_CONFIG; when
// both are empty only defaults and the environment apply. An explicitly
// named file that does not exist is an error.
func (l *Loader) Load(path string) (*Config, error) {
	if l.useDotEnv {
		if err := godotenv.Load(l.dotEnv...); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		logger.Debug("Loaded config file", "path", path)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Load is NewLoader().Load(path).
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvEngine); v != "" {
		cfg.Engine.Binary = v
	}
	if v := os.Getenv(EnvEngineTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvEngineTimeout, err)
		}
		cfg.Engine.Timeout = d
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if os.Getenv("DEBUG") != "" {
		cfg.Log.Level = "debug"
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv(EnvExifEnabled); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvExifEnabled, err)
		}
		cfg.Exif.Enabled = enabled
	}
	if v := os.Getenv(EnvS3Region); v != "" {
		cfg.S3.Region = v
	}
	if v := os.Getenv(EnvS3Endpoint); v != "" {
		cfg.S3.Endpoint = v
	}
	return nil
}
