package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvConfigPath, EnvEngine, EnvEngineTimeout, EnvLogLevel, EnvLogFormat, EnvExifEnabled, EnvS3Region, EnvS3Endpoint, "DEBUG"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "imagetools.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewLoader().WithDotEnv(false).Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Engine.Binary != "magick" || cfg.Engine.Timeout != 0 {
		t.Errorf("Unexpected engine config: %+v", cfg.Engine)
	}
	if cfg.Defaults.OptimizeQuality != 85 || cfg.Defaults.ConvertQuality != 90 {
		t.Errorf("Unexpected qualities: %+v", cfg.Defaults)
	}
	if !slices.Equal(cfg.Defaults.IconSizes, []int{16, 32, 64, 128, 256}) {
		t.Errorf("Unexpected icon sizes: %v", cfg.Defaults.IconSizes)
	}
	if !slices.Equal(cfg.Defaults.BatchExtensions, []string{"jpg", "jpeg", "png", "webp"}) {
		t.Errorf("Unexpected batch extensions: %v", cfg.Defaults.BatchExtensions)
	}
	if !cfg.Exif.Enabled || cfg.S3.MaxConcurrent != 5 {
		t.Errorf("Unexpected exif/s3 defaults: %+v %+v", cfg.Exif, cfg.S3)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
engine:
  binary: /usr/local/bin/magick
  timeout: 30s
log:
  level: warn
  format: json
defaults:
  optimize_quality: 70
  icon_sizes: [32, 64]
  icon_format: ico
s3:
  region: eu-west-1
  max_concurrent: 8
`)

	cfg, err := NewLoader().WithDotEnv(false).Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Engine.Binary != "/usr/local/bin/magick" || cfg.Engine.Timeout != 30*time.Second {
		t.Errorf("Unexpected engine config: %+v", cfg.Engine)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "json" {
		t.Errorf("Unexpected log config: %+v", cfg.Log)
	}
	if cfg.Defaults.OptimizeQuality != 70 {
		t.Errorf("Expected optimize quality 70, got %d", cfg.Defaults.OptimizeQuality)
	}
	if cfg.Defaults.ConvertQuality != 90 {
		t.Errorf("Expected unset convert quality to keep default, got %d", cfg.Defaults.ConvertQuality)
	}
	if !slices.Equal(cfg.Defaults.IconSizes, []int{32, 64}) || cfg.Defaults.IconFormat != "ico" {
		t.Errorf("Unexpected icon defaults: %+v", cfg.Defaults)
	}
	if cfg.S3.Region != "eu-west-1" || cfg.S3.MaxConcurrent != 8 {
		t.Errorf("Unexpected s3 config: %+v", cfg.S3)
	}

	imaging := cfg.ImagingDefaults()
	if imaging.OptimizeQuality != 70 || imaging.IconFormat != "ico" {
		t.Errorf("Unexpected imaging defaults: %+v", imaging)
	}
	if settings := cfg.S3Settings(); settings.MaxConcurrent != 8 || settings.Region != "eu-west-1" {
		t.Errorf("Unexpected S3 settings: %+v", settings)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "engine:\n  binary: from-file\n")
	t.Setenv(EnvConfigPath, path)
	t.Setenv(EnvEngine, "from-env")
	t.Setenv(EnvEngineTimeout, "5s")
	t.Setenv(EnvExifEnabled, "false")
	t.Setenv(EnvS3Endpoint, "http://localhost:9000")
	t.Setenv("DEBUG", "1")

	cfg, err := NewLoader().WithDotEnv(false).Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Engine.Binary != "from-env" {
		t.Errorf("Expected env to override file, got %q", cfg.Engine.Binary)
	}
	if cfg.Engine.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", cfg.Engine.Timeout)
	}
	if cfg.Exif.Enabled {
		t.Error("Expected exif disabled by env")
	}
	if cfg.S3.Endpoint != "http://localhost:9000" {
		t.Errorf("Unexpected endpoint: %q", cfg.S3.Endpoint)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected DEBUG to force debug level, got %q", cfg.Log.Level)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is already present.
	os.Unsetenv(EnvS3Region)
	envFile := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(envFile, []byte(EnvS3Region+"=ap-south-1\n"), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	cfg, err := NewLoader().WithDotEnv(true, envFile).Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.S3.Region != "ap-south-1" {
		t.Errorf("Expected region from .env, got %q", cfg.S3.Region)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		env      map[string]string
		contains string
	}{
		{
			name:     "malformed yaml",
			content:  "engine: [unclosed",
			contains: "failed to parse config file",
		},
		{
			name:     "invalid quality",
			content:  "defaults:\n  optimize_quality: 150\n",
			contains: "optimize_quality must be between 1 and 100",
		},
		{
			name:     "unsupported icon format",
			content:  "defaults:\n  icon_format: svg\n",
			contains: "icon_format",
		},
		{
			name:     "invalid concurrency",
			content:  "s3:\n  max_concurrent: 0\n",
			contains: "max_concurrent",
		},
		{
			name:     "invalid timeout env",
			content:  "",
			env:      map[string]string{EnvEngineTimeout: "soon"},
			contains: EnvEngineTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := NewLoader().WithDotEnv(false).Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Expected error containing %q, got %v", tt.contains, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := NewLoader().WithDotEnv(false).Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Error("Expected error for explicitly named missing file")
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Engine.Binary = ""
	cfg.Defaults.ConvertQuality = 0
	cfg.Defaults.IconSizes = []int{16, -1}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	for _, want := range []string{"engine.binary", "convert_quality", "icon_sizes"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in %v", want, err)
		}
	}
}
