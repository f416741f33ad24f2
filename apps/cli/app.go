package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/acm19/imagetools/internal/config"
	"github.com/acm19/imagetools/internal/imaging"
	"github.com/acm19/imagetools/internal/logger"
)

// app holds the components shared by every command.
type app struct {
	cfg       *config.Config
	processor imaging.ImageProcessor
	publisher imaging.Publisher
	exif      imaging.MetadataReader
}

// overrides are command-line values that take precedence over the config.
type overrides struct {
	engine        string
	logLevel      string
	maxConcurrent int
}

func mustApp() *app {
	rt, err := newApp(configPath, overrides{
		engine:        engineBinary,
		logLevel:      logLevel,
		maxConcurrent: maxConcurrent,
	})
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	return rt
}

func newApp(path string, o overrides) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(cfg, o); err != nil {
		return nil, err
	}
	logger.Configure(cfg.Log.Level, cfg.Log.Format)

	engine := imaging.NewMagickEngine(cfg.Engine.Binary, cfg.Engine.Timeout)
	opts := []imaging.ProcessorOption{imaging.WithDefaults(cfg.ImagingDefaults())}

	rt := &app{cfg: cfg}
	if cfg.Exif.Enabled {
		rt.exif = imaging.NewExifReader(cfg.Exif.Binary)
		opts = append(opts, imaging.WithMetadataReader(rt.exif))
	}
	rt.processor = imaging.NewImageProcessor(engine, opts...)
	rt.publisher = newLazyPublisher(cfg.S3Settings())
	return rt, nil
}

func applyOverrides(cfg *config.Config, o overrides) error {
	if o.engine != "" {
		cfg.Engine.Binary = o.engine
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.maxConcurrent != 0 {
		cfg.S3.MaxConcurrent = o.maxConcurrent
	}
	return cfg.Validate()
}

// Close releases the exiftool process if one was started.
func (rt *app) Close() {
	if rt.exif == nil {
		return
	}
	if err := rt.exif.Close(); err != nil {
		logger.Warn("Failed to close exiftool", "error", err)
	}
}

// finish prints the JSON result, or logs the error and exits.
func (rt *app) finish(operation string, result any, err error) {
	if err != nil {
		logger.Error(operation+" failed", "error", err, "kind", imaging.KindOf(err))
		rt.Close()
		os.Exit(1)
	}
	if err := printJSON(os.Stdout, result); err != nil {
		logger.Error("Failed to write result", "error", err)
		rt.Close()
		os.Exit(1)
	}
}

// lazyPublisher defers loading AWS credentials until the first upload so the
// server starts without them. Only a successful client is kept; a failed
// load is retried by the next upload.
type lazyPublisher struct {
	settings  imaging.S3Settings
	connect   func(context.Context, imaging.S3Settings) (imaging.Publisher, error)
	mu        sync.Mutex
	publisher imaging.Publisher
}

func newLazyPublisher(settings imaging.S3Settings) *lazyPublisher {
	return &lazyPublisher{settings: settings, connect: imaging.NewS3Publisher}
}

func (l *lazyPublisher) get(ctx context.Context) (imaging.Publisher, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.publisher != nil {
		return l.publisher, nil
	}
	publisher, err := l.connect(ctx, l.settings)
	if err != nil {
		return nil, imaging.Wrap(imaging.KindPublishFailed, "upload", "failed to initialise S3 client", err)
	}
	l.publisher = publisher
	return publisher, nil
}

func (l *lazyPublisher) Upload(ctx context.Context, opts imaging.UploadOptions) (*imaging.UploadResult, error) {
	publisher, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return publisher.Upload(ctx, opts)
}

// logProgress logs progress events until the returned channel is closed.
// done is closed once every event has been logged.
func logProgress() (chan imaging.ProgressEvent, <-chan struct{}) {
	progress := make(chan imaging.ProgressEvent, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range progress {
			logger.Info("Progress", "stage", event.Stage, "current", event.Current, "total", event.Total, "file", event.File)
		}
	}()
	return progress, done
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
