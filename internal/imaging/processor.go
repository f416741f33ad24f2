package imaging

import (
	"context"
	"sync/atomic"

	"github.com/acm19/imagetools/internal/logger"
)

// ImageProcessor defines the image operations exposed to callers.
type ImageProcessor interface {
	// Optimize re-encodes an image with the given quality, stripping metadata
	// and optionally shrinking it to fit the bounds.
	Optimize(ctx context.Context, opts OptimizeOptions) (*OptimizeResult, error)
	// Thumbnail produces a resized copy using crop, fit or force mode.
	Thumbnail(ctx context.Context, opts ThumbnailOptions) (*ThumbnailResult, error)
	// CreateIcon produces one square icon per size. Per-size failures are
	// reported in the result, not returned.
	CreateIcon(ctx context.Context, opts IconOptions) (*IconResult, error)
	// Convert writes the image in another format.
	Convert(ctx context.Context, opts ConvertOptions) (*ConvertResult, error)
	// Info returns parsed metadata and the raw engine dump.
	Info(ctx context.Context, path string) (*InfoResult, error)
	// ListImages reports the images in a directory without invoking the engine.
	ListImages(ctx context.Context, dir string) (*ListResult, error)
	// BatchOptimize optimizes every matching file in a directory. Per-file
	// failures are reported in the result, not returned.
	BatchOptimize(ctx context.Context, opts BatchOptions) (*BatchResult, error)
}

// processor implements ImageProcessor on top of an Engine.
type processor struct {
	engine      Engine
	exif        MetadataReader
	defaults    Defaults
	engineReady atomic.Bool
}

// ProcessorOption customises a processor.
type ProcessorOption func(*processor)

// WithDefaults overrides the request defaults.
func WithDefaults(d Defaults) ProcessorOption {
	return func(p *processor) {
		p.defaults = d
	}
}

// WithMetadataReader enables EXIF enrichment of Info results.
func WithMetadataReader(r MetadataReader) ProcessorOption {
	return func(p *processor) {
		p.exif = r
	}
}

// NewImageProcessor creates a new ImageProcessor instance.
func NewImageProcessor(engine Engine, opts ...ProcessorOption) ImageProcessor {
	p := &processor{
		engine:   engine,
		defaults: DefaultDefaults(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ensureEngine runs the version check once per process. A failed check is
// not remembered, so a later request checks again. A cancelled request is
// reported as such, not as a missing engine.
func (p *processor) ensureEngine(ctx context.Context) error {
	if p.engineReady.Load() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := p.engine.Run(ctx, VersionInvocation()); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		logger.Warn("Engine version check failed", "binary", p.engine.Binary(), "error", err)
		return Wrap(KindEngineNotInstalled, "check_engine", msgEngineNotInstalled, err)
	}
	p.engineReady.Store(true)
	logger.Debug("Engine version check succeeded", "binary", p.engine.Binary())
	return nil
}

// run executes inv and returns its display string alongside the outcome.
func (p *processor) run(ctx context.Context, inv Invocation) (*Outcome, string, error) {
	command := inv.Command(p.engine.Binary())
	outcome, err := p.engine.Run(ctx, inv)
	return outcome, command, err
}

func validateQuality(op string, quality int) error {
	if quality < 1 || quality > 100 {
		return New(KindInvalidArgument, op, "quality must be between 1 and 100")
	}
	return nil
}

func validateBound(op, name string, value int) error {
	if value < 0 {
		return New(KindInvalidArgument, op, name+" must not be negative")
	}
	return nil
}

func validatePositive(op, name string, value int) error {
	if value <= 0 {
		return New(KindInvalidArgument, op, name+" must be a positive integer")
	}
	return nil
}

func validateRequired(op, name, value string) error {
	if value == "" {
		return New(KindInvalidArgument, op, name+" is required")
	}
	return nil
}
