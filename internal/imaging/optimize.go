package imaging

import (
	"context"
)

// Optimize validates opts, checks the engine and re-encodes the input.
func (p *processor) Optimize(ctx context.Context, opts OptimizeOptions) (*OptimizeResult, error) {
	opts = p.optimizeDefaults(opts)
	if err := validateOptimize(opts); err != nil {
		return nil, err
	}
	if err := p.ensureEngine(ctx); err != nil {
		return nil, err
	}
	return p.optimize(ctx, opts)
}

func (p *processor) optimizeDefaults(opts OptimizeOptions) OptimizeOptions {
	if opts.Quality == 0 {
		opts.Quality = p.defaults.OptimizeQuality
	}
	return opts
}

func validateOptimize(opts OptimizeOptions) error {
	const op = "optimize"
	if err := validateRequired(op, "outputPath", opts.OutputPath); err != nil {
		return err
	}
	if err := ValidateInputExists(op, opts.InputPath); err != nil {
		return err
	}
	if err := validateQuality(op, opts.Quality); err != nil {
		return err
	}
	if err := validateBound(op, "maxWidth", opts.MaxWidth); err != nil {
		return err
	}
	return validateBound(op, "maxHeight", opts.MaxHeight)
}

// optimize assumes opts are validated and the engine checked.
func (p *processor) optimize(ctx context.Context, opts OptimizeOptions) (*OptimizeResult, error) {
	if err := EnsureDirectory(opts.OutputPath); err != nil {
		return nil, Wrap(KindInvalidArgument, "optimize", "failed to prepare output directory", err)
	}

	originalSize := SizeOf(opts.InputPath)
	inv := OptimizeInvocation(opts.InputPath, opts.OutputPath, opts.Quality, opts.MaxWidth, opts.MaxHeight)
	_, command, err := p.run(ctx, inv)
	if err != nil {
		return nil, withOp("optimize", "optimize image", err)
	}

	optimizedSize := SizeOf(opts.OutputPath)
	return &OptimizeResult{
		Success:          true,
		InputPath:        opts.InputPath,
		OutputPath:       opts.OutputPath,
		OriginalSize:     FormatSize(originalSize),
		OptimizedSize:    FormatSize(optimizedSize),
		OriginalBytes:    originalSize,
		OptimizedBytes:   optimizedSize,
		CompressionRatio: CompressionRatio(originalSize, optimizedSize),
		SavedBytes:       FormatSize(originalSize - optimizedSize),
		Quality:          opts.Quality,
		MaxWidth:         opts.MaxWidth,
		MaxHeight:        opts.MaxHeight,
		Command:          command,
	}, nil
}
