package imaging

import (
	"context"
)

// Convert validates the target format before touching the engine, then
// writes the input in that format.
func (p *processor) Convert(ctx context.Context, opts ConvertOptions) (*ConvertResult, error) {
	const op = "convert"
	if opts.Quality == 0 {
		opts.Quality = p.defaults.ConvertQuality
	}
	if err := validateRequired(op, "outputPath", opts.OutputPath); err != nil {
		return nil, err
	}
	if err := ValidateInputExists(op, opts.InputPath); err != nil {
		return nil, err
	}
	if err := ValidateFormat(op, opts.Format); err != nil {
		return nil, err
	}
	if err := validateQuality(op, opts.Quality); err != nil {
		return nil, err
	}
	if err := p.ensureEngine(ctx); err != nil {
		return nil, err
	}
	if err := EnsureDirectory(opts.OutputPath); err != nil {
		return nil, Wrap(KindInvalidArgument, op, "failed to prepare output directory", err)
	}

	originalSize := SizeOf(opts.InputPath)
	_, command, err := p.run(ctx, ConvertInvocation(opts.InputPath, opts.OutputPath, opts.Format, opts.Quality))
	if err != nil {
		return nil, withOp(op, "convert format", err)
	}

	var quality any = "N/A"
	if IsLossy(opts.Format) {
		quality = opts.Quality
	}

	convertedSize := SizeOf(opts.OutputPath)
	return &ConvertResult{
		Success:        true,
		InputPath:      opts.InputPath,
		OutputPath:     opts.OutputPath,
		Format:         opts.Format,
		Quality:        quality,
		OriginalSize:   FormatSize(originalSize),
		ConvertedSize:  FormatSize(convertedSize),
		OriginalBytes:  originalSize,
		ConvertedBytes: convertedSize,
		Command:        command,
	}, nil
}
