package imaging

import (
	"context"
	"fmt"
)

// Thumbnail validates opts, checks the engine and writes the thumbnail.
func (p *processor) Thumbnail(ctx context.Context, opts ThumbnailOptions) (*ThumbnailResult, error) {
	const op = "thumbnail"
	if err := validateRequired(op, "outputPath", opts.OutputPath); err != nil {
		return nil, err
	}
	if err := ValidateInputExists(op, opts.InputPath); err != nil {
		return nil, err
	}
	if err := validatePositive(op, "width", opts.Width); err != nil {
		return nil, err
	}
	if err := validatePositive(op, "height", opts.Height); err != nil {
		return nil, err
	}
	if err := p.ensureEngine(ctx); err != nil {
		return nil, err
	}
	if err := EnsureDirectory(opts.OutputPath); err != nil {
		return nil, Wrap(KindInvalidArgument, op, "failed to prepare output directory", err)
	}

	inv := ThumbnailInvocation(opts.InputPath, opts.OutputPath, opts.Width, opts.Height, opts.MaintainAspectRatio, opts.CropToFit)
	_, command, err := p.run(ctx, inv)
	if err != nil {
		return nil, withOp(op, "create thumbnail", err)
	}

	size := SizeOf(opts.OutputPath)
	return &ThumbnailResult{
		Success:             true,
		InputPath:           opts.InputPath,
		OutputPath:          opts.OutputPath,
		Dimensions:          fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		MaintainAspectRatio: opts.MaintainAspectRatio,
		CropToFit:           opts.CropToFit,
		FileSize:            FormatSize(size),
		FileSizeBytes:       size,
		Command:             command,
	}, nil
}
