package imaging

import (
	"context"
	"fmt"

	"github.com/acm19/imagetools/internal/logger"
)

// CreateIcon generates one icon per size, in order. A failing size is
// recorded and the remaining sizes still run.
func (p *processor) CreateIcon(ctx context.Context, opts IconOptions) (*IconResult, error) {
	const op = "icon"
	if len(opts.Sizes) == 0 {
		opts.Sizes = p.defaults.IconSizes
	}
	if opts.Format == "" {
		opts.Format = p.defaults.IconFormat
	}
	if err := validateRequired(op, "outputDir", opts.OutputDir); err != nil {
		return nil, err
	}
	if err := ValidateInputExists(op, opts.InputPath); err != nil {
		return nil, err
	}
	if err := ValidateFormat(op, opts.Format); err != nil {
		return nil, err
	}
	if err := p.ensureEngine(ctx); err != nil {
		return nil, err
	}
	if err := EnsureDir(opts.OutputDir); err != nil {
		return nil, Wrap(KindInvalidArgument, op, "failed to prepare output directory", err)
	}

	icons := make([]ItemResult[IconFile], 0, len(opts.Sizes))
	for _, size := range opts.Sizes {
		key := fmt.Sprintf("%dx%d", size, size)
		path := IconPath(opts.InputPath, opts.OutputDir, size, opts.Format)
		if size <= 0 {
			icons = append(icons, failed[IconFile](key, New(KindInvalidArgument, op, fmt.Sprintf("invalid icon size: %d", size))).at(path))
			continue
		}

		if _, _, err := p.run(ctx, IconInvocation(opts.InputPath, path, size)); err != nil {
			logger.Warn("Icon size failed", "size", key, "error", err)
			icons = append(icons, failed[IconFile](key, err).at(path))
			continue
		}

		fileSize := SizeOf(path)
		icons = append(icons, succeeded(key, IconFile{
			Size:          key,
			Path:          path,
			FileSize:      FormatSize(fileSize),
			FileSizeBytes: fileSize,
		}).at(path))
	}

	generated, failedCount := CountResults(icons)
	logger.Info("Icon set generated", "input", opts.InputPath, "generated", generated, "failed", failedCount)
	return &IconResult{
		Success:   true,
		InputPath: opts.InputPath,
		OutputDir: opts.OutputDir,
		Format:    NormalizeFormat(opts.Format),
		Generated: generated,
		Failed:    failedCount,
		Icons:     icons,
	}, nil
}
