package imaging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/acm19/imagetools/internal/logger"
	"github.com/dustin/go-humanize"
)

const noImagesMessage = "No image files found to process"

// BatchOptimize optimizes each matching file of InputDir into OutputDir under
// the same name. Files run one at a time in directory order; a failure is
// recorded against its file and the batch continues.
func (p *processor) BatchOptimize(ctx context.Context, opts BatchOptions) (*BatchResult, error) {
	const op = "batch"
	if opts.Quality == 0 {
		opts.Quality = p.defaults.OptimizeQuality
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = p.defaults.BatchExtensions
	}
	if err := validateRequired(op, "outputDir", opts.OutputDir); err != nil {
		return nil, err
	}
	if err := ValidateDirectory(op, opts.InputDir); err != nil {
		return nil, err
	}
	if err := validateQuality(op, opts.Quality); err != nil {
		return nil, err
	}
	if err := validateBound(op, "maxWidth", opts.MaxWidth); err != nil {
		return nil, err
	}
	if err := validateBound(op, "maxHeight", opts.MaxHeight); err != nil {
		return nil, err
	}
	if err := p.ensureEngine(ctx); err != nil {
		return nil, err
	}
	if err := EnsureDir(opts.OutputDir); err != nil {
		return nil, Wrap(KindInvalidArgument, op, "failed to prepare output directory", err)
	}

	files, err := matchingFiles(opts.InputDir, NewExtensionFilter(opts.Extensions))
	if err != nil {
		return nil, Wrap(KindDirectoryNotFound, op, "failed to read input directory", err)
	}

	result := &BatchResult{
		Success:   true,
		InputDir:  opts.InputDir,
		OutputDir: opts.OutputDir,
		Results:   []ItemResult[OptimizeResult]{},
	}
	if len(files) == 0 {
		logger.Info("No image files found", "directory", opts.InputDir, "extensions", opts.Extensions)
		result.Message = noImagesMessage
		result.BatchSummary = Summarize(nil)
		return result, nil
	}

	logger.Info("Starting batch optimization", "input", opts.InputDir, "output", opts.OutputDir, "files", len(files))
	for i, name := range files {
		inputPath := filepath.Join(opts.InputDir, name)
		sendProgress(opts.ProgressChan, ProgressEvent{
			Stage:   "optimizing",
			Current: i + 1,
			Total:   len(files),
			Message: fmt.Sprintf("Optimizing %s", name),
			File:    inputPath,
		})

		item, err := p.optimizeItem(ctx, opts, inputPath, filepath.Join(opts.OutputDir, name))
		if err != nil {
			logger.Warn("Failed to optimize file", "file", name, "error", err)
			result.Results = append(result.Results, failed[OptimizeResult](name, err))
			continue
		}
		result.Results = append(result.Results, succeeded(name, *item))
	}

	result.BatchSummary = Summarize(result.Results)
	logger.Info("Batch optimization completed",
		"processed", result.ProcessedFiles,
		"failed", result.FailedFiles,
		"original", humanize.IBytes(uint64(max(result.TotalOriginalBytes, 0))),
		"optimized", humanize.IBytes(uint64(max(result.TotalOptimizedBytes, 0))),
		"ratio", result.TotalCompressionRatio)
	return result, nil
}

func (p *processor) optimizeItem(ctx context.Context, opts BatchOptions, inputPath, outputPath string) (*OptimizeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, Wrap(KindEngineExecutionFailed, "batch", "batch cancelled", err)
	}
	item := OptimizeOptions{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Quality:    opts.Quality,
		MaxWidth:   opts.MaxWidth,
		MaxHeight:  opts.MaxHeight,
	}
	if err := ValidateInputExists("optimize", inputPath); err != nil {
		return nil, err
	}
	return p.optimize(ctx, item)
}

// matchingFiles returns the names of regular entries in dir accepted by
// filter, in directory order. Subdirectories are skipped.
func matchingFiles(dir string, filter ExtensionFilter) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filter.Matches(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}
