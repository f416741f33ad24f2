package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/acm19/imagetools/internal/imaging"
	"github.com/mark3labs/mcp-go/mcp"
)

var errUploadDisabled = errors.New("S3 publishing is not configured")

type optimizeArgs struct {
	InputPath  string `json:"inputPath"`
	OutputPath string `json:"outputPath"`
	Quality    *int   `json:"quality"`
	MaxWidth   *int   `json:"maxWidth"`
	MaxHeight  *int   `json:"maxHeight"`
}

type thumbnailArgs struct {
	InputPath           string `json:"inputPath"`
	OutputPath          string `json:"outputPath"`
	Width               *int   `json:"width"`
	Height              *int   `json:"height"`
	MaintainAspectRatio *bool  `json:"maintainAspectRatio"`
	CropToFit           *bool  `json:"cropToFit"`
}

type iconArgs struct {
	InputPath string `json:"inputPath"`
	OutputDir string `json:"outputDir"`
	Sizes     []int  `json:"sizes"`
	Format    string `json:"format"`
}

type convertArgs struct {
	InputPath  string `json:"inputPath"`
	OutputPath string `json:"outputPath"`
	Format     string `json:"format"`
	Quality    *int   `json:"quality"`
}

type infoArgs struct {
	ImagePath string `json:"imagePath"`
}

type listArgs struct {
	Directory string `json:"directory"`
}

type batchArgs struct {
	InputDir   string   `json:"inputDir"`
	OutputDir  string   `json:"outputDir"`
	Quality    *int     `json:"quality"`
	MaxWidth   *int     `json:"maxWidth"`
	MaxHeight  *int     `json:"maxHeight"`
	Extensions []string `json:"extensions"`
}

type uploadArgs struct {
	Directory  string   `json:"directory"`
	Bucket     string   `json:"bucket"`
	Prefix     string   `json:"prefix"`
	Extensions []string `json:"extensions"`
	Overwrite  bool     `json:"overwrite"`
}

func (s *Server) handleOptimizeImage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args optimizeArgs
	if err := bind(request, &args); err != nil {
		return toolError(ToolOptimizeImage, err), nil
	}
	if err := requireArgs(required{"inputPath", args.InputPath}, required{"outputPath", args.OutputPath}); err != nil {
		return toolError(ToolOptimizeImage, err), nil
	}
	quality, err := qualityArg(args.Quality)
	if err != nil {
		return toolError(ToolOptimizeImage, err), nil
	}

	result, err := s.processor.Optimize(ctx, imaging.OptimizeOptions{
		InputPath:  args.InputPath,
		OutputPath: args.OutputPath,
		Quality:    quality,
		MaxWidth:   deref(args.MaxWidth),
		MaxHeight:  deref(args.MaxHeight),
	})
	return respond(ToolOptimizeImage, result, err)
}

func (s *Server) handleCreateThumbnail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args thumbnailArgs
	if err := bind(request, &args); err != nil {
		return toolError(ToolCreateThumbnail, err), nil
	}
	if err := requireArgs(required{"inputPath", args.InputPath}, required{"outputPath", args.OutputPath}); err != nil {
		return toolError(ToolCreateThumbnail, err), nil
	}
	if args.Width == nil || args.Height == nil {
		return toolError(ToolCreateThumbnail, imaging.New(imaging.KindInvalidArgument, "bind", "missing required argument: width and height")), nil
	}

	maintain := true
	if args.MaintainAspectRatio != nil {
		maintain = *args.MaintainAspectRatio
	}
	result, err := s.processor.Thumbnail(ctx, imaging.ThumbnailOptions{
		InputPath:           args.InputPath,
		OutputPath:          args.OutputPath,
		Width:               *args.Width,
		Height:              *args.Height,
		MaintainAspectRatio: maintain,
		CropToFit:           deref(args.CropToFit),
	})
	return respond(ToolCreateThumbnail, result, err)
}

func (s *Server) handleCreateIcon(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args iconArgs
	if err := bind(request, &args); err != nil {
		return toolError(ToolCreateIcon, err), nil
	}
	if err := requireArgs(required{"inputPath", args.InputPath}, required{"outputDir", args.OutputDir}); err != nil {
		return toolError(ToolCreateIcon, err), nil
	}

	result, err := s.processor.CreateIcon(ctx, imaging.IconOptions{
		InputPath: args.InputPath,
		OutputDir: args.OutputDir,
		Sizes:     args.Sizes,
		Format:    args.Format,
	})
	return respond(ToolCreateIcon, result, err)
}

func (s *Server) handleConvertFormat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args convertArgs
	if err := bind(request, &args); err != nil {
		return toolError(ToolConvertFormat, err), nil
	}
	if err := requireArgs(required{"inputPath", args.InputPath}, required{"outputPath", args.OutputPath}, required{"format", args.Format}); err != nil {
		return toolError(ToolConvertFormat, err), nil
	}
	quality, err := qualityArg(args.Quality)
	if err != nil {
		return toolError(ToolConvertFormat, err), nil
	}

	result, err := s.processor.Convert(ctx, imaging.ConvertOptions{
		InputPath:  args.InputPath,
		OutputPath: args.OutputPath,
		Format:     args.Format,
		Quality:    quality,
	})
	return respond(ToolConvertFormat, result, err)
}

func (s *Server) handleGetImageInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args infoArgs
	if err := bind(request, &args); err != nil {
		return toolError(ToolGetImageInfo, err), nil
	}
	if err := requireArgs(required{"imagePath", args.ImagePath}); err != nil {
		return toolError(ToolGetImageInfo, err), nil
	}

	result, err := s.processor.Info(ctx, args.ImagePath)
	return respond(ToolGetImageInfo, result, err)
}

func (s *Server) handleListImages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := bind(request, &args); err != nil {
		return toolError(ToolListImages, err), nil
	}

	result, err := s.processor.ListImages(ctx, args.Directory)
	return respond(ToolListImages, result, err)
}

func (s *Server) handleBatchOptimize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args batchArgs
	if err := bind(request, &args); err != nil {
		return toolError(ToolBatchOptimize, err), nil
	}
	if err := requireArgs(required{"inputDir", args.InputDir}, required{"outputDir", args.OutputDir}); err != nil {
		return toolError(ToolBatchOptimize, err), nil
	}
	quality, err := qualityArg(args.Quality)
	if err != nil {
		return toolError(ToolBatchOptimize, err), nil
	}

	result, err := s.processor.BatchOptimize(ctx, imaging.BatchOptions{
		InputDir:   args.InputDir,
		OutputDir:  args.OutputDir,
		Quality:    quality,
		MaxWidth:   deref(args.MaxWidth),
		MaxHeight:  deref(args.MaxHeight),
		Extensions: args.Extensions,
	})
	return respond(ToolBatchOptimize, result, err)
}

func (s *Server) handleUploadImages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.publisher == nil {
		return toolError(ToolUploadImages, errUploadDisabled), nil
	}
	var args uploadArgs
	if err := bind(request, &args); err != nil {
		return toolError(ToolUploadImages, err), nil
	}
	if err := requireArgs(required{"directory", args.Directory}, required{"bucket", args.Bucket}); err != nil {
		return toolError(ToolUploadImages, err), nil
	}

	result, err := s.publisher.Upload(ctx, imaging.UploadOptions{
		Directory:  args.Directory,
		Bucket:     args.Bucket,
		Prefix:     args.Prefix,
		Extensions: args.Extensions,
		Overwrite:  args.Overwrite,
	})
	return respond(ToolUploadImages, result, err)
}

type required struct {
	name  string
	value string
}

func bind(request mcp.CallToolRequest, target any) error {
	if request.Params.Arguments == nil {
		return nil
	}
	if err := request.BindArguments(target); err != nil {
		return imaging.Wrap(imaging.KindInvalidArgument, "bind", "invalid arguments", err)
	}
	return nil
}

func requireArgs(args ...required) error {
	for _, arg := range args {
		if arg.value == "" {
			return imaging.New(imaging.KindInvalidArgument, "bind", "missing required argument: "+arg.name)
		}
	}
	return nil
}

// qualityArg returns 0 when quality was omitted so the processor default applies.
func qualityArg(q *int) (int, error) {
	if q == nil {
		return 0, nil
	}
	if *q < 1 || *q > 100 {
		return 0, imaging.New(imaging.KindInvalidArgument, "bind", fmt.Sprintf("quality must be between 1 and 100, got %d", *q))
	}
	return *q, nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

func respond(tool string, result any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return toolError(tool, err), nil
	}
	body, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return toolError(tool, fmt.Errorf("failed to encode result: %w", err)), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

func toolError(tool string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Error executing %s: %s", tool, err.Error()))
}
