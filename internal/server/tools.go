package server

import (
	"github.com/acm19/imagetools/internal/imaging"
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names.
const (
	ToolOptimizeImage   = "optimize_image"
	ToolCreateThumbnail = "create_thumbnail"
	ToolCreateIcon      = "create_icon"
	ToolConvertFormat   = "convert_format"
	ToolGetImageInfo    = "get_image_info"
	ToolListImages      = "list_images"
	ToolBatchOptimize   = "batch_optimize"
	ToolUploadImages    = "upload_images"
)

func optimizeImageTool(d imaging.Defaults) mcp.Tool {
	return mcp.NewTool(ToolOptimizeImage,
		mcp.WithDescription("Optimize an image to reduce file size while keeping quality"),
		mcp.WithString("inputPath", mcp.Required(), mcp.Description("Path to the input image file")),
		mcp.WithString("outputPath", mcp.Required(), mcp.Description("Path for the optimized output image")),
		mcp.WithNumber("quality",
			mcp.Description("Quality level (1-100)"),
			mcp.DefaultNumber(float64(d.OptimizeQuality)),
			mcp.Min(1),
			mcp.Max(100),
		),
		mcp.WithNumber("maxWidth", mcp.Description("Maximum width in pixels; the image is only ever shrunk")),
		mcp.WithNumber("maxHeight", mcp.Description("Maximum height in pixels; the image is only ever shrunk")),
	)
}

func createThumbnailTool() mcp.Tool {
	return mcp.NewTool(ToolCreateThumbnail,
		mcp.WithDescription("Create a thumbnail from an image"),
		mcp.WithString("inputPath", mcp.Required(), mcp.Description("Path to the input image file")),
		mcp.WithString("outputPath", mcp.Required(), mcp.Description("Path for the thumbnail output")),
		mcp.WithNumber("width", mcp.Required(), mcp.Description("Thumbnail width in pixels"), mcp.Min(1)),
		mcp.WithNumber("height", mcp.Required(), mcp.Description("Thumbnail height in pixels"), mcp.Min(1)),
		mcp.WithBoolean("maintainAspectRatio",
			mcp.Description("Fit within the box keeping the aspect ratio"),
			mcp.DefaultBool(true),
		),
		mcp.WithBoolean("cropToFit",
			mcp.Description("Fill the box exactly and crop the overflow around the centre"),
			mcp.DefaultBool(false),
		),
	)
}

func createIconTool(d imaging.Defaults) mcp.Tool {
	return mcp.NewTool(ToolCreateIcon,
		mcp.WithDescription("Create square icons in multiple sizes from an image"),
		mcp.WithString("inputPath", mcp.Required(), mcp.Description("Path to the input image file")),
		mcp.WithString("outputDir", mcp.Required(), mcp.Description("Directory for the generated icons")),
		mcp.WithArray("sizes",
			mcp.Description("Icon edge lengths in pixels"),
			mcp.Items(map[string]any{"type": "number"}),
			mcp.DefaultArray(d.IconSizes),
		),
		mcp.WithString("format",
			mcp.Description("Output format for the icons"),
			mcp.Enum("png", "ico"),
			mcp.DefaultString(d.IconFormat),
		),
	)
}

func convertFormatTool(d imaging.Defaults) mcp.Tool {
	return mcp.NewTool(ToolConvertFormat,
		mcp.WithDescription("Convert an image to another format"),
		mcp.WithString("inputPath", mcp.Required(), mcp.Description("Path to the input image file")),
		mcp.WithString("outputPath", mcp.Required(), mcp.Description("Path for the converted output")),
		mcp.WithString("format",
			mcp.Required(),
			mcp.Description("Target format"),
			mcp.Enum("jpg", "jpeg", "png", "webp", "gif", "bmp", "tiff"),
		),
		mcp.WithNumber("quality",
			mcp.Description("Quality for lossy formats (1-100)"),
			mcp.DefaultNumber(float64(d.ConvertQuality)),
			mcp.Min(1),
			mcp.Max(100),
		),
	)
}

func getImageInfoTool() mcp.Tool {
	return mcp.NewTool(ToolGetImageInfo,
		mcp.WithDescription("Get detailed information about an image"),
		mcp.WithString("imagePath", mcp.Required(), mcp.Description("Path to the image file")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func listImagesTool() mcp.Tool {
	return mcp.NewTool(ToolListImages,
		mcp.WithDescription("List the image files in a directory with size, type and dimensions"),
		mcp.WithString("directory",
			mcp.Description("Directory to list"),
			mcp.DefaultString("."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func batchOptimizeTool(d imaging.Defaults) mcp.Tool {
	return mcp.NewTool(ToolBatchOptimize,
		mcp.WithDescription("Optimize every image in a directory"),
		mcp.WithString("inputDir", mcp.Required(), mcp.Description("Directory containing the input images")),
		mcp.WithString("outputDir", mcp.Required(), mcp.Description("Directory for the optimized images")),
		mcp.WithNumber("quality",
			mcp.Description("Quality level (1-100)"),
			mcp.DefaultNumber(float64(d.OptimizeQuality)),
			mcp.Min(1),
			mcp.Max(100),
		),
		mcp.WithNumber("maxWidth", mcp.Description("Maximum width in pixels")),
		mcp.WithNumber("maxHeight", mcp.Description("Maximum height in pixels")),
		mcp.WithArray("extensions",
			mcp.Description("File extensions to process"),
			mcp.Items(map[string]any{"type": "string"}),
			mcp.DefaultArray(d.BatchExtensions),
		),
	)
}

func uploadImagesTool() mcp.Tool {
	return mcp.NewTool(ToolUploadImages,
		mcp.WithDescription("Upload the images of a directory to an S3 bucket, skipping unchanged objects"),
		mcp.WithString("directory", mcp.Required(), mcp.Description("Directory containing the images")),
		mcp.WithString("bucket", mcp.Required(), mcp.Description("Target S3 bucket")),
		mcp.WithString("prefix", mcp.Description("Key prefix inside the bucket")),
		mcp.WithArray("extensions",
			mcp.Description("File extensions to upload"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithBoolean("overwrite",
			mcp.Description("Replace objects whose content differs"),
			mcp.DefaultBool(false),
		),
	)
}
