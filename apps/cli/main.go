package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/acm19/imagetools/internal/imaging"
	"github.com/acm19/imagetools/internal/logger"
	"github.com/acm19/imagetools/internal/server"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "imagetools",
	Short:   "ImageMagick tools for MCP clients and the command line",
	Long:    `Imagetools optimizes, resizes, converts and inspects images with ImageMagick, either as an MCP server over stdio or directly from the shell.`,
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the image tools over MCP stdio",
	Long:  `Speaks the Model Context Protocol on stdin/stdout. Logs go to stderr.`,
	Args:  cobra.NoArgs,
	Run:   runServe,
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize INPUT OUTPUT",
	Short: "Optimize an image",
	Long:  `Re-encodes an image with the given quality, strips metadata and optionally shrinks it to fit a bounding box.`,
	Args:  cobra.ExactArgs(2),
	Run:   runOptimize,
}

var thumbnailCmd = &cobra.Command{
	Use:   "thumbnail INPUT OUTPUT",
	Short: "Create a thumbnail",
	Args:  cobra.ExactArgs(2),
	Run:   runThumbnail,
}

var iconCmd = &cobra.Command{
	Use:   "icon INPUT OUTPUT_DIR",
	Short: "Create square icons in several sizes",
	Args:  cobra.ExactArgs(2),
	Run:   runIcon,
}

var convertCmd = &cobra.Command{
	Use:   "convert INPUT OUTPUT FORMAT",
	Short: "Convert an image to another format",
	Args:  cobra.ExactArgs(3),
	Run:   runConvert,
}

var infoCmd = &cobra.Command{
	Use:   "info IMAGE",
	Short: "Show image metadata",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

var listCmd = &cobra.Command{
	Use:   "list [DIRECTORY]",
	Short: "List the images in a directory",
	Args:  cobra.MaximumNArgs(1),
	Run:   runList,
}

var batchCmd = &cobra.Command{
	Use:   "batch INPUT_DIR OUTPUT_DIR",
	Short: "Optimize every image in a directory",
	Long:  `Optimizes each matching file of INPUT_DIR into OUTPUT_DIR under the same name. Failures are reported per file.`,
	Args:  cobra.ExactArgs(2),
	Run:   runBatch,
}

var uploadCmd = &cobra.Command{
	Use:   "upload DIRECTORY BUCKET",
	Short: "Upload images to S3",
	Long:  `Uploads the images of DIRECTORY to BUCKET with deduplication (MD5 hash comparison).`,
	Args:  cobra.ExactArgs(2),
	Run:   runUpload,
}

var (
	configPath          string
	engineBinary        string
	logLevel            string
	quality             int
	maxWidth            int
	maxHeight           int
	thumbWidth          int
	thumbHeight         int
	maintainAspectRatio bool
	cropToFit           bool
	iconSizes           []int
	iconFormat          string
	extensions          []string
	prefix              string
	overwrite           bool
	maxConcurrent       int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (default $IMAGETOOLS_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&engineBinary, "engine", "", "ImageMagick binary to run")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Optimize command flags
	optimizeCmd.Flags().IntVarP(&quality, "quality", "q", 0, "Quality level (1-100, default from config)")
	optimizeCmd.Flags().IntVar(&maxWidth, "max-width", 0, "Maximum width in pixels")
	optimizeCmd.Flags().IntVar(&maxHeight, "max-height", 0, "Maximum height in pixels")

	// Thumbnail command flags
	thumbnailCmd.Flags().IntVarP(&thumbWidth, "width", "W", 0, "Thumbnail width in pixels")
	thumbnailCmd.Flags().IntVarP(&thumbHeight, "height", "H", 0, "Thumbnail height in pixels")
	thumbnailCmd.Flags().BoolVar(&maintainAspectRatio, "maintain-aspect-ratio", true, "Fit within the box keeping the aspect ratio")
	thumbnailCmd.Flags().BoolVar(&cropToFit, "crop", false, "Fill the box and crop the overflow")
	thumbnailCmd.MarkFlagRequired("width")
	thumbnailCmd.MarkFlagRequired("height")

	// Icon command flags
	iconCmd.Flags().IntSliceVarP(&iconSizes, "sizes", "s", nil, "Icon sizes in pixels (default from config)")
	iconCmd.Flags().StringVarP(&iconFormat, "format", "f", "", "Icon format: png or ico (default from config)")

	// Convert command flags
	convertCmd.Flags().IntVarP(&quality, "quality", "q", 0, "Quality for lossy formats (1-100, default from config)")

	// Batch command flags
	batchCmd.Flags().IntVarP(&quality, "quality", "q", 0, "Quality level (1-100, default from config)")
	batchCmd.Flags().IntVar(&maxWidth, "max-width", 0, "Maximum width in pixels")
	batchCmd.Flags().IntVar(&maxHeight, "max-height", 0, "Maximum height in pixels")
	batchCmd.Flags().StringSliceVarP(&extensions, "extensions", "e", nil, "File extensions to process (default from config)")

	// Upload command flags
	uploadCmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Key prefix inside the bucket")
	uploadCmd.Flags().StringSliceVarP(&extensions, "extensions", "e", nil, "File extensions to upload")
	uploadCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace objects whose content differs")
	uploadCmd.Flags().IntVarP(&maxConcurrent, "max-concurrent", "c", 0, "Maximum concurrent uploads (default from config)")

	rootCmd.AddCommand(serveCmd, optimizeCmd, thumbnailCmd, iconCmd, convertCmd, infoCmd, listCmd, batchCmd, uploadCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) {
	rt := mustApp()
	defer rt.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(rt.processor,
		server.WithPublisher(rt.publisher),
		server.WithDefaults(rt.cfg.ImagingDefaults()),
		server.WithVersion(version),
	)

	logger.Info("Image tools MCP server running on stdio", "version", version, "engine", rt.cfg.Engine.Binary)
	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		logger.Error("Server stopped", "error", err)
		rt.Close()
		os.Exit(1)
	}
}

func runOptimize(cmd *cobra.Command, args []string) {
	rt := mustApp()
	defer rt.Close()

	result, err := rt.processor.Optimize(cmd.Context(), imaging.OptimizeOptions{
		InputPath:  args[0],
		OutputPath: args[1],
		Quality:    quality,
		MaxWidth:   maxWidth,
		MaxHeight:  maxHeight,
	})
	rt.finish("Optimize", result, err)
}

func runThumbnail(cmd *cobra.Command, args []string) {
	rt := mustApp()
	defer rt.Close()

	result, err := rt.processor.Thumbnail(cmd.Context(), imaging.ThumbnailOptions{
		InputPath:           args[0],
		OutputPath:          args[1],
		Width:               thumbWidth,
		Height:              thumbHeight,
		MaintainAspectRatio: maintainAspectRatio,
		CropToFit:           cropToFit,
	})
	rt.finish("Thumbnail", result, err)
}

func runIcon(cmd *cobra.Command, args []string) {
	rt := mustApp()
	defer rt.Close()

	result, err := rt.processor.CreateIcon(cmd.Context(), imaging.IconOptions{
		InputPath: args[0],
		OutputDir: args[1],
		Sizes:     iconSizes,
		Format:    iconFormat,
	})
	rt.finish("Icon creation", result, err)
}

func runConvert(cmd *cobra.Command, args []string) {
	rt := mustApp()
	defer rt.Close()

	result, err := rt.processor.Convert(cmd.Context(), imaging.ConvertOptions{
		InputPath:  args[0],
		OutputPath: args[1],
		Format:     args[2],
		Quality:    quality,
	})
	rt.finish("Convert", result, err)
}

func runInfo(cmd *cobra.Command, args []string) {
	rt := mustApp()
	defer rt.Close()

	result, err := rt.processor.Info(cmd.Context(), args[0])
	rt.finish("Info", result, err)
}

func runList(cmd *cobra.Command, args []string) {
	rt := mustApp()
	defer rt.Close()

	dir := ""
	if len(args) == 1 {
		dir = args[0]
	}
	result, err := rt.processor.ListImages(cmd.Context(), dir)
	rt.finish("List", result, err)
}

func runBatch(cmd *cobra.Command, args []string) {
	rt := mustApp()
	defer rt.Close()

	progress, done := logProgress()
	result, err := rt.processor.BatchOptimize(cmd.Context(), imaging.BatchOptions{
		InputDir:     args[0],
		OutputDir:    args[1],
		Quality:      quality,
		MaxWidth:     maxWidth,
		MaxHeight:    maxHeight,
		Extensions:   extensions,
		ProgressChan: progress,
	})
	close(progress)
	<-done
	rt.finish("Batch optimize", result, err)
}

func runUpload(cmd *cobra.Command, args []string) {
	rt := mustApp()
	defer rt.Close()

	progress, done := logProgress()
	result, err := rt.publisher.Upload(cmd.Context(), imaging.UploadOptions{
		Directory:    args[0],
		Bucket:       args[1],
		Prefix:       prefix,
		Extensions:   extensions,
		Overwrite:    overwrite,
		ProgressChan: progress,
	})
	close(progress)
	<-done
	rt.finish("Upload", result, err)
}
