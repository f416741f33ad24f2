package imaging

import (
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/acm19/imagetools/internal/logger"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ListedImage is one entry of ListImages. Width and height come from the
// file header and are unset when it cannot be decoded locally.
type ListedImage struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Extension string `json:"extension"`
	SizeBytes int64  `json:"sizeBytes"`
	Size      string `json:"size"`
	MimeType  string `json:"mimeType,omitempty"`
	Width     *int   `json:"width,omitempty"`
	Height    *int   `json:"height,omitempty"`
}

// ListResult is the outcome of ListImages.
type ListResult struct {
	Success   bool          `json:"success"`
	Directory string        `json:"directory"`
	Count     int           `json:"count"`
	Images    []ListedImage `json:"images"`
}

// ListImages reports the image files directly inside dir. It reads only
// file headers and never runs the engine.
func (p *processor) ListImages(ctx context.Context, dir string) (*ListResult, error) {
	const op = "list"
	if dir == "" {
		dir = "."
	}
	if err := ValidateDirectory(op, dir); err != nil {
		return nil, err
	}

	files, err := matchingFiles(dir, NewExtensionFilter(listableExtensions))
	if err != nil {
		return nil, Wrap(KindDirectoryNotFound, op, "failed to read directory", err)
	}

	images := make([]ListedImage, 0, len(files))
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, Wrap(KindInvalidArgument, op, "listing cancelled", err)
		}
		images = append(images, describeFile(filepath.Join(dir, name)))
	}

	logger.Debug("Listed images", "directory", dir, "count", len(images))
	return &ListResult{
		Success:   true,
		Directory: dir,
		Count:     len(images),
		Images:    images,
	}, nil
}

func describeFile(path string) ListedImage {
	size := SizeOf(path)
	listed := ListedImage{
		Name:      filepath.Base(path),
		Path:      path,
		Extension: NormalizeFormat(filepath.Ext(path)),
		SizeBytes: size,
		Size:      FormatSize(size),
	}

	if mtype, err := mimetype.DetectFile(path); err == nil {
		listed.MimeType = mtype.String()
	} else {
		logger.Debug("MIME detection failed", "file", path, "error", err)
	}

	if w, h, ok := decodeDimensions(path); ok {
		listed.Width, listed.Height = &w, &h
	}
	return listed
}

// decodeDimensions reads only the image header.
func decodeDimensions(path string) (int, int, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, false
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
