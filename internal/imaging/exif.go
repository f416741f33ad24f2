package imaging

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/acm19/imagetools/internal/logger"
	"github.com/barasher/go-exiftool"
)

// exifFields are copied into ImageMetadata.Exif when present.
var exifFields = []string{
	"Make",
	"Model",
	"LensModel",
	"DateTimeOriginal",
	"CreateDate",
	"Orientation",
	"ExposureTime",
	"FNumber",
	"ISO",
	"FocalLength",
	"GPSLatitude",
	"GPSLongitude",
	"Software",
	"Artist",
	"Copyright",
}

// MetadataReader reads embedded metadata that the engine dump does not expose.
type MetadataReader interface {
	// ReadMetadata returns the known EXIF fields present in path.
	ReadMetadata(path string) (map[string]string, error)
	// Close releases the underlying process.
	Close() error
}

// exiftoolReader implements MetadataReader using a long-lived exiftool process.
// The process is started on first use so a missing exiftool only disables
// enrichment.
type exiftoolReader struct {
	mu      sync.Mutex
	binary  string
	et      *exiftool.Exiftool
	initErr error
	started bool
}

// NewExifReader creates a MetadataReader backed by exiftool. An empty binary
// uses exiftool from PATH.
func NewExifReader(binary string) MetadataReader {
	return &exiftoolReader{binary: binary}
}

func (r *exiftoolReader) start() error {
	if r.started {
		return r.initErr
	}
	r.started = true

	var opts []func(*exiftool.Exiftool) error
	if r.binary != "" {
		opts = append(opts, exiftool.SetExiftoolBinaryPath(r.binary))
	}
	r.et, r.initErr = exiftool.NewExiftool(opts...)
	if r.initErr != nil {
		logger.Debug("exiftool unavailable, EXIF enrichment disabled", "error", r.initErr)
	}
	return r.initErr
}

// ReadMetadata extracts the fields listed in exifFields. Values are rendered
// with fmt so numeric tags survive.
func (r *exiftoolReader) ReadMetadata(path string) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.start(); err != nil {
		return nil, fmt.Errorf("failed to start exiftool: %w", err)
	}

	fileInfos := r.et.ExtractMetadata(path)
	if len(fileInfos) == 0 {
		return nil, fmt.Errorf("no metadata found")
	}
	fileInfo := fileInfos[0]
	if fileInfo.Err != nil {
		return nil, fileInfo.Err
	}

	result := make(map[string]string)
	for _, field := range exifFields {
		if val, ok := fileInfo.Fields[field]; ok && val != nil {
			result[field] = fmt.Sprint(val)
		}
	}
	logger.Debug("Read EXIF metadata", "file", filepath.Base(path), "fields", len(result))
	return result, nil
}

// Close stops the exiftool process if it was started.
func (r *exiftoolReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.et == nil {
		return nil
	}
	err := r.et.Close()
	r.et = nil
	r.started = false
	return err
}
