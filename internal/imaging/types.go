package imaging

// Defaults holds the values applied when a request omits a parameter.
type Defaults struct {
	// OptimizeQuality is used by Optimize and BatchOptimize (1-100).
	OptimizeQuality int
	// ConvertQuality is used by Convert for lossy targets (1-100).
	ConvertQuality int
	// IconSizes are the edge lengths generated by CreateIcon.
	IconSizes []int
	// IconFormat is the output format of CreateIcon.
	IconFormat string
	// BatchExtensions filters the files picked up by BatchOptimize.
	BatchExtensions []string
}

// DefaultDefaults returns the built-in request defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		OptimizeQuality: 85,
		ConvertQuality:  90,
		IconSizes:       []int{16, 32, 64, 128, 256},
		IconFormat:      "png",
		BatchExtensions: DefaultBatchExtensions,
	}
}

// OptimizeOptions configures a single optimization.
type OptimizeOptions struct {
	InputPath  string
	OutputPath string
	// Quality is the encoder quality (1-100). Zero selects the default.
	Quality int
	// MaxWidth and MaxHeight bound the output; zero means unbounded.
	MaxWidth  int
	MaxHeight int
}

// ThumbnailOptions configures a thumbnail.
type ThumbnailOptions struct {
	InputPath           string
	OutputPath          string
	Width               int
	Height              int
	MaintainAspectRatio bool
	CropToFit           bool
}

// IconOptions configures a multi-size icon set.
type IconOptions struct {
	InputPath string
	OutputDir string
	// Sizes defaults to Defaults.IconSizes when empty.
	Sizes []int
	// Format defaults to Defaults.IconFormat when empty.
	Format string
}

// ConvertOptions configures a format conversion.
type ConvertOptions struct {
	InputPath  string
	OutputPath string
	Format     string
	// Quality applies to lossy targets only. Zero selects the default.
	Quality int
}

// BatchOptions configures a directory-wide optimization.
type BatchOptions struct {
	InputDir   string
	OutputDir  string
	Quality    int
	MaxWidth   int
	MaxHeight  int
	Extensions []string
	// ProgressChan is an optional channel for receiving progress events.
	ProgressChan chan<- ProgressEvent
}

// ProgressEvent represents a progress update during a multi-item operation.
type ProgressEvent struct {
	// Stage is "optimizing" or "uploading".
	Stage string
	// Current is the number of items processed so far.
	Current int
	// Total is the total number of items to process.
	Total int
	// Message is a human-readable description of the current operation.
	Message string
	// File is the path of the file currently being processed.
	File string
}

func sendProgress(ch chan<- ProgressEvent, event ProgressEvent) {
	if ch == nil {
		return
	}
	select {
	case ch <- event:
	default:
	}
}

// OptimizeResult describes one optimized file.
type OptimizeResult struct {
	Success          bool   `json:"success"`
	InputPath        string `json:"inputPath"`
	OutputPath       string `json:"outputPath"`
	OriginalSize     string `json:"originalSize"`
	OptimizedSize    string `json:"optimizedSize"`
	OriginalBytes    int64  `json:"originalBytes"`
	OptimizedBytes   int64  `json:"optimizedBytes"`
	CompressionRatio string `json:"compressionRatio"`
	SavedBytes       string `json:"savedBytes"`
	Quality          int    `json:"quality"`
	MaxWidth         int    `json:"maxWidth,omitempty"`
	MaxHeight        int    `json:"maxHeight,omitempty"`
	Command          string `json:"command"`
}

// ThumbnailResult describes a generated thumbnail.
type ThumbnailResult struct {
	Success             bool   `json:"success"`
	InputPath           string `json:"inputPath"`
	OutputPath          string `json:"outputPath"`
	Dimensions          string `json:"dimensions"`
	MaintainAspectRatio bool   `json:"maintainAspectRatio"`
	CropToFit           bool   `json:"cropToFit"`
	FileSize            string `json:"fileSize"`
	FileSizeBytes       int64  `json:"fileSizeBytes"`
	Command             string `json:"command"`
}

// IconFile is one generated icon.
type IconFile struct {
	Size          string `json:"size"`
	Path          string `json:"path"`
	FileSize      string `json:"fileSize"`
	FileSizeBytes int64  `json:"fileSizeBytes"`
}

// IconResult lists one item per requested size, in request order.
type IconResult struct {
	Success   bool                   `json:"success"`
	InputPath string                 `json:"inputPath"`
	OutputDir string                 `json:"outputDir"`
	Format    string                 `json:"format"`
	Generated int                    `json:"generated"`
	Failed    int                    `json:"failed"`
	Icons     []ItemResult[IconFile] `json:"icons"`
}

// ConvertResult describes a converted file. Quality is "N/A" for lossless targets.
type ConvertResult struct {
	Success        bool   `json:"success"`
	InputPath      string `json:"inputPath"`
	OutputPath     string `json:"outputPath"`
	Format         string `json:"format"`
	Quality        any    `json:"quality"`
	OriginalSize   string `json:"originalSize"`
	ConvertedSize  string `json:"convertedSize"`
	OriginalBytes  int64  `json:"originalBytes"`
	ConvertedBytes int64  `json:"convertedBytes"`
	Command        string `json:"command"`
}

// InfoResult carries the parsed metadata and the raw engine dump.
type InfoResult struct {
	Success   bool          `json:"success"`
	ImageInfo ImageMetadata `json:"imageInfo"`
	RawOutput string        `json:"rawOutput"`
}

// BatchResult is the outcome of BatchOptimize.
type BatchResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	InputDir  string `json:"inputDir"`
	OutputDir string `json:"outputDir"`
	BatchSummary
	Results []ItemResult[OptimizeResult] `json:"results"`
}
