package imaging

import (
	"strconv"
	"strings"
)

// ImageMetadata is the typed view of an image. Optional fields stay unset
// when the engine did not report them.
type ImageMetadata struct {
	Path          string            `json:"path"`
	FileSize      string            `json:"fileSize"`
	FileSizeBytes int64             `json:"fileSizeBytes"`
	Format        string            `json:"format,omitempty"`
	Dimensions    string            `json:"dimensions,omitempty"`
	Width         *int              `json:"width,omitempty"`
	Height        *int              `json:"height,omitempty"`
	Resolution    string            `json:"resolution,omitempty"`
	Colorspace    string            `json:"colorspace,omitempty"`
	Depth         string            `json:"depth,omitempty"`
	Quality       string            `json:"quality,omitempty"`
	Exif          map[string]string `json:"exif,omitempty"`
}

// identifyLabels are tested in this order on every line.
var identifyLabels = []string{"Format:", "Geometry:", "Resolution:", "Colorspace:", "Depth:", "Quality:"}

// ParseIdentify extracts the image-level fields from an "identify -verbose"
// dump. Only the first occurrence of each label is used, since channel and
// frame sections repeat some of them later in the output. Unrecognised lines
// are ignored; parsing never fails.
func ParseIdentify(raw string) ImageMetadata {
	var meta ImageMetadata
	seen := make(map[string]bool, len(identifyLabels))

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, label := range identifyLabels {
			idx := strings.Index(trimmed, label)
			if idx < 0 {
				continue
			}
			if !seen[label] {
				seen[label] = true
				applyIdentifyField(&meta, label, strings.TrimSpace(trimmed[idx+len(label):]))
			}
			break
		}
	}
	return meta
}

func applyIdentifyField(meta *ImageMetadata, label, value string) {
	switch label {
	case "Format:":
		if fields := strings.Fields(value); len(fields) > 0 {
			meta.Format = fields[0]
		}
	case "Geometry:":
		dims, _, _ := strings.Cut(value, "+")
		meta.Dimensions = dims
		meta.Width, meta.Height = parseDimensions(dims)
	case "Resolution:":
		meta.Resolution = value
	case "Colorspace:":
		meta.Colorspace = value
	case "Depth:":
		meta.Depth = value
	case "Quality:":
		meta.Quality = value
	}
}

// parseDimensions splits "WxH" and returns both values only when both parse.
func parseDimensions(dims string) (*int, *int) {
	w, h, ok := strings.Cut(dims, "x")
	if !ok {
		return nil, nil
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return nil, nil
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return nil, nil
	}
	return &width, &height
}
