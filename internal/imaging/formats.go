package imaging

import (
	"path/filepath"
	"slices"
	"strings"
)

// SupportedFormats lists the formats accepted by convert and icon.
var SupportedFormats = []string{"jpg", "jpeg", "png", "webp", "gif", "bmp", "tiff", "ico"}

// lossyFormats take a -quality argument on conversion.
var lossyFormats = []string{"jpg", "jpeg", "webp"}

// DefaultBatchExtensions is the extension filter used when none is given.
var DefaultBatchExtensions = []string{"jpg", "jpeg", "png", "webp"}

// listableExtensions are the files reported by ListImages.
var listableExtensions = []string{"jpg", "jpeg", "png", "webp", "gif", "bmp", "tiff", "tif", "ico", "svg", "heic"}

// NormalizeFormat lowercases a format name and strips a leading dot.
func NormalizeFormat(format string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
}

// IsSupportedFormat reports whether format is in SupportedFormats.
func IsSupportedFormat(format string) bool {
	return slices.Contains(SupportedFormats, NormalizeFormat(format))
}

// IsLossy reports whether format honours -quality.
func IsLossy(format string) bool {
	return slices.Contains(lossyFormats, NormalizeFormat(format))
}

// ValidateFormat fails with KindUnsupportedFormat, listing the accepted set.
func ValidateFormat(op, format string) error {
	if IsSupportedFormat(format) {
		return nil
	}
	return New(KindUnsupportedFormat, op,
		"Unsupported format: "+format+". Supported formats: "+strings.Join(SupportedFormats, ", "))
}

// sameFormat treats jpg and jpeg as one format.
func sameFormat(a, b string) bool {
	a, b = NormalizeFormat(a), NormalizeFormat(b)
	if a == "jpeg" {
		a = "jpg"
	}
	if b == "jpeg" {
		b = "jpg"
	}
	if a == "tif" {
		a = "tiff"
	}
	if b == "tif" {
		b = "tiff"
	}
	return a == b
}

// ExtensionFilter matches file names against a set of extensions,
// case-insensitively.
type ExtensionFilter struct {
	exts []string
}

// NewExtensionFilter builds a filter from extensions given with or without a
// leading dot. An empty list selects DefaultBatchExtensions.
func NewExtensionFilter(extensions []string) ExtensionFilter {
	if len(extensions) == 0 {
		extensions = DefaultBatchExtensions
	}
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if ext = NormalizeFormat(ext); ext != "" {
			exts = append(exts, ext)
		}
	}
	return ExtensionFilter{exts: exts}
}

// Matches reports whether name carries one of the filter's extensions.
func (f ExtensionFilter) Matches(name string) bool {
	ext := NormalizeFormat(filepath.Ext(name))
	return ext != "" && slices.Contains(f.exts, ext)
}

// Extensions returns the normalized extension list.
func (f ExtensionFilter) Extensions() []string {
	return slices.Clone(f.exts)
}
