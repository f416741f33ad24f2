package imaging

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// EnsureDirectory creates the parent directory of target, including any
// missing ancestors. It is a no-op when the directory already exists.
func EnsureDirectory(target string) error {
	return EnsureDir(filepath.Dir(target))
}

// EnsureDir creates dir and any missing ancestors.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ValidateInputExists fails with KindInputNotFound when path does not exist.
func ValidateInputExists(op, path string) error {
	if !FileExists(path) {
		return New(KindInputNotFound, op, "Input file does not exist: "+path)
	}
	return nil
}

// ValidateDirectory fails with KindDirectoryNotFound unless dir is an existing directory.
func ValidateDirectory(op, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return Wrap(KindDirectoryNotFound, op, "Input directory does not exist: "+dir, err)
	}
	if !info.IsDir() {
		return New(KindDirectoryNotFound, op, "Input path is not a directory: "+dir)
	}
	return nil
}

// SizeOf returns the size of path in bytes, or 0 when it cannot be read.
func SizeOf(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// FormatSize renders bytes using the largest unit whose quotient is at least
// one, rounded to two decimals: 0 -> "0 Bytes", 1536 -> "1.5 KB".
// Negative values keep their sign.
func FormatSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}

	value := math.Abs(float64(bytes))
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}

	value = math.Round(value*100) / 100
	if bytes < 0 {
		value = -value
	}
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[unit]
}

// CompressionRatio renders (original-result)/original as a percentage with
// two decimals. A zero original yields "0%".
func CompressionRatio(original, result int64) string {
	if original == 0 {
		return "0%"
	}
	ratio := float64(original-result) / float64(original) * 100
	return strconv.FormatFloat(ratio, 'f', 2, 64) + "%"
}
