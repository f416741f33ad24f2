package imaging

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultBinary is the engine executable looked up on PATH.
const DefaultBinary = "magick"

// Invocation is the argument vector for one engine call, binary excluded.
type Invocation struct {
	Args []string
}

// Command renders the invocation as a display string prefixed by binary.
// Arguments are joined with single spaces and never quoted.
func (i Invocation) Command(binary string) string {
	return strings.Join(append([]string{binary}, i.Args...), " ")
}

// ResizeSpec returns the shrink-only geometry for the given bounds, or "" when
// neither is set: "WxH>", "Wx>" or "xH>".
func ResizeSpec(maxWidth, maxHeight int) string {
	switch {
	case maxWidth > 0 && maxHeight > 0:
		return fmt.Sprintf("%dx%d>", maxWidth, maxHeight)
	case maxWidth > 0:
		return fmt.Sprintf("%dx>", maxWidth)
	case maxHeight > 0:
		return fmt.Sprintf("x%d>", maxHeight)
	default:
		return ""
	}
}

// OptimizeInvocation builds "<in> [-resize spec] -quality q -strip -interlace Plane <out>".
func OptimizeInvocation(input, output string, quality, maxWidth, maxHeight int) Invocation {
	args := []string{input}
	if spec := ResizeSpec(maxWidth, maxHeight); spec != "" {
		args = append(args, "-resize", spec)
	}
	args = append(args,
		"-quality", strconv.Itoa(quality),
		"-strip",
		"-interlace", "Plane",
		output,
	)
	return Invocation{Args: args}
}

// ThumbnailInvocation picks one of three resize modes. cropToFit wins over
// maintainAspectRatio; with neither the image is forced to the exact size.
func ThumbnailInvocation(input, output string, width, height int, maintainAspectRatio, cropToFit bool) Invocation {
	dims := fmt.Sprintf("%dx%d", width, height)
	args := []string{input}
	switch {
	case cropToFit:
		args = append(args, "-resize", dims+"^", "-gravity", "center", "-crop", dims+"+0+0")
	case maintainAspectRatio:
		args = append(args, "-resize", dims+">")
	default:
		args = append(args, "-resize", dims+"!")
	}
	args = append(args, output)
	return Invocation{Args: args}
}

// IconInvocation resizes to a size x size bounding box.
func IconInvocation(input, output string, size int) Invocation {
	return Invocation{Args: []string{input, "-resize", fmt.Sprintf("%dx%d", size, size), output}}
}

// IconPath is "<outputDir>/<input base name>-SxS.<format>".
func IconPath(input, outputDir string, size int, format string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(outputDir, fmt.Sprintf("%s-%dx%d.%s", base, size, size, NormalizeFormat(format)))
}

// ConvertInvocation adds -quality only for lossy targets. When the output
// extension does not name the target format the output is written as
// "FORMAT:path" so the engine does not infer it from the extension.
func ConvertInvocation(input, output, format string, quality int) Invocation {
	args := []string{input}
	if IsLossy(format) {
		args = append(args, "-quality", strconv.Itoa(quality))
	}
	if !sameFormat(filepath.Ext(output), format) {
		output = strings.ToUpper(NormalizeFormat(format)) + ":" + output
	}
	args = append(args, output)
	return Invocation{Args: args}
}

// IdentifyInvocation requests the verbose metadata dump.
func IdentifyInvocation(path string) Invocation {
	return Invocation{Args: []string{"identify", "-verbose", path}}
}

// VersionInvocation checks that the engine is installed.
func VersionInvocation() Invocation {
	return Invocation{Args: []string{"-version"}}
}
