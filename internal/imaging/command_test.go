package imaging

import (
	"path/filepath"
	"slices"
	"testing"
)

func TestResizeSpec(t *testing.T) {
	tests := []struct {
		name      string
		maxWidth  int
		maxHeight int
		expected  string
	}{
		{"width only", 100, 0, "100x>"},
		{"height only", 0, 50, "x50>"},
		{"both", 100, 50, "100x50>"},
		{"neither", 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResizeSpec(tt.maxWidth, tt.maxHeight); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestOptimizeInvocation(t *testing.T) {
	tests := []struct {
		name      string
		maxWidth  int
		maxHeight int
		expected  []string
	}{
		{
			name:     "no resize",
			expected: []string{"in.jpg", "-quality", "85", "-strip", "-interlace", "Plane", "out.jpg"},
		},
		{
			name:     "width only",
			maxWidth: 100,
			expected: []string{"in.jpg", "-resize", "100x>", "-quality", "85", "-strip", "-interlace", "Plane", "out.jpg"},
		},
		{
			name:      "both bounds",
			maxWidth:  100,
			maxHeight: 50,
			expected:  []string{"in.jpg", "-resize", "100x50>", "-quality", "85", "-strip", "-interlace", "Plane", "out.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := OptimizeInvocation("in.jpg", "out.jpg", 85, tt.maxWidth, tt.maxHeight)
			if !slices.Equal(inv.Args, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, inv.Args)
			}
		})
	}
}

func TestThumbnailInvocation(t *testing.T) {
	tests := []struct {
		name     string
		maintain bool
		crop     bool
		expected []string
	}{
		{
			name:     "crop to fit",
			maintain: true,
			crop:     true,
			expected: []string{"in.png", "-resize", "200x100^", "-gravity", "center", "-crop", "200x100+0+0", "out.png"},
		},
		{
			name:     "maintain aspect ratio",
			maintain: true,
			expected: []string{"in.png", "-resize", "200x100>", "out.png"},
		},
		{
			name:     "force exact size",
			expected: []string{"in.png", "-resize", "200x100!", "out.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := ThumbnailInvocation("in.png", "out.png", 200, 100, tt.maintain, tt.crop)
			if !slices.Equal(inv.Args, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, inv.Args)
			}
		})
	}
}

func TestIconInvocationAndPath(t *testing.T) {
	path := IconPath(filepath.Join("assets", "logo.svg"), "icons", 32, "PNG")
	if path != filepath.Join("icons", "logo-32x32.png") {
		t.Errorf("Unexpected icon path: %s", path)
	}

	inv := IconInvocation("logo.svg", path, 32)
	expected := []string{"logo.svg", "-resize", "32x32", path}
	if !slices.Equal(inv.Args, expected) {
		t.Errorf("Expected %v, got %v", expected, inv.Args)
	}
}

func TestConvertInvocation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		output   string
		format   string
		expected []string
	}{
		{
			name:     "lossy target gets quality",
			input:    "in.png",
			output:   "out.webp",
			format:   "webp",
			expected: []string{"in.png", "-quality", "90", "out.webp"},
		},
		{
			name:     "lossless target has no quality",
			input:    "in.jpg",
			output:   "out.png",
			format:   "png",
			expected: []string{"in.jpg", "out.png"},
		},
		{
			name:     "jpeg format with jpg extension",
			input:    "in.png",
			output:   "out.jpg",
			format:   "jpeg",
			expected: []string{"in.png", "-quality", "90", "out.jpg"},
		},
		{
			name:     "mismatched extension is prefixed",
			input:    "in.png",
			output:   "out.dat",
			format:   "gif",
			expected: []string{"in.png", "GIF:out.dat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := ConvertInvocation(tt.input, tt.output, tt.format, 90)
			if !slices.Equal(inv.Args, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, inv.Args)
			}
		})
	}
}

func TestInvocationCommand(t *testing.T) {
	inv := IdentifyInvocation("photo.jpg")
	if got := inv.Command(DefaultBinary); got != "magick identify -verbose photo.jpg" {
		t.Errorf("Unexpected command: %q", got)
	}
	if got := VersionInvocation().Command("/opt/im/magick"); got != "/opt/im/magick -version" {
		t.Errorf("Unexpected command: %q", got)
	}
}
