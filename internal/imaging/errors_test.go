package imaging

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "without cause",
			err:      New(KindInputNotFound, "optimize", "Input file does not exist: a.jpg"),
			expected: "Input file does not exist: a.jpg",
		},
		{
			name:     "with cause",
			err:      Wrap(KindEngineExecutionFailed, "convert", "failed to convert image", errors.New("magick: no decode delegate")),
			expected: "failed to convert image: magick: no decode delegate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	base := New(KindUnsupportedFormat, "convert", "Unsupported format: xyz")
	wrapped := fmt.Errorf("tool call: %w", withOp("convert", "convert image", base))

	if !IsKind(wrapped, KindUnsupportedFormat) {
		t.Error("Expected wrapped error to carry unsupported_format")
	}
	if IsKind(wrapped, KindInputNotFound) {
		t.Error("Expected wrapped error not to carry input_not_found")
	}
	if IsKind(errors.New("plain"), KindInputNotFound) {
		t.Error("Expected plain error not to match any kind")
	}
	if IsKind(nil, KindInputNotFound) {
		t.Error("Expected nil not to match any kind")
	}
}

func TestWithOpKeepsKind(t *testing.T) {
	err := withOp("optimize", "optimize image", New(KindEngineNotInstalled, "check_engine", msgEngineNotInstalled))
	if KindOf(err) != KindEngineNotInstalled {
		t.Errorf("Expected engine_not_installed, got %q", KindOf(err))
	}

	err = withOp("optimize", "optimize image", errors.New("boom"))
	if KindOf(err) != KindEngineExecutionFailed {
		t.Errorf("Expected engine_execution_failed for untyped cause, got %q", KindOf(err))
	}
	if err.Error() != "failed to optimize image: boom" {
		t.Errorf("Unexpected message: %q", err.Error())
	}

	if withOp("optimize", "optimize image", nil) != nil {
		t.Error("Expected nil for nil error")
	}
}
