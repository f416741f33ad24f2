package imaging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBatchOptimize(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")
	createFile(t, inputDir, "a.jpg", 400)
	createFile(t, inputDir, "B.PNG", 400)
	createFile(t, inputDir, "broken.webp", 400)
	createFile(t, inputDir, "notes.txt", 400)
	createFile(t, inputDir, filepath.Join("sub.jpg", "inner.jpg"), 400)

	engine := newFakeEngine()
	engine.failOn = func(inv Invocation) string {
		if strings.HasSuffix(inv.Args[0], "broken.webp") {
			return "magick: corrupt image"
		}
		return ""
	}

	progress := make(chan ProgressEvent, 10)
	result, err := NewImageProcessor(engine).BatchOptimize(testCtx, BatchOptions{
		InputDir:     inputDir,
		OutputDir:    outputDir,
		Quality:      70,
		ProgressChan: progress,
	})
	if err != nil {
		t.Fatalf("BatchOptimize failed: %v", err)
	}
	close(progress)

	if !result.Success {
		t.Error("Expected batch success")
	}
	if result.TotalFiles != 3 {
		t.Errorf("Expected 3 matching files, got %d", result.TotalFiles)
	}
	if result.ProcessedFiles != 2 || result.FailedFiles != 1 {
		t.Errorf("Expected 2 processed and 1 failed, got %d and %d", result.ProcessedFiles, result.FailedFiles)
	}
	if len(result.Results) != result.TotalFiles {
		t.Errorf("Expected one result per file, got %d", len(result.Results))
	}

	// os.ReadDir sorts by name: "B.PNG" < "a.jpg" < "broken.webp"
	keys := []string{result.Results[0].Key, result.Results[1].Key, result.Results[2].Key}
	if strings.Join(keys, ",") != "B.PNG,a.jpg,broken.webp" {
		t.Errorf("Unexpected result order: %v", keys)
	}
	if result.Results[2].Success || result.Results[2].Error != "failed to optimize image: magick: corrupt image" {
		t.Errorf("Expected broken.webp failure, got %+v", result.Results[2])
	}

	if result.TotalOriginalBytes != 800 || result.TotalOptimizedBytes != 200 {
		t.Errorf("Expected totals over successful items only, got %d -> %d", result.TotalOriginalBytes, result.TotalOptimizedBytes)
	}
	if result.TotalCompressionRatio != "75.00%" {
		t.Errorf("Expected 75.00%%, got %s", result.TotalCompressionRatio)
	}
	if !FileExists(filepath.Join(outputDir, "a.jpg")) {
		t.Error("Expected output written under the same name")
	}
	if engine.versionChecks() != 1 {
		t.Errorf("Expected a single version check for the batch, got %d", engine.versionChecks())
	}

	events := 0
	for event := range progress {
		events++
		if event.Total != 3 || event.Stage != "optimizing" {
			t.Errorf("Unexpected event: %+v", event)
		}
	}
	if events != 3 {
		t.Errorf("Expected 3 progress events, got %d", events)
	}
}

func TestBatchOptimizeNoMatches(t *testing.T) {
	inputDir := t.TempDir()
	createFile(t, inputDir, "readme.md", 10)

	engine := newFakeEngine()
	result, err := NewImageProcessor(engine).BatchOptimize(testCtx, BatchOptions{
		InputDir:  inputDir,
		OutputDir: filepath.Join(t.TempDir(), "out"),
	})
	if err != nil {
		t.Fatalf("BatchOptimize failed: %v", err)
	}
	if !result.Success || result.ProcessedFiles != 0 || result.TotalFiles != 0 {
		t.Errorf("Expected empty success, got %+v", result)
	}
	if len(result.Results) != 0 || result.Results == nil {
		t.Errorf("Expected empty non-nil results, got %v", result.Results)
	}
	if result.Message != "No image files found to process" {
		t.Errorf("Unexpected message: %q", result.Message)
	}
	if engine.callCount() != 0 {
		t.Errorf("Expected no optimize calls, got %d", engine.callCount())
	}
}

func TestBatchOptimizeCustomExtensions(t *testing.T) {
	inputDir := t.TempDir()
	createFile(t, inputDir, "a.gif", 10)
	createFile(t, inputDir, "b.jpg", 10)

	result, err := NewImageProcessor(newFakeEngine()).BatchOptimize(testCtx, BatchOptions{
		InputDir:   inputDir,
		OutputDir:  t.TempDir(),
		Extensions: []string{".GIF"},
	})
	if err != nil {
		t.Fatalf("BatchOptimize failed: %v", err)
	}
	if result.TotalFiles != 1 || result.Results[0].Key != "a.gif" {
		t.Errorf("Expected only a.gif, got %+v", result.Results)
	}
}

func TestBatchOptimizeMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	engine := newFakeEngine()
	_, err := NewImageProcessor(engine).BatchOptimize(testCtx, BatchOptions{InputDir: missing, OutputDir: t.TempDir()})
	if !IsKind(err, KindDirectoryNotFound) {
		t.Fatalf("Expected directory_not_found, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "Input directory does not exist: "+missing) {
		t.Errorf("Unexpected message: %q", err.Error())
	}
	if engine.versionChecks() != 0 {
		t.Error("Expected no version check for a missing directory")
	}
}

func TestBatchOptimizeEngineMissing(t *testing.T) {
	inputDir := t.TempDir()
	createFile(t, inputDir, "a.jpg", 10)
	outputDir := filepath.Join(t.TempDir(), "out")

	engine := newFakeEngine()
	engine.versionErr = os.ErrNotExist
	_, err := NewImageProcessor(engine).BatchOptimize(testCtx, BatchOptions{InputDir: inputDir, OutputDir: outputDir})
	if !IsKind(err, KindEngineNotInstalled) {
		t.Fatalf("Expected engine_not_installed, got %v", err)
	}
	if engine.versionChecks() != 1 {
		t.Errorf("Expected the version check not to be retried within the request, got %d", engine.versionChecks())
	}
	if FileExists(outputDir) {
		t.Error("Expected output directory not to be created")
	}
}
