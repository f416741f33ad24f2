package imaging

import (
	"errors"
	"testing"
)

func TestSummarize(t *testing.T) {
	items := []ItemResult[OptimizeResult]{
		succeeded("a.jpg", OptimizeResult{OriginalBytes: 2048, OptimizedBytes: 1024}),
		failed[OptimizeResult]("b.jpg", errors.New("corrupt")),
		succeeded("c.png", OptimizeResult{OriginalBytes: 2048, OptimizedBytes: 1024}),
	}

	summary := Summarize(items)

	if summary.TotalFiles != 3 {
		t.Errorf("Expected 3 total files, got %d", summary.TotalFiles)
	}
	if summary.ProcessedFiles != 2 || summary.FailedFiles != 1 {
		t.Errorf("Expected 2 processed and 1 failed, got %d and %d", summary.ProcessedFiles, summary.FailedFiles)
	}
	if summary.TotalOriginalBytes != 4096 || summary.TotalOptimizedBytes != 2048 {
		t.Errorf("Unexpected byte totals: %d -> %d", summary.TotalOriginalBytes, summary.TotalOptimizedBytes)
	}
	if summary.TotalOriginalSize != "4 KB" || summary.TotalOptimizedSize != "2 KB" {
		t.Errorf("Unexpected formatted totals: %s -> %s", summary.TotalOriginalSize, summary.TotalOptimizedSize)
	}
	if summary.TotalCompressionRatio != "50.00%" {
		t.Errorf("Expected 50.00%%, got %s", summary.TotalCompressionRatio)
	}
	if summary.TotalSavedBytes != "2 KB" {
		t.Errorf("Expected 2 KB saved, got %s", summary.TotalSavedBytes)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	if summary.TotalFiles != 0 || summary.ProcessedFiles != 0 || summary.FailedFiles != 0 {
		t.Errorf("Expected zero counts, got %+v", summary)
	}
	if summary.TotalCompressionRatio != "0%" {
		t.Errorf("Expected 0%%, got %s", summary.TotalCompressionRatio)
	}
	if summary.TotalOriginalSize != "0 Bytes" {
		t.Errorf("Expected 0 Bytes, got %s", summary.TotalOriginalSize)
	}
}

func TestSummarizeAllFailed(t *testing.T) {
	items := []ItemResult[OptimizeResult]{
		failed[OptimizeResult]("a.jpg", errors.New("x")),
		failed[OptimizeResult]("b.jpg", errors.New("y")),
	}

	summary := Summarize(items)
	if summary.TotalFiles != 2 || summary.FailedFiles != 2 || summary.ProcessedFiles != 0 {
		t.Errorf("Unexpected counts: %+v", summary)
	}
	if summary.TotalCompressionRatio != "0%" {
		t.Errorf("Expected 0%% with no successful bytes, got %s", summary.TotalCompressionRatio)
	}
}

func TestCountResults(t *testing.T) {
	items := []ItemResult[IconFile]{
		succeeded("16x16", IconFile{}),
		failed[IconFile]("32x32", errors.New("boom")),
		succeeded("64x64", IconFile{}),
	}

	ok, bad := CountResults(items)
	if ok != 2 || bad != 1 {
		t.Errorf("Expected 2 ok and 1 failed, got %d and %d", ok, bad)
	}
	if items[1].Error != "boom" || items[1].Result != nil {
		t.Errorf("Expected failed item to carry only the error, got %+v", items[1])
	}
}
