package imaging

// ItemResult is the outcome of one item in a multi-item operation.
// Exactly one of Error and Result is set. Path names the output the item
// targeted, when the operation knows it up front.
type ItemResult[T any] struct {
	Key     string `json:"key"`
	Path    string `json:"path,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Result  *T     `json:"result,omitempty"`
}

func succeeded[T any](key string, result T) ItemResult[T] {
	return ItemResult[T]{Key: key, Success: true, Result: &result}
}

func failed[T any](key string, err error) ItemResult[T] {
	return ItemResult[T]{Key: key, Success: false, Error: err.Error()}
}

func (r ItemResult[T]) at(path string) ItemResult[T] {
	r.Path = path
	return r
}

// CountResults returns the number of successful and failed items.
func CountResults[T any](items []ItemResult[T]) (ok, bad int) {
	for _, item := range items {
		if item.Success {
			ok++
		} else {
			bad++
		}
	}
	return ok, bad
}

// BatchSummary aggregates the items of a batch optimization. Byte totals
// cover successful items only.
type BatchSummary struct {
	TotalFiles            int    `json:"totalFiles"`
	ProcessedFiles        int    `json:"processedFiles"`
	FailedFiles           int    `json:"failedFiles"`
	TotalOriginalBytes    int64  `json:"totalOriginalBytes"`
	TotalOptimizedBytes   int64  `json:"totalOptimizedBytes"`
	TotalOriginalSize     string `json:"totalOriginalSize"`
	TotalOptimizedSize    string `json:"totalOptimizedSize"`
	TotalCompressionRatio string `json:"totalCompressionRatio"`
	TotalSavedBytes       string `json:"totalSavedBytes"`
}

// Summarize folds item results into a BatchSummary.
func Summarize(items []ItemResult[OptimizeResult]) BatchSummary {
	summary := BatchSummary{TotalFiles: len(items)}
	for _, item := range items {
		if !item.Success || item.Result == nil {
			summary.FailedFiles++
			continue
		}
		summary.ProcessedFiles++
		summary.TotalOriginalBytes += item.Result.OriginalBytes
		summary.TotalOptimizedBytes += item.Result.OptimizedBytes
	}

	summary.TotalOriginalSize = FormatSize(summary.TotalOriginalBytes)
	summary.TotalOptimizedSize = FormatSize(summary.TotalOptimizedBytes)
	summary.TotalCompressionRatio = CompressionRatio(summary.TotalOriginalBytes, summary.TotalOptimizedBytes)
	summary.TotalSavedBytes = FormatSize(summary.TotalOriginalBytes - summary.TotalOptimizedBytes)
	return summary
}
