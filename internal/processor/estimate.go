package processor

import "strings"

// Per-GPU-model linear coefficients for processing-time estimation:
// estimated seconds = slope * media duration + intercept.
var processingTimeModels = []struct {
	model     string
	slope     float64
	intercept float64
}{
	{"RTX 4070", 0.1894, 120.2099},
	{"RTX 4060 Ti", 0.3162, 40.9230},
}

// estimateProcessingTime returns the estimated processing time in seconds
// for a known GPU model. Unrecognized GPUs and CPU-only mode produce no
// estimate; that is normal operation, not an error.
func estimateProcessingTime(gpuName string, durationSeconds float64) (float64, bool) {
	if gpuName == "" {
		return 0, false
	}
	for _, m := range processingTimeModels {
		if strings.Contains(gpuName, m.model) {
			return m.slope*durationSeconds + m.intercept, true
		}
	}
	return 0, false
}
