package processor

import (
	"math"
	"testing"
)

func TestEstimateProcessingTime(t *testing.T) {
	tests := []struct {
		name     string
		gpuName  string
		duration float64
		want     float64
		wantOK   bool
	}{
		{
			name:     "RTX 4070 with 600s media",
			gpuName:  "NVIDIA GeForce RTX 4070",
			duration: 600,
			want:     0.1894*600 + 120.2099,
			wantOK:   true,
		},
		{
			name:     "RTX 4060 Ti with 600s media",
			gpuName:  "NVIDIA GeForce RTX 4060 Ti",
			duration: 600,
			want:     0.3162*600 + 40.9230,
			wantOK:   true,
		},
		{
			name:     "RTX 4070 with zero duration yields the intercept",
			gpuName:  "NVIDIA GeForce RTX 4070",
			duration: 0,
			want:     120.2099,
			wantOK:   true,
		},
		{
			name:     "unrecognized GPU produces no estimate",
			gpuName:  "NVIDIA GeForce GTX 1080",
			duration: 600,
			wantOK:   false,
		},
		{
			name:     "CPU-only mode produces no estimate",
			gpuName:  "",
			duration: 600,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := estimateProcessingTime(tt.gpuName, tt.duration)
			if ok != tt.wantOK {
				t.Fatalf("estimateProcessingTime() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("estimateProcessingTime() = %v, want %v", got, tt.want)
			}
		})
	}
}
