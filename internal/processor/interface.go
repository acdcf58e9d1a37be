package processor

import (
	"context"

	"github.com/nobucshirai/textify/internal/monitor"
)

// Processor defines the interface for per-file processing operations
type Processor interface {
	Process(ctx context.Context, path string) error
}

// GPU exposes the device queries the processor needs: the sampling reads
// plus the model name used for the processing-time estimate and the
// utilization threshold check.
type GPU interface {
	monitor.GPUSource
	Name() string
}
