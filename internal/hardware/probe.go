package hardware

import (
	"context"

	"github.com/nobucshirai/textify/pkg/executor"
)

// FFProbeAvailable reports whether ffprobe can be invoked. Duration
// estimation is disabled when it cannot.
func FFProbeAvailable(ctx context.Context, exec executor.Executor) bool {
	_, err := exec.Execute(ctx, "ffprobe", "-version")
	return err == nil
}
