package processor

import (
	"context"
	"strconv"
	"strings"
)

// mediaDuration returns the duration of a media file in seconds via
// ffprobe, or 0 when ffprobe is unavailable or its output cannot be parsed.
// Duration is only used for the processing-time estimate, so failures are
// logged and tolerated.
func (p *implProcessor) mediaDuration(ctx context.Context, path string) float64 {
	out, err := p.executor.Execute(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		p.logger.Warn(ctx, "ffprobe error: %v", err)
		return 0
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		p.logger.Warn(ctx, "Could not parse duration: %q", out)
		return 0
	}

	return duration
}
