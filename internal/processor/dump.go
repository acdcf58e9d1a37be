package processor

import (
	"fmt"
	"os"

	"github.com/nobucshirai/textify/internal/monitor"
)

// dump is the per-file processing log. All writes are best-effort: a nil
// dump (creation failed) swallows them so the job itself is unaffected.
type dump struct {
	f *os.File
}

func createDump(path string) (*dump, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create dump file: %w", err)
	}
	return &dump{f: f}, nil
}

func (d *dump) printf(format string, args ...interface{}) {
	if d == nil || d.f == nil {
		return
	}
	fmt.Fprintf(d.f, format, args...)
}

func (d *dump) close() {
	if d == nil || d.f == nil {
		return
	}
	d.f.Close()
}

// summaryLines renders the resource usage statistics appended to every dump
// file once the sampling session is finalized.
func summaryLines(sum monitor.Summary, gpuPresent bool) []string {
	lines := []string{
		"",
		"--- Resource Usage ---",
		fmt.Sprintf("Samples: %d", sum.Samples),
	}

	if sum.CPUSamples > 0 {
		lines = append(lines, fmt.Sprintf(
			"CPU Usage: Avg=%.2f%%, Min=%.2f%%, Max=%.2f%%",
			sum.CPUAvg, sum.CPUMin, sum.CPUMax))
	} else {
		lines = append(lines, "CPU monitoring disabled")
	}

	if !gpuPresent {
		lines = append(lines, "GPU monitoring disabled")
		return lines
	}

	if sum.GPUSamples > 0 {
		lines = append(lines, fmt.Sprintf(
			"GPU Usage: Avg=%.2f%%, Min=%.2f%%, Max=%.2f%%",
			sum.GPUAvg, sum.GPUMin, sum.GPUMax))
	}
	if sum.PowerSamples > 0 {
		lines = append(lines, fmt.Sprintf(
			"GPU Power: Avg=%.2fW, Min=%.2fW, Max=%.2fW",
			sum.PowerAvg, sum.PowerMin, sum.PowerMax))
		lines = append(lines, fmt.Sprintf(
			"Total GPU Energy Consumption: %.4f Wh", sum.EnergyWh))
	}

	return lines
}
