package hardware

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
)

// CPU samples system-wide CPU utilization without blocking: each Percent
// call reports usage since the previous call.
type CPU struct{}

// NewCPU primes the first sample so the next Percent call returns a
// meaningful short-window value instead of usage since boot.
func NewCPU() *CPU {
	cpu.Percent(0, false)
	return &CPU{}
}

// Percent returns the CPU utilization percentage since the last call.
func (c *CPU) Percent() (float64, error) {
	values, err := cpu.Percent(0, false)
	if err != nil {
		return 0, fmt.Errorf("cpu percent: %w", err)
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("cpu percent: no sample")
	}
	return values[0], nil
}
