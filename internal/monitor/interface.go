package monitor

import "time"

// CPUSource provides a non-blocking instantaneous CPU utilization sample.
type CPUSource interface {
	Percent() (float64, error)
}

// GPUSource provides per-tick GPU readings. A nil source means GPU queries
// are unavailable and readings degrade to CPU-only.
type GPUSource interface {
	Utilization() (float64, error)
	PowerWatts() (float64, error)
	TemperatureC() (float64, error)
}

// Monitor samples hardware usage in the background for the duration of one
// processing job. Start and Stop bracket exactly one session; sessions never
// overlap on a single Monitor.
type Monitor interface {
	Start(interval time.Duration) error
	Stop() *Session
}
