package monitor

import "time"

// Reading is one sampling tick. Optional fields are nil when the underlying
// query failed or the source is unavailable for that tick.
type Reading struct {
	// Elapsed is the monotonic offset from the session start.
	Elapsed         time.Duration
	CPUPercent      *float64
	GPUPercent      *float64
	GPUPowerWatts   *float64
	GPUTemperatureC *float64
}

// Session is the full record of sampling activity for one monitored job.
// The readings slice is appended to only by the sampling goroutine; callers
// receive a finalized snapshot from Stop.
type Session struct {
	StartedAt time.Time
	EndedAt   time.Time
	Readings  []Reading
}

// Summary holds the statistics derived from a finalized session. Metric
// groups with zero samples leave their avg/min/max fields zeroed.
type Summary struct {
	Samples int

	CPUSamples int
	CPUAvg     float64
	CPUMin     float64
	CPUMax     float64

	GPUSamples int
	GPUAvg     float64
	GPUMin     float64
	GPUMax     float64

	PowerSamples int
	PowerAvg     float64
	PowerMin     float64
	PowerMax     float64

	EnergyWh float64
}

type agg struct {
	n        int
	total    float64
	min, max float64
}

func (a *agg) add(v float64) {
	if a.n == 0 || v < a.min {
		a.min = v
	}
	if a.n == 0 || v > a.max {
		a.max = v
	}
	a.total += v
	a.n++
}

func (a *agg) avg() float64 {
	if a.n == 0 {
		return 0
	}
	return a.total / float64(a.n)
}

// Summarize derives the session statistics, including total GPU energy.
func (s *Session) Summarize() Summary {
	var cpu, gpu, power agg

	for i := range s.Readings {
		r := &s.Readings[i]
		if r.CPUPercent != nil {
			cpu.add(*r.CPUPercent)
		}
		if r.GPUPercent != nil {
			gpu.add(*r.GPUPercent)
		}
		if r.GPUPowerWatts != nil {
			power.add(*r.GPUPowerWatts)
		}
	}

	return Summary{
		Samples:      len(s.Readings),
		CPUSamples:   cpu.n,
		CPUAvg:       cpu.avg(),
		CPUMin:       cpu.min,
		CPUMax:       cpu.max,
		GPUSamples:   gpu.n,
		GPUAvg:       gpu.avg(),
		GPUMin:       gpu.min,
		GPUMax:       gpu.max,
		PowerSamples: power.n,
		PowerAvg:     power.avg(),
		PowerMin:     power.min,
		PowerMax:     power.max,
		EnergyWh:     EnergyWattHours(s.Readings),
	}
}

// EnergyWattHours integrates GPU power over time with the trapezoidal rule
// and converts watt-seconds to watt-hours. Readings without a power value
// are gaps: they contribute nothing, and the previous valid reading remains
// the left endpoint until the next valid reading appears. Fewer than two
// valid readings integrate to zero.
func EnergyWattHours(readings []Reading) float64 {
	var energy float64
	var prev *Reading

	for i := range readings {
		r := &readings[i]
		if r.GPUPowerWatts == nil {
			continue
		}
		if prev != nil {
			dt := (r.Elapsed - prev.Elapsed).Seconds()
			if dt > 0 {
				energy += (*prev.GPUPowerWatts + *r.GPUPowerWatts) / 2 * dt / 3600
			}
		}
		prev = r
	}

	return energy
}
