package monitor

import (
	"errors"
	"testing"
	"time"

	"github.com/nobucshirai/textify/internal/logger"
)

type stubCPU struct {
	value float64
	err   error
	delay time.Duration
}

func (s *stubCPU) Percent() (float64, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.value, s.err
}

type stubGPU struct {
	util  float64
	power float64
	temp  float64
	err   error
}

func (s *stubGPU) Utilization() (float64, error)  { return s.util, s.err }
func (s *stubGPU) PowerWatts() (float64, error)   { return s.power, s.err }
func (s *stubGPU) TemperatureC() (float64, error) { return s.temp, s.err }

func newTestMonitor(cpu CPUSource, gpu GPUSource, stopTimeout time.Duration) Monitor {
	return New(cpu, gpu, stopTimeout, logger.New("error"))
}

func TestStartRejectsNonPositiveInterval(t *testing.T) {
	m := newTestMonitor(&stubCPU{value: 10}, nil, 0)

	if err := m.Start(0); err == nil {
		t.Error("Start(0) should return an error")
	}
	if err := m.Start(-time.Second); err == nil {
		t.Error("Start(-1s) should return an error")
	}
}

func TestStartTwiceFails(t *testing.T) {
	m := newTestMonitor(&stubCPU{value: 10}, nil, 0)

	if err := m.Start(time.Hour); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer m.Stop()

	if err := m.Start(time.Hour); err == nil {
		t.Error("second Start() should return an error")
	}
}

func TestStartThenImmediateStop(t *testing.T) {
	m := newTestMonitor(&stubCPU{value: 10}, &stubGPU{power: 100}, 0)

	if err := m.Start(time.Hour); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	session := m.Stop()

	if len(session.Readings) != 0 {
		t.Errorf("session has %d readings, want 0", len(session.Readings))
	}
	if got := session.Summarize().EnergyWh; got != 0 {
		t.Errorf("EnergyWh = %v, want 0", got)
	}
	if session.EndedAt.Before(session.StartedAt) {
		t.Error("EndedAt precedes StartedAt")
	}
}

func TestSamplingCollectsReadings(t *testing.T) {
	m := newTestMonitor(
		&stubCPU{value: 42.5},
		&stubGPU{util: 80, power: 150, temp: 65},
		0,
	)

	if err := m.Start(10 * time.Millisecond); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	session := m.Stop()

	if len(session.Readings) < 3 {
		t.Fatalf("session has %d readings, want at least 3", len(session.Readings))
	}

	for i, r := range session.Readings {
		if r.CPUPercent == nil || *r.CPUPercent != 42.5 {
			t.Errorf("reading %d CPUPercent = %v, want 42.5", i, r.CPUPercent)
		}
		if r.GPUPercent == nil || *r.GPUPercent != 80 {
			t.Errorf("reading %d GPUPercent = %v, want 80", i, r.GPUPercent)
		}
		if r.GPUPowerWatts == nil || *r.GPUPowerWatts != 150 {
			t.Errorf("reading %d GPUPowerWatts = %v, want 150", i, r.GPUPowerWatts)
		}
		if i > 0 && r.Elapsed < session.Readings[i-1].Elapsed {
			t.Errorf("reading %d elapsed %v precedes previous %v",
				i, r.Elapsed, session.Readings[i-1].Elapsed)
		}
	}

	if got := session.Summarize().EnergyWh; got <= 0 {
		t.Errorf("EnergyWh = %v, want > 0 under constant load", got)
	}
}

func TestCPUOnlyWhenGPUUnavailable(t *testing.T) {
	m := newTestMonitor(&stubCPU{value: 25}, nil, 0)

	if err := m.Start(10 * time.Millisecond); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	session := m.Stop()

	if len(session.Readings) == 0 {
		t.Fatal("expected readings in degraded CPU-only mode")
	}
	for i, r := range session.Readings {
		if r.CPUPercent == nil {
			t.Errorf("reading %d missing CPU value", i)
		}
		if r.GPUPercent != nil || r.GPUPowerWatts != nil || r.GPUTemperatureC != nil {
			t.Errorf("reading %d has GPU fields without a GPU source", i)
		}
	}
	if got := session.Summarize().EnergyWh; got != 0 {
		t.Errorf("EnergyWh = %v, want 0 without power readings", got)
	}
}

func TestFailedCPUReadStillAppendsReading(t *testing.T) {
	m := newTestMonitor(&stubCPU{err: errors.New("proc read failed")}, nil, 0)

	if err := m.Start(10 * time.Millisecond); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	session := m.Stop()

	if len(session.Readings) == 0 {
		t.Fatal("readings should still be appended when the CPU read fails")
	}
	for i, r := range session.Readings {
		if r.CPUPercent != nil {
			t.Errorf("reading %d has a CPU value despite read failure", i)
		}
	}
}

func TestGPUQueryFailureDegradesReadingOnly(t *testing.T) {
	m := newTestMonitor(
		&stubCPU{value: 15},
		&stubGPU{err: errors.New("driver call failed")},
		0,
	)

	if err := m.Start(10 * time.Millisecond); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	session := m.Stop()

	if len(session.Readings) == 0 {
		t.Fatal("expected readings despite GPU query failures")
	}
	for i, r := range session.Readings {
		if r.CPUPercent == nil {
			t.Errorf("reading %d lost its CPU value", i)
		}
		if r.GPUPowerWatts != nil {
			t.Errorf("reading %d has power despite driver failure", i)
		}
	}
}

func TestStopTimeoutReturnsPartialSession(t *testing.T) {
	// Each sample blocks far longer than the stop timeout, so Stop must
	// abandon the goroutine instead of waiting for it.
	m := newTestMonitor(&stubCPU{value: 5, delay: 2 * time.Second}, nil, 50*time.Millisecond)

	if err := m.Start(5 * time.Millisecond); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(20 * time.Millisecond) // let the sampler enter its blocking read

	stopStart := time.Now()
	session := m.Stop()
	elapsed := time.Since(stopStart)

	if elapsed > time.Second {
		t.Fatalf("Stop() took %v, should be bounded by the stop timeout", elapsed)
	}
	if session == nil {
		t.Fatal("Stop() returned nil session")
	}
	if session.EndedAt.IsZero() {
		t.Error("abandoned session was not finalized")
	}
}

func TestSamplingDoesNotBlockCaller(t *testing.T) {
	m := newTestMonitor(&stubCPU{value: 10}, &stubGPU{util: 50, power: 90, temp: 60}, 0)

	start := time.Now()
	if err := m.Start(5 * time.Millisecond); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if since := time.Since(start); since > 100*time.Millisecond {
		t.Errorf("Start() blocked for %v", since)
	}

	// Simulate the monitored job doing real work while sampling runs.
	deadline := time.Now().Add(50 * time.Millisecond)
	x := 0
	for time.Now().Before(deadline) {
		x++
	}
	if x == 0 {
		t.Error("job made no progress while monitored")
	}

	session := m.Stop()
	if len(session.Readings) == 0 {
		t.Error("sampler made no progress while the job ran")
	}
}

func TestStopWithoutStart(t *testing.T) {
	m := newTestMonitor(&stubCPU{value: 10}, nil, 0)

	session := m.Stop()
	if session == nil {
		t.Fatal("Stop() before Start() returned nil")
	}
	if len(session.Readings) != 0 {
		t.Errorf("unexpected readings: %d", len(session.Readings))
	}
}
