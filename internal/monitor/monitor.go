package monitor

import (
	"context"
	"fmt"
	"time"
)

// Start begins sampling on a background goroutine. The first sample fires
// one interval after the session starts, so a session stopped before its
// first tick holds zero readings. The stop signal is only checked between
// ticks; drift is acceptable and no catch-up compensation is attempted.
func (m *implMonitor) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("sampling interval must be positive, got %v", interval)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return fmt.Errorf("monitor already running")
	}

	m.session = &Session{StartedAt: time.Now()}
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	m.running = true

	go m.loop(interval, m.session, m.stop, m.done)

	return nil
}

// Stop signals the sampling goroutine and waits for it to exit, bounded by
// the stop timeout. On timeout the goroutine is abandoned and the session is
// finalized with whatever readings were collected; the caller is never
// blocked indefinitely. The returned session is a snapshot, so a late append
// from an abandoned goroutine cannot corrupt it.
func (m *implMonitor) Stop() *Session {
	m.mu.Lock()
	if !m.running {
		session := m.session
		m.mu.Unlock()
		if session == nil {
			return &Session{}
		}
		return session
	}
	stop, done, session := m.stop, m.done, m.session
	m.running = false
	m.mu.Unlock()

	close(stop)

	select {
	case <-done:
	case <-time.After(m.stopTimeout):
		m.logger.Warn(context.Background(),
			"Resource sampler did not stop within %v, abandoning it", m.stopTimeout)
	}

	m.mu.Lock()
	finalized := &Session{
		StartedAt: session.StartedAt,
		EndedAt:   time.Now(),
		Readings:  append([]Reading(nil), session.Readings...),
	}
	m.mu.Unlock()

	return finalized
}

func (m *implMonitor) loop(interval time.Duration, session *Session, stop, done chan struct{}) {
	defer close(done)

	start := session.StartedAt

	for {
		select {
		case <-stop:
			return
		case <-time.After(interval):
			m.sample(session, start)
		}
	}
}

// sample takes one reading. Every query failure degrades only its own field;
// the reading is appended regardless so the sample count reflects elapsed
// ticks.
func (m *implMonitor) sample(session *Session, start time.Time) {
	ctx := context.Background()
	r := Reading{Elapsed: time.Since(start)}

	if m.cpu != nil {
		if v, err := m.cpu.Percent(); err == nil {
			r.CPUPercent = &v
		} else {
			m.logger.Warn(ctx, "Error monitoring CPU: %v", err)
		}
	}

	if m.gpu != nil {
		if v, err := m.gpu.Utilization(); err == nil {
			r.GPUPercent = &v
		} else {
			m.logger.Debug(ctx, "Error monitoring GPU utilization: %v", err)
		}
		if v, err := m.gpu.PowerWatts(); err == nil {
			r.GPUPowerWatts = &v
		} else {
			m.logger.Debug(ctx, "Error monitoring GPU power: %v", err)
		}
		if v, err := m.gpu.TemperatureC(); err == nil {
			r.GPUTemperatureC = &v
		} else {
			m.logger.Debug(ctx, "Error monitoring GPU temperature: %v", err)
		}
	}

	m.mu.Lock()
	session.Readings = append(session.Readings, r)
	m.mu.Unlock()
}
