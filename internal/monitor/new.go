package monitor

import (
	"sync"
	"time"

	"github.com/nobucshirai/textify/internal/logger"
)

const defaultStopTimeout = 5 * time.Second

type implMonitor struct {
	cpu         CPUSource
	gpu         GPUSource
	logger      logger.Logger
	stopTimeout time.Duration

	mu      sync.Mutex
	session *Session
	stop    chan struct{}
	done    chan struct{}
	running bool
}

// New creates a Monitor sampling from the given sources. Either source may
// be nil; the corresponding fields are then absent from every reading.
// stopTimeout bounds how long Stop waits for the sampling goroutine before
// abandoning it; zero or negative selects the default.
func New(cpu CPUSource, gpu GPUSource, stopTimeout time.Duration, log logger.Logger) Monitor {
	if stopTimeout <= 0 {
		stopTimeout = defaultStopTimeout
	}
	return &implMonitor{
		cpu:         cpu,
		gpu:         gpu,
		logger:      log,
		stopTimeout: stopTimeout,
	}
}
