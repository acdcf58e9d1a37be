package processor

import (
	"sync"

	"github.com/nobucshirai/textify/internal/config"
	"github.com/nobucshirai/textify/internal/logger"
	"github.com/nobucshirai/textify/internal/monitor"
	"github.com/nobucshirai/textify/internal/summarizer"
	"github.com/nobucshirai/textify/pkg/executor"
)

type implProcessor struct {
	cfg        *config.Config
	executor   executor.Executor
	logger     logger.Logger
	cpu        monitor.CPUSource
	gpu        GPU                   // nil when no device is available
	summarizer summarizer.Summarizer // nil when disabled

	// jobMu serializes monitored jobs: resource sampling sessions never
	// overlap within one process.
	jobMu sync.Mutex
}

// New creates a new Processor instance. gpu and summ may be nil.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger,
	cpu monitor.CPUSource, gpu GPU, summ summarizer.Summarizer) Processor {
	return &implProcessor{
		cfg:        cfg,
		executor:   exec,
		logger:     log,
		cpu:        cpu,
		gpu:        gpu,
		summarizer: summ,
	}
}
