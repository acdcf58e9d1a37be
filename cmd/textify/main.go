package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/nobucshirai/textify/internal/config"
	"github.com/nobucshirai/textify/internal/files"
	"github.com/nobucshirai/textify/internal/hardware"
	"github.com/nobucshirai/textify/internal/logger"
	"github.com/nobucshirai/textify/internal/processor"
	"github.com/nobucshirai/textify/internal/summarizer"
	"github.com/nobucshirai/textify/internal/watcher"
	"github.com/nobucshirai/textify/pkg/executor"
	"github.com/nobucshirai/textify/pkg/timefmt"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	watch := flag.Bool("watch", false, "watch the input directory for new files and process them")
	verbose := flag.Bool("verbose", false, "enable verbose logging output")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	fileArgs := flag.Args()
	if len(fileArgs) == 0 && cfg.Paths.Input == "" {
		fmt.Fprintln(os.Stderr, "Either provide files as arguments or set paths.input in the config")
		os.Exit(1)
	}
	if len(fileArgs) > 0 && *watch {
		fmt.Fprintln(os.Stderr, "-watch processes paths.input, not an explicit file list")
		os.Exit(1)
	}

	level := cfg.Logging.Level
	if *verbose {
		level = "debug"
	}

	logFile, newLogFile := resolveLogFile(cfg.Paths.LogFile)
	log, err := logger.NewWithFile(level, logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close(log)

	log.Info(ctx, "========================================")
	log.Info(ctx, "Textify - batch transcription and OCR")
	log.Info(ctx, "========================================")

	exec := executor.New()

	gpu, err := hardware.OpenGPU()
	if err != nil {
		log.Info(ctx, "No GPU monitoring available: %v", err)
	}
	defer gpu.Close()

	if !hardware.FFProbeAvailable(ctx, exec) {
		log.Warn(ctx, "ffprobe not available - duration estimation disabled")
	}

	if newLogFile {
		log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
		log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())
		if gpu != nil {
			info := gpu.Info()
			log.Info(ctx, "GPU: %s (driver %s, %d device(s))",
				info.Name, info.DriverVersion, info.DeviceCount)
			log.Info(ctx, "GPU Memory: %.0f MB total, %.0f MB used, %.0f MB free",
				info.MemoryTotalMB, info.MemoryUsedMB, info.MemoryFreeMB)
		}
	}

	var gpuDev processor.GPU
	if gpu != nil {
		gpuDev = gpu
	}

	var summ summarizer.Summarizer
	if cfg.Summary.Enabled {
		summ = summarizer.New(cfg.Summary.APIKeys, cfg.Summary.Model, cfg.Summary.Docx, log)
	}

	cpuSrc := hardware.NewCPU()
	proc := processor.New(cfg, exec, log, cpuSrc, gpuDev, summ)

	eligible := discoverFiles(ctx, cfg, fileArgs, log)
	if len(eligible) == 0 && !*watch {
		log.Info(ctx, "No unprocessed files found")
		fmt.Printf("No unprocessed files found.\nLog file: %s\n", logFile)
		return
	}

	media, documents := files.Split(eligible)
	log.Info(ctx, "Found %d unprocessed files (%d media, %d document/image)",
		len(eligible), len(media), len(documents))

	t0 := time.Now()
	for _, path := range eligible {
		if err := proc.Process(ctx, path); err != nil {
			log.Error(ctx, "Processing failed: %v", err)
		}
	}

	if *watch {
		runWatch(ctx, cfg, proc, log)
	}

	if v, err := cpuSrc.Percent(); err == nil {
		log.Info(ctx, "Final CPU utilization: %.2f%%", v)
	}
	if gpu != nil {
		if v, err := gpu.Utilization(); err == nil {
			log.Info(ctx, "Final GPU utilization: %.0f%%", v)
		}
	}
	log.Info(ctx, "Total batch time: %s", timefmt.Format(time.Since(t0).Seconds()))
	log.Info(ctx, "Log file: %s", logFile)
	fmt.Printf("Log file: %s\n", logFile)
}

// resolveLogFile turns a directory log path into a dated, host-qualified
// file inside it, and reports whether the file is new.
func resolveLogFile(path string) (string, bool) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		host, err := os.Hostname()
		if err != nil {
			host = "unknown"
		}
		path = filepath.Join(path,
			fmt.Sprintf("batch_process_%s_%s.log", host, time.Now().Format("20060102")))
	}

	_, err := os.Stat(path)
	return path, err != nil
}

// discoverFiles resolves the input set: an explicit file list or a scan of
// the configured input directory.
func discoverFiles(ctx context.Context, cfg *config.Config, fileArgs []string, log logger.Logger) []string {
	if len(fileArgs) > 0 {
		eligible, skipped := files.Eligible(fileArgs)
		for path, reason := range skipped {
			switch reason {
			case "already processed":
				log.Info(ctx, "Skipping %s - already processed", path)
			case "not found":
				log.Warn(ctx, "File not found: %s", path)
			default:
				log.Debug(ctx, "Skipping %s: %s", path, reason)
			}
		}
		return eligible
	}

	eligible, err := files.ScanDir(cfg.Paths.Input)
	if err != nil {
		log.Error(ctx, "Failed to scan %s: %v", cfg.Paths.Input, err)
		os.Exit(1)
	}
	return eligible
}

// runWatch blocks on the directory watcher until a shutdown signal arrives.
func runWatch(ctx context.Context, cfg *config.Config, proc processor.Processor, log logger.Logger) {
	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Watching %s for new files. Press Ctrl+C to stop", cfg.Paths.Input)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()
}
