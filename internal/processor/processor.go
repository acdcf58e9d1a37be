package processor

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nobucshirai/textify/internal/files"
	"github.com/nobucshirai/textify/internal/monitor"
	"github.com/nobucshirai/textify/pkg/timefmt"
)

// Process runs the full pipeline for one file: start a resource sampling
// session, transcribe or OCR, write the transcript and the structured dump,
// then finalize the session and append its summary to the dump. Monitoring
// failures never abort the job.
func (p *implProcessor) Process(ctx context.Context, path string) error {
	if files.IsProcessed(path) {
		p.logger.Info(ctx, "Skipping %s - already processed", path)
		return nil
	}

	category := files.Categorize(path)
	if category == files.CategoryUnknown {
		p.logger.Debug(ctx, "Ignoring unsupported file: %s", path)
		return nil
	}

	p.jobMu.Lock()
	defer p.jobMu.Unlock()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing: %s", path)

	mon := monitor.New(p.cpu, p.gpuSource(), p.stopTimeout(), p.logger)
	if err := mon.Start(time.Duration(p.cfg.Monitoring.IntervalSeconds) * time.Second); err != nil {
		p.logger.Warn(ctx, "Resource monitoring disabled for this job: %v", err)
	}

	startTime := time.Now()

	d, err := createDump(files.DumpPath(path))
	if err != nil {
		p.logger.Error(ctx, "Failed to create dump file: %v", err)
	}
	d.printf("Start: %s\n", startTime.Format("2006-01-02 15:04:05"))

	var text string
	var procErr error
	switch category {
	case files.CategoryMedia:
		text, procErr = p.processMedia(ctx, path, d)
	case files.CategoryDocument:
		text, procErr = p.processDocument(ctx, path, d)
	}

	if procErr != nil {
		d.printf("\nERROR: %v\n", procErr)
	} else {
		d.printf("%s", text)
		// The transcript doubles as the processed marker, so it is only
		// written on success and failed files stay eligible for a retry.
		txtPath := files.TranscriptPath(path)
		if err := os.WriteFile(txtPath, []byte(text), 0644); err != nil {
			procErr = fmt.Errorf("write transcript: %w", err)
			d.printf("\nERROR: %v\n", procErr)
		}
	}

	elapsed := time.Since(startTime)
	session := mon.Stop()

	d.printf("\n\n--- Summary ---\n")
	d.printf("End: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	d.printf("Actual: %s\n", timefmt.Format(elapsed.Seconds()))
	for _, line := range summaryLines(session.Summarize(), p.gpu != nil) {
		d.printf("%s\n", line)
	}
	d.close()

	if procErr != nil {
		p.logger.Error(ctx, "Failed to process %s: %v", path, procErr)
		return fmt.Errorf("process %s: %w", path, procErr)
	}

	p.logger.Info(ctx, "Finished %s in %s", path, timefmt.Format(elapsed.Seconds()))

	if category == files.CategoryMedia && p.summarizer != nil {
		if err := p.summarizer.Summarize(ctx, files.TranscriptPath(path), text); err != nil {
			p.logger.Warn(ctx, "Failed to summarize %s: %v", path, err)
		}
	}

	return nil
}

// gpuSource adapts the optional GPU into a monitor source, keeping the
// interface value nil when no device is present.
func (p *implProcessor) gpuSource() monitor.GPUSource {
	if p.gpu == nil {
		return nil
	}
	return p.gpu
}

func (p *implProcessor) stopTimeout() time.Duration {
	return time.Duration(p.cfg.Monitoring.StopTimeoutSeconds) * time.Second
}

func (p *implProcessor) gpuName() string {
	if p.gpu == nil {
		return ""
	}
	return p.gpu.Name()
}
