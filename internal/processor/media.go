package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nobucshirai/textify/pkg/timefmt"
)

// processMedia transcribes one audio/video file: probe the duration,
// estimate the processing time, extract Whisper-friendly audio with ffmpeg
// and run the whisper binary. Returns the transcript text.
func (p *implProcessor) processMedia(ctx context.Context, path string, d *dump) (string, error) {
	duration := p.mediaDuration(ctx, path)
	d.printf("Duration: %.2fs\n", duration)

	p.logger.Info(ctx, "Duration: %.2fs", duration)

	if est, ok := estimateProcessingTime(p.gpuName(), duration); ok {
		d.printf("Estimated: %s\n", timefmt.Format(est))
		p.logger.Info(ctx, "Estimated time: %s", timefmt.Format(est))
	}

	p.checkGPUThreshold(ctx)

	d.printf("\n--- Output ---\n\n")

	audioPath, tempDir, err := p.extractAudio(ctx, path)
	if err != nil {
		return "", fmt.Errorf("extract audio: %w", err)
	}
	defer os.RemoveAll(tempDir)

	text, err := p.transcribe(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	return text, nil
}

// checkGPUThreshold warns when the GPU is already busy. Processing proceeds
// either way; the threshold is advisory.
func (p *implProcessor) checkGPUThreshold(ctx context.Context) {
	if p.gpu == nil || p.cfg.Monitoring.IgnoreGPUThreshold {
		return
	}

	util, err := p.gpu.Utilization()
	if err != nil {
		p.logger.Debug(ctx, "Could not query GPU utilization: %v", err)
		return
	}
	if util >= float64(p.cfg.Monitoring.GPUThreshold) {
		p.logger.Warn(ctx, "GPU utilization %.0f%% >= threshold %d%% - continuing anyway",
			util, p.cfg.Monitoring.GPUThreshold)
	}
}

// extractAudio converts the input to 16kHz mono WAV, the format Whisper
// expects. The file lands in a per-job temp directory the caller removes.
func (p *implProcessor) extractAudio(ctx context.Context, path string) (string, string, error) {
	tempDir, err := os.MkdirTemp(p.cfg.Paths.Temp, "textify-*")
	if err != nil {
		return "", "", fmt.Errorf("create temp dir: %w", err)
	}

	audioPath := filepath.Join(tempDir, "audio.wav")

	p.logger.Info(ctx, "Extracting audio: %s", path)

	args := []string{
		"-i", path,
		"-vn", // no video
		"-ar", "16000", // 16kHz sample rate
		"-ac", "1", // mono
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		os.RemoveAll(tempDir)
		return "", "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	return audioPath, tempDir, nil
}

// transcribe runs the whisper binary on the extracted audio and reads the
// plain-text output it produces.
func (p *implProcessor) transcribe(ctx context.Context, audioPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	p.logger.Info(ctx, "Starting transcription with %d threads: %s",
		p.cfg.Whisper.Threads, audioPath)

	args := []string{
		"-m", p.cfg.Whisper.ModelPath,
		"-f", audioPath,
		"-otxt",
		"-l", p.cfg.Whisper.Language,
		"-t", strconv.Itoa(p.cfg.Whisper.Threads),
		"--output-file", outputPrefix,
	}

	if _, err := p.executor.Execute(ctx, p.cfg.Whisper.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(outputPrefix + ".txt")
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	p.logger.Info(ctx, "Transcription completed")
	return string(data), nil
}
