package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nobucshirai/textify/internal/config"
	"github.com/nobucshirai/textify/internal/logger"
)

func newDocTestProcessor(t *testing.T, exec *fakeExecutor) *implProcessor {
	t.Helper()
	cfg := &config.Config{
		Whisper: config.WhisperConfig{
			BinaryPath: "./whisper",
			ModelPath:  "models/ggml-large.bin",
		},
		Paths: config.PathsConfig{Temp: t.TempDir()},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return New(cfg, exec, logger.New("error"), nil, nil, nil).(*implProcessor)
}

func TestProcessImageWritesTranscriptAndDump(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.png")
	if err := os.WriteFile(path, []byte("fake image"), 0644); err != nil {
		t.Fatal(err)
	}

	exec := &fakeExecutor{output: "recognized text\n"}
	p := newDocTestProcessor(t, exec)

	if err := p.Process(context.Background(), path); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	transcript, err := os.ReadFile(filepath.Join(dir, "scan_png.txt"))
	if err != nil {
		t.Fatalf("transcript not written: %v", err)
	}
	if string(transcript) != "recognized text\n" {
		t.Errorf("transcript = %q, want OCR output", transcript)
	}

	dump, err := os.ReadFile(filepath.Join(dir, "scan_png_dump.txt"))
	if err != nil {
		t.Fatalf("dump not written: %v", err)
	}
	for _, want := range []string{
		"Start:",
		"--- Output ---",
		"recognized text",
		"--- Summary ---",
		"--- Resource Usage ---",
		"GPU monitoring disabled",
	} {
		if !strings.Contains(string(dump), want) {
			t.Errorf("dump missing %q:\n%s", want, dump)
		}
	}
}

func TestProcessFailureLeavesFileEligible(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.png")
	if err := os.WriteFile(path, []byte("fake image"), 0644); err != nil {
		t.Fatal(err)
	}

	exec := &fakeExecutor{err: errors.New("tesseract: not found")}
	p := newDocTestProcessor(t, exec)

	if err := p.Process(context.Background(), path); err == nil {
		t.Fatal("Process() should propagate the OCR failure")
	}

	if _, err := os.Stat(filepath.Join(dir, "scan_png.txt")); err == nil {
		t.Error("transcript marker written despite failure; file would never be retried")
	}

	dump, err := os.ReadFile(filepath.Join(dir, "scan_png_dump.txt"))
	if err != nil {
		t.Fatalf("dump not written: %v", err)
	}
	if !strings.Contains(string(dump), "ERROR:") {
		t.Errorf("dump missing ERROR line:\n%s", dump)
	}
}

func TestProcessSkipsAlreadyProcessed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.png")
	if err := os.WriteFile(path, []byte("fake image"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scan_png.txt"), []byte("done"), 0644); err != nil {
		t.Fatal(err)
	}

	exec := &fakeExecutor{output: "should not run"}
	p := newDocTestProcessor(t, exec)

	if err := p.Process(context.Background(), path); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(exec.calls) != 0 {
		t.Errorf("no commands should run for a processed file, got %v", exec.calls)
	}
}

func TestProcessIgnoresUnsupportedFile(t *testing.T) {
	exec := &fakeExecutor{}
	p := newDocTestProcessor(t, exec)

	if err := p.Process(context.Background(), "notes.txt"); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(exec.calls) != 0 {
		t.Errorf("no commands should run for an unsupported file, got %v", exec.calls)
	}
}
