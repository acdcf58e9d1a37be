package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/nobucshirai/textify/internal/config"
	"github.com/nobucshirai/textify/internal/logger"
)

// fakeExecutor returns a canned response for every command.
type fakeExecutor struct {
	output string
	err    error
	calls  [][]string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.output, f.err
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func newTestProcessor(exec *fakeExecutor) *implProcessor {
	cfg := &config.Config{
		Whisper: config.WhisperConfig{
			BinaryPath: "./whisper",
			ModelPath:  "models/ggml-large.bin",
		},
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return New(cfg, exec, logger.New("error"), nil, nil, nil).(*implProcessor)
}

func TestMediaDuration(t *testing.T) {
	tests := []struct {
		name   string
		output string
		err    error
		want   float64
	}{
		{"plain seconds", "634.32\n", nil, 634.32},
		{"integer seconds", "600", nil, 600},
		{"ffprobe failure", "", errors.New("ffprobe: not found"), 0},
		{"garbage output", "N/A\n", nil, 0},
		{"empty output", "", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{output: tt.output, err: tt.err}
			p := newTestProcessor(exec)

			got := p.mediaDuration(context.Background(), "talk.mp4")
			if got != tt.want {
				t.Errorf("mediaDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMediaDurationInvokesFFprobe(t *testing.T) {
	exec := &fakeExecutor{output: "10.0"}
	p := newTestProcessor(exec)

	p.mediaDuration(context.Background(), "talk.mp4")

	if len(exec.calls) != 1 {
		t.Fatalf("expected 1 command, got %d", len(exec.calls))
	}
	if exec.calls[0][0] != "ffprobe" {
		t.Errorf("command = %q, want ffprobe", exec.calls[0][0])
	}
}
