package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	OCR         OCRConfig         `yaml:"ocr"`
	Monitoring  MonitoringConfig  `yaml:"monitoring"`
	Summary     SummaryConfig     `yaml:"summary"`
	Performance PerformanceConfig `yaml:"performance"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type PathsConfig struct {
	Input   string `yaml:"input"`
	LogFile string `yaml:"log_file"`
	Temp    string `yaml:"temp"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type OCRConfig struct {
	TesseractPath string   `yaml:"tesseract_path"`
	Languages     []string `yaml:"languages"`
	PDFRenderDPI  int      `yaml:"pdf_render_dpi"`
}

type MonitoringConfig struct {
	IntervalSeconds    int  `yaml:"interval_seconds"`
	StopTimeoutSeconds int  `yaml:"stop_timeout_seconds"`
	GPUThreshold       int  `yaml:"gpu_threshold"`
	IgnoreGPUThreshold bool `yaml:"ignore_gpu_threshold"`
}

type SummaryConfig struct {
	Enabled bool     `yaml:"enabled"`
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
	Docx    bool     `yaml:"docx"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}

	if c.Whisper.Language == "" {
		c.Whisper.Language = "ja"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.OCR.TesseractPath == "" {
		c.OCR.TesseractPath = "tesseract"
	}
	if len(c.OCR.Languages) == 0 {
		c.OCR.Languages = []string{"eng", "jpn"}
	}
	if c.OCR.PDFRenderDPI == 0 {
		c.OCR.PDFRenderDPI = 200
	}
	if c.Monitoring.IntervalSeconds == 0 {
		c.Monitoring.IntervalSeconds = 10
	}
	if c.Monitoring.StopTimeoutSeconds == 0 {
		c.Monitoring.StopTimeoutSeconds = 5
	}
	if c.Monitoring.GPUThreshold == 0 {
		c.Monitoring.GPUThreshold = 20
	}
	if c.Summary.Model == "" {
		c.Summary.Model = "gemini-2.5-flash"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}
	if c.Paths.LogFile == "" {
		c.Paths.LogFile = "batch_process.log"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = os.TempDir()
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Summary.Enabled && len(c.Summary.APIKeys) == 0 {
		return fmt.Errorf("summary.api_keys is required when summary.enabled is true")
	}

	return nil
}
