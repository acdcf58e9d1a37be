package summarizer

import (
	"github.com/nobucshirai/textify/internal/logger"
)

type implSummarizer struct {
	apiKeys    []string
	currentKey int
	model      string
	docx       bool
	logger     logger.Logger
}

// New creates a Summarizer that rotates through the supplied Gemini API keys.
func New(apiKeys []string, model string, docx bool, log logger.Logger) Summarizer {
	return &implSummarizer{
		apiKeys: apiKeys,
		model:   model,
		docx:    docx,
		logger:  log,
	}
}
