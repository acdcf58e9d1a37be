package summarizer

import "context"

// Summarizer turns a finished transcript into an LLM-generated markdown
// summary, optionally exporting summary and transcript as DOCX.
type Summarizer interface {
	Summarize(ctx context.Context, transcriptPath, text string) error
}
