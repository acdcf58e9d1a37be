package summarizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/genai"
)

const summaryPrompt = `You are an expert at analyzing transcripts. Based on the transcript below, write a DETAILED summary.

Requirements:
- Start with a one-sentence title describing the overall topic
- List ALL main points in order of appearance
- Explain each point, including important caveats and warnings
- Keep domain-specific terminology unchanged
- Use markdown: headings, bullet points, bold for key terms
- End with an "Important notes" section if anything deserves emphasis

Transcript:
---
%s
---`

// Summarize calls Gemini on the transcript text, writes <base>.md next to
// the transcript and, when configured, DOCX exports of both the summary and
// the transcript itself.
func (s *implSummarizer) Summarize(ctx context.Context, transcriptPath, text string) error {
	base := strings.TrimSuffix(transcriptPath, filepath.Ext(transcriptPath))
	name := filepath.Base(base)

	s.logger.Info(ctx, "Summarizing: %s", name)

	summary, err := s.callGemini(ctx, text)
	if err != nil {
		return fmt.Errorf("summarize %s: %w", name, err)
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		name,
		time.Now().Format("2006-01-02 15:04"),
		strings.TrimSpace(summary),
	)

	mdPath := base + ".md"
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	s.logger.Info(ctx, "Summary written: %s", mdPath)

	if s.docx {
		if err := markdownToDocx(name, summary, base+"_summary.docx"); err != nil {
			s.logger.Warn(ctx, "Failed to write summary docx: %v", err)
		}
		if err := transcriptToDocx(name, text, base+".docx"); err != nil {
			s.logger.Warn(ctx, "Failed to write transcript docx: %v", err)
		}
	}

	return nil
}

// callGemini sends the transcript to Gemini and returns the summary text.
// Rotates API keys on 429 / quota errors.
func (s *implSummarizer) callGemini(ctx context.Context, transcript string) (string, error) {
	prompt := fmt.Sprintf(summaryPrompt, transcript)

	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		key := s.apiKeys[s.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				s.logger.Warn(ctx, "Key %d rate limited, rotating...", s.currentKey+1)
				s.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (s *implSummarizer) rotateKey() {
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}
