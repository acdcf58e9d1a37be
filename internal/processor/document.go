package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// processDocument extracts text from a PDF or image file. PDFs try direct
// text extraction first and fall back to OCR on rendered pages; images go
// straight to OCR.
func (p *implProcessor) processDocument(ctx context.Context, path string, d *dump) (string, error) {
	d.printf("Document/image processing with OCR\n")
	d.printf("\n--- Output ---\n\n")

	if strings.ToLower(filepath.Ext(path)) == ".pdf" {
		return p.pdfText(ctx, path)
	}
	return p.imageText(ctx, path)
}

// pdfText extracts PDF text, preferring the embedded text layer.
func (p *implProcessor) pdfText(ctx context.Context, path string) (string, error) {
	p.logger.Info(ctx, "Processing PDF file: %s", path)

	out, err := p.executor.Execute(ctx, "pdftotext", "-layout", path, "-")
	if err == nil && strings.TrimSpace(out) != "" {
		return out, nil
	}
	if err != nil {
		p.logger.Warn(ctx, "pdftotext failed, falling back to OCR: %v", err)
	} else {
		p.logger.Info(ctx, "No embedded text found, using OCR")
	}

	return p.pdfOCR(ctx, path)
}

// pdfOCR rasterizes each page and runs OCR on the images.
func (p *implProcessor) pdfOCR(ctx context.Context, path string) (string, error) {
	tempDir, err := os.MkdirTemp(p.cfg.Paths.Temp, "textify-ocr-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	args := []string{
		"-png",
		"-r", strconv.Itoa(p.cfg.OCR.PDFRenderDPI),
		absPath,
		"page",
	}
	if _, err := p.executor.ExecuteInDir(ctx, tempDir, "pdftoppm", args...); err != nil {
		return "", fmt.Errorf("pdftoppm render: %w", err)
	}

	pages, err := filepath.Glob(filepath.Join(tempDir, "page*.png"))
	if err != nil || len(pages) == 0 {
		return "", fmt.Errorf("no pages rendered from %s", path)
	}
	sort.Strings(pages)

	var sections []string
	for i, page := range pages {
		text, err := p.imageText(ctx, page)
		if err != nil {
			p.logger.Warn(ctx, "OCR failed on page %d: %v", i+1, err)
			continue
		}
		sections = append(sections, fmt.Sprintf("--- Page %d (OCR) ---\n%s", i+1, text))
	}

	return strings.Join(sections, "\n"), nil
}

// imageText runs tesseract on one image file.
func (p *implProcessor) imageText(ctx context.Context, path string) (string, error) {
	p.logger.Info(ctx, "Running OCR: %s", path)

	out, err := p.executor.Execute(ctx, p.cfg.OCR.TesseractPath,
		path,
		"stdout",
		"-l", strings.Join(p.cfg.OCR.Languages, "+"),
	)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}

	return out, nil
}
