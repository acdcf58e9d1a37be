package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Category distinguishes the two processing routes.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryMedia
	CategoryDocument
)

var mediaExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".aac": true, ".flac": true, ".ogg": true,
	".m4a": true, ".wma": true,
	".mp4": true, ".mov": true, ".avi": true, ".wmv": true, ".flv": true,
	".mkv": true, ".webm": true, ".m4v": true, ".mpg": true, ".mpeg": true,
	".3gp": true, ".3g2": true, ".rm": true, ".rmvb": true, ".vob": true,
	".ts": true, ".ogv": true, ".f4v": true, ".divx": true,
}

var documentExtensions = map[string]bool{
	".pdf": true, ".jpg": true, ".jpeg": true, ".png": true, ".bmp": true,
	".tiff": true, ".tif": true, ".webp": true, ".gif": true,
	".heic": true, ".heif": true,
}

// Categorize returns the processing route for a path based on its extension.
func Categorize(path string) Category {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case mediaExtensions[ext]:
		return CategoryMedia
	case documentExtensions[ext]:
		return CategoryDocument
	default:
		return CategoryUnknown
	}
}

// IsSupported reports whether the file has a supported media or document
// extension.
func IsSupported(path string) bool {
	return Categorize(path) != CategoryUnknown
}

// TranscriptPath returns the transcript file path for an input file:
// <dir>/<base>_<ext>.txt. The transcript doubles as the processed marker.
func TranscriptPath(path string) string {
	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.txt", base, ext))
}

// DumpPath returns the per-file processing log path:
// <dir>/<base>_<ext>_dump.txt.
func DumpPath(path string) string {
	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return filepath.Join(dir, fmt.Sprintf("%s_%s_dump.txt", base, ext))
}

// IsProcessed reports whether the transcript marker for path already exists.
func IsProcessed(path string) bool {
	_, err := os.Stat(TranscriptPath(path))
	return err == nil
}

// ScanDir returns the supported, not-yet-processed files directly inside dir,
// sorted by name via os.ReadDir ordering.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan directory: %w", err)
	}

	var eligible []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !IsSupported(path) || IsProcessed(path) {
			continue
		}
		eligible = append(eligible, path)
	}

	return eligible, nil
}

// Eligible filters an explicit file list down to existing, supported,
// not-yet-processed files. Skipped paths are reported with a reason so the
// caller can decide what to log.
func Eligible(paths []string) (eligible []string, skipped map[string]string) {
	skipped = make(map[string]string)

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			skipped[path] = "not found"
			continue
		}
		if !IsSupported(path) {
			// Transcript outputs are skipped silently by callers
			skipped[path] = "unsupported"
			continue
		}
		if IsProcessed(path) {
			skipped[path] = "already processed"
			continue
		}
		eligible = append(eligible, path)
	}

	return eligible, skipped
}

// Split partitions eligible files into media and document groups, dropping
// anything unsupported.
func Split(paths []string) (media, documents []string) {
	for _, path := range paths {
		switch Categorize(path) {
		case CategoryMedia:
			media = append(media, path)
		case CategoryDocument:
			documents = append(documents, path)
		}
	}
	return media, documents
}
