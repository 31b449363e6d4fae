// Package output handles file naming and writing for converted pages.
// Single documents are written flat, named after their source file or
// page id; batch conversions mirror the input directory structure.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteOnly writes a single document as <name>.<ext> in the output directory.
func (w *Writer) WriteOnly(name string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, Sanitize(name)+ext)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteAll writes a batch document, mirroring its path relative to the
// batch root. Example: docs/team/page.xhtml → <out>/docs/team/page.md
func (w *Writer) WriteAll(relPath string, data []byte, ext string) (string, error) {
	rel := filepath.Clean(relPath)
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s escapes the output directory", relPath)
	}

	fullPath := filepath.Join(w.OutputDir, StripExt(rel)+ext)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// NameFor picks the output name of a single document: the source file's
// base name without extension, else the page id, else "page".
func NameFor(source, pageID string) string {
	if source != "" && source != "-" {
		return StripExt(filepath.Base(source))
	}
	if pageID != "" {
		return "page_" + pageID
	}
	return "page"
}

// StripExt removes the final extension from path.
func StripExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// Sanitize replaces everything but letters, digits, '-', '_' and '.' with
// underscores.
func Sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') ||
			ch == '-' || ch == '_' || ch == '.' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
