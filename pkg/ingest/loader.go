package ingest

import (
	"os"
	"path/filepath"
	"strings"
)

// Unit is one extractable piece of a document before chunking.
type Unit struct {
	Content    string
	SourceFile string  // base name
	Page       *int    // zero-based PDF page, nil otherwise
	SourcePath *string // absolute path while the file exists
	Kind       string  // "text" or "table"
}

// Result reports what a loader produced. Warnings carry per-strategy
// failures that were skipped rather than aborting the file.
type Result struct {
	Units    []Unit
	Warnings []string
}

const (
	KindText  = "text"
	KindTable = "table"
)

// Load dispatches on file extension. PDF gets table and per-page text
// extraction, DOCX gets the zip/XML walk, everything else is treated as
// plain text.
func Load(path string) (*Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return LoadPDF(path)
	case ".docx":
		return LoadDOCX(path)
	default:
		return LoadText(path)
	}
}

func newUnit(path, content, kind string, page *int) Unit {
	u := Unit{
		Content:    content,
		SourceFile: filepath.Base(path),
		Page:       page,
		Kind:       kind,
	}
	if abs, err := filepath.Abs(path); err == nil {
		if _, statErr := os.Stat(abs); statErr == nil {
			u.SourcePath = &abs
		}
	}
	return u
}
