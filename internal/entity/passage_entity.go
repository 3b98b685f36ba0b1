package entity

import (
	"time"

	"github.com/google/uuid"
)

// Passage kinds as tagged at ingestion time.
const (
	PassageKindText  = "text"
	PassageKindTable = "table"
)

// Passage is one embedded chunk of an ingested document. Passages are
// immutable once stored.
type Passage struct {
	Id         uuid.UUID
	SessionId  uuid.UUID
	Content    string
	SourceFile string  // base name of the uploaded file
	Page       *int    // zero-based PDF page, nil for non-paged sources
	SourcePath *string // absolute path, kept only while the file exists on disk
	Kind       string
	ChunkIndex int
	Embedding  []float32
	CreatedAt  time.Time
}
