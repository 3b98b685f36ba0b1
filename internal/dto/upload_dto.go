package dto

import "github.com/google/uuid"

// FileIngestReport is the per-file outcome of an upload batch. A failing
// file is reported, never fatal for the batch.
type FileIngestReport struct {
	FileName string   `json:"file_name"`
	Units    int      `json:"units"`
	Chunks   int      `json:"chunks"`
	Stored   int      `json:"stored"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

type UploadResponse struct {
	SessionId   uuid.UUID              `json:"session_id"`
	Files       []FileIngestReport     `json:"files"`
	Answers     map[string]interface{} `json:"answers"`
	RagContexts map[string]string      `json:"_rag_contexts,omitempty"`
	Summary     string                 `json:"_summary,omitempty"`
}
