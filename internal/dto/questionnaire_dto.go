package dto

import (
	"time"

	"github.com/google/uuid"
)

type AnswersResponse struct {
	SessionId uuid.UUID                `json:"session_id"`
	Values    map[string]interface{}   `json:"values"`
	Sources   map[string][]string      `json:"sources"`
	Conflicts map[string][]interface{} `json:"conflicts"`
	UpdatedAt *time.Time               `json:"updated_at,omitempty"`
}

type ExtractRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Key       string    `json:"key,omitempty"` // empty refreshes every field
}

type ExtractResponse struct {
	SessionId uuid.UUID                `json:"session_id"`
	Extracted []string                 `json:"extracted"`
	Values    map[string]interface{}   `json:"values"`
	Sources   map[string][]string      `json:"sources"`
	Conflicts map[string][]interface{} `json:"conflicts"`
}

type OverwriteAnswersRequest struct {
	SessionId uuid.UUID              `json:"session_id" validate:"required"`
	Values    map[string]interface{} `json:"values" validate:"required"`
}

type VisionExtractRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Key       string    `json:"key" validate:"required"`
}

type VisionExtractResponse struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
	Ref   string      `json:"ref,omitempty"`
}

type ModuleSummaryRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Key       string    `json:"key,omitempty"` // empty analyzes every eligible field
}

type ModuleResult struct {
	Modules []string               `json:"modules"`
	Details map[string]interface{} `json:"details"`
	Summary string                 `json:"summary"`
	Sources []string               `json:"sources"`
}

type ModuleSummaryResponse struct {
	SessionId uuid.UUID               `json:"session_id"`
	Results   map[string]ModuleResult `json:"results"`
	Saved     bool                    `json:"saved"`
}
