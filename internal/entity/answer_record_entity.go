package entity

import (
	"time"

	"github.com/google/uuid"
)

// AnswerRecord is a point-in-time snapshot of the questionnaire for one
// session. The record with the latest CreatedAt is the current state.
// Sources and Conflicts only carry keys that are present in Values.
type AnswerRecord struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Values    map[string]interface{}
	Sources   map[string][]string
	Conflicts map[string][]interface{}
	CreatedAt time.Time
	UpdatedAt *time.Time
}
