package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is one user/assistant exchange in a session. Turns are
// append-only.
type ChatTurn struct {
	Id         uuid.UUID
	SessionId  uuid.UUID
	UserInput  string
	AiResponse string
	CreatedAt  time.Time
}
