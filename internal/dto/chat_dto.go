package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Message   string    `json:"message" validate:"required"`
}

type SendChatResponse struct {
	SessionId     uuid.UUID              `json:"session_id"`
	Reply         string                 `json:"reply"`
	Sources       []string               `json:"sources,omitempty"`
	UpdatedValues map[string]interface{} `json:"updated_values,omitempty"`
}

type ChatTurnResponse struct {
	Id         uuid.UUID `json:"id"`
	UserInput  string    `json:"user_input"`
	AiResponse string    `json:"ai_response"`
	CreatedAt  time.Time `json:"created_at"`
}

// PublishExtractAnswersMessage is the payload of the background
// answer-refresh event raised after an upload.
type PublishExtractAnswersMessage struct {
	SessionId uuid.UUID `json:"session_id"`
}
