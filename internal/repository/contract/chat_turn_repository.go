package contract

import (
	"context"

	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatTurnRepository interface {
	Create(ctx context.Context, turn *entity.ChatTurn) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error)
	// FindRecentBySession returns the last n turns of a session, oldest first.
	FindRecentBySession(ctx context.Context, sessionId uuid.UUID, n int) ([]*entity.ChatTurn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
