package contract

import (
	"context"

	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AnswerRecordRepository interface {
	Create(ctx context.Context, record *entity.AnswerRecord) error
	Update(ctx context.Context, record *entity.AnswerRecord) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnswerRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnswerRecord, error)
	// FindLatestBySession returns the newest snapshot for the session, or
	// (nil, nil) when none exists.
	FindLatestBySession(ctx context.Context, sessionId uuid.UUID) (*entity.AnswerRecord, error)
}
