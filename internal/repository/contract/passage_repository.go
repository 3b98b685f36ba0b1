package contract

import (
	"context"

	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PassageRepository interface {
	Create(ctx context.Context, passage *entity.Passage) error
	CreateBulk(ctx context.Context, passages []*entity.Passage) error
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Passage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Passage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar returns the top-k passages of a session ordered by cosine
	// distance to the query embedding.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, sessionId uuid.UUID) ([]*entity.Passage, error)
}
