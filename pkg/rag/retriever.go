package rag

import (
	"context"

	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/pkg/logger"
	"esg-questionnaire-be/internal/repository/unitofwork"
	"esg-questionnaire-be/pkg/embedding"

	"github.com/google/uuid"
)

// Retriever runs session-scoped similarity search. Retrieval is a
// best-effort operation: any embedding or search failure yields an empty
// result, never an error.
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	repositoryFactory unitofwork.RepositoryFactory
	logger            logger.ILogger
}

func NewRetriever(
	embeddingProvider embedding.EmbeddingProvider,
	repositoryFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
) *Retriever {
	return &Retriever{
		embeddingProvider: embeddingProvider,
		repositoryFactory: repositoryFactory,
		logger:            logger,
	}
}

// TopK returns up to k passages of the session ranked by cosine distance
// to the query.
func (r *Retriever) TopK(ctx context.Context, sessionId uuid.UUID, query string, k int) []*entity.Passage {
	embeddingRes, err := r.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		r.logger.Warn("rag.retriever", "embedding generation failed, returning no passages", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil
	}

	uow := r.repositoryFactory.NewUnitOfWork(ctx)
	passages, err := uow.PassageRepository().SearchSimilar(ctx, embeddingRes.Embedding.Values, k, sessionId)
	if err != nil {
		r.logger.Warn("rag.retriever", "similarity search failed, returning no passages", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil
	}
	return passages
}
