package rag

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"esg-questionnaire-be/internal/constant"
	"esg-questionnaire-be/internal/pkg/logger"
	"esg-questionnaire-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// CompanyResolver figures out which company the session's documents are
// about, so question templates read naturally. Resolution is best effort:
// any failure falls back to the generic placeholder. Successful lookups
// are cached per session.
type CompanyResolver struct {
	retriever   *Retriever
	llmProvider llm.LLMProvider
	cache       *cache.Cache
	logger      logger.ILogger
}

func NewCompanyResolver(retriever *Retriever, llmProvider llm.LLMProvider, logger logger.ILogger) *CompanyResolver {
	return &CompanyResolver{
		retriever:   retriever,
		llmProvider: llmProvider,
		cache:       cache.New(1*time.Hour, 10*time.Minute),
		logger:      logger,
	}
}

func (r *CompanyResolver) Resolve(ctx context.Context, sessionId uuid.UUID) string {
	if cached, found := r.cache.Get(sessionId.String()); found {
		return cached.(string)
	}

	passages := r.retriever.TopK(ctx, sessionId, constant.CompanyNameQuery, 1)
	if len(passages) == 0 {
		return constant.CompanyPlaceholder
	}

	answer, err := r.llmProvider.Generate(ctx, CompanyNamePrompt(passages[0].Content), llm.WithTemperature(0.1))
	if err != nil {
		r.logger.Warn("rag.company", "company name extraction failed, using placeholder", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return constant.CompanyPlaceholder
	}

	name := strings.TrimSpace(answer)
	name = strings.Trim(name, `"'`)
	if name == "" || strings.EqualFold(name, "unknown") || utf8.RuneCountInString(name) >= constant.MaxCompanyNameLength {
		return constant.CompanyPlaceholder
	}

	// only confirmed names are cached, so a session can still resolve
	// after its first documents arrive
	r.cache.Set(sessionId.String(), name, cache.DefaultExpiration)
	return name
}
