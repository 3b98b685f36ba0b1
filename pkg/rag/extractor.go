package rag

import (
	"context"

	"esg-questionnaire-be/internal/constant"
	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/pkg/logger"
	"esg-questionnaire-be/pkg/llm"
	"esg-questionnaire-be/pkg/vision"

	"github.com/google/uuid"
)

// Engine turns one questionnaire field into an accepted value with
// provenance. It never returns an error: a session with no usable
// passages simply yields the field's empty default.
type Engine struct {
	retriever       *Retriever
	llmProvider     llm.LLMProvider
	company         *CompanyResolver
	visionExtractor *vision.Extractor // nil disables the vision fallback
	topK            int
	logger          logger.ILogger
}

func NewEngine(
	retriever *Retriever,
	llmProvider llm.LLMProvider,
	company *CompanyResolver,
	visionExtractor *vision.Extractor,
	topK int,
	logger logger.ILogger,
) *Engine {
	if topK <= 0 {
		topK = 3
	}
	return &Engine{
		retriever:       retriever,
		llmProvider:     llmProvider,
		company:         company,
		visionExtractor: visionExtractor,
		topK:            topK,
		logger:          logger,
	}
}

// ExtractField runs the text extraction path for one field.
func (e *Engine) ExtractField(ctx context.Context, sessionId uuid.UUID, field constant.FieldSpec) Reduction {
	question := field.RenderQuestion(e.company.Resolve(ctx, sessionId))
	passages := e.retriever.TopK(ctx, sessionId, question, e.topK)
	candidates := e.collectCandidates(ctx, field, question, passages)
	return Reduce(field.Type, candidates, field.Options)
}

// ExtractFieldVision tries the full-page vision path for a numeric KPI
// field first. The first page whose reading parses as a float wins and
// becomes the sole source; otherwise the text path decides.
func (e *Engine) ExtractFieldVision(ctx context.Context, sessionId uuid.UUID, field constant.FieldSpec) Reduction {
	question := field.RenderQuestion(e.company.Resolve(ctx, sessionId))
	passages := e.retriever.TopK(ctx, sessionId, question, e.topK)

	if e.visionExtractor != nil && constant.IsKPIField(field.Key) {
		pages := e.visionExtractor.ExtractPages(ctx, passages, VisionKPIPrompt(question))
		for _, page := range pages {
			if value, ok := ParseFloat(page.Text); ok {
				return Reduction{
					Value:   value,
					Sources: []string{page.Ref},
				}
			}
		}
	}

	candidates := e.collectCandidates(ctx, field, question, passages)
	return Reduce(field.Type, candidates, field.Options)
}

func (e *Engine) collectCandidates(ctx context.Context, field constant.FieldSpec, question string, passages []*entity.Passage) []Candidate {
	var candidates []Candidate
	for _, p := range passages {
		var prompt string
		switch field.Type {
		case constant.FieldTypeFloat:
			prompt = FloatPrompt(question, p.Content)
		case constant.FieldTypeList:
			prompt = ListPrompt(question, field.Options, p.Content)
		default:
			prompt = TextPrompt(question, p.Content)
		}

		answer, err := e.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.1))
		if err != nil {
			e.logger.Warn("rag.engine", "candidate extraction failed on passage", map[string]interface{}{
				"field":  field.Key,
				"source": Provenance(p),
				"error":  err.Error(),
			})
			continue
		}

		switch field.Type {
		case constant.FieldTypeFloat:
			if value, ok := ParseFloat(answer); ok {
				candidates = append(candidates, Candidate{Value: value, Source: Provenance(p)})
			}
		case constant.FieldTypeList:
			if items := ParseList(answer, field.Options); len(items) > 0 {
				candidates = append(candidates, Candidate{Value: items, Source: Provenance(p)})
			}
		default:
			if text, ok := ParseText(answer); ok {
				candidates = append(candidates, Candidate{Value: text, Source: Provenance(p)})
			}
		}
	}
	return candidates
}
