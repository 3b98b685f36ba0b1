package rag

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"esg-questionnaire-be/internal/constant"
	"esg-questionnaire-be/pkg/llm"

	"github.com/google/uuid"
)

// ModuleAnalysis is the outcome of module-level RAG for one field:
// detected business modules, per-module findings, and a one-line summary.
type ModuleAnalysis struct {
	Modules []string
	Details map[string]interface{}
	Summary string
	Sources []string
}

// AnalyzeModules detects the business modules the documents describe and
// extracts per-module findings for the field's question. A session without
// relevant passages yields an empty analysis.
func (e *Engine) AnalyzeModules(ctx context.Context, sessionId uuid.UUID, field constant.FieldSpec, k int) ModuleAnalysis {
	if k <= 0 {
		k = 5
	}
	question := field.RenderQuestion(e.company.Resolve(ctx, sessionId))
	passages := e.retriever.TopK(ctx, sessionId, question, k)
	if len(passages) == 0 {
		return ModuleAnalysis{Modules: []string{}, Details: map[string]interface{}{}}
	}

	var contextParts []string
	sourceSet := map[string]bool{}
	for _, p := range passages {
		contextParts = append(contextParts, p.Content)
		sourceSet[Provenance(p)] = true
	}
	docContext := strings.Join(contextParts, "\n\n")

	analysis := ModuleAnalysis{
		Modules: e.detectModules(ctx, field.Key, docContext),
		Details: map[string]interface{}{},
	}
	for s := range sourceSet {
		analysis.Sources = append(analysis.Sources, s)
	}
	sort.Strings(analysis.Sources)

	for _, module := range analysis.Modules {
		analysis.Details[module] = e.moduleDetail(ctx, field.Key, module, question, docContext)
	}

	if len(analysis.Details) > 0 {
		detailsJSON, err := json.Marshal(analysis.Details)
		if err == nil {
			summary, err := e.llmProvider.Generate(ctx, ModuleSummaryPrompt(question, string(detailsJSON)))
			if err != nil {
				e.logger.Warn("rag.modules", "module summary failed", map[string]interface{}{
					"field": field.Key,
					"error": err.Error(),
				})
			} else {
				analysis.Summary = strings.TrimSpace(summary)
			}
		}
	}

	return analysis
}

func (e *Engine) detectModules(ctx context.Context, fieldKey, docContext string) []string {
	answer, err := e.llmProvider.Generate(ctx, ModuleDetectPrompt(docContext), llm.WithTemperature(0.1))
	if err != nil {
		e.logger.Warn("rag.modules", "module detection failed", map[string]interface{}{
			"field": fieldKey,
			"error": err.Error(),
		})
		return []string{}
	}

	// JSON array with comma fallback, order-preserving dedup
	items := ParseList(answer, nil)
	modules := []string{}
	seen := map[string]bool{}
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			modules = append(modules, item)
		}
	}
	return modules
}

func (e *Engine) moduleDetail(ctx context.Context, fieldKey, module, question, docContext string) interface{} {
	answer, err := e.llmProvider.Generate(ctx, ModuleDetailPrompt(module, question, docContext))
	if err != nil {
		e.logger.Warn("rag.modules", "module detail extraction failed", map[string]interface{}{
			"field":  fieldKey,
			"module": module,
			"error":  err.Error(),
		})
		return ""
	}

	cleaned := strings.TrimSpace(answer)
	if start, end := strings.Index(cleaned, "{"), strings.LastIndex(cleaned, "}"); start >= 0 && end > start {
		var structured map[string]interface{}
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &structured); err == nil {
			return structured
		}
	}
	return cleaned
}
