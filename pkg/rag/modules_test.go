package rag

import (
	"context"
	"strings"
	"testing"

	"esg-questionnaire-be/internal/constant"
	"esg-questionnaire-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeModules(t *testing.T) {
	factory := memory.NewFactory()
	sessionId := uuid.New()
	storePassage(t, factory, sessionId, "The logistics division cut fleet fuel use. The factories installed solar panels.", "ops.pdf", 4)

	model := &fakeLLM{generate: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "excerpt from a corporate document"):
			return "Acme Corp", nil
		case strings.Contains(prompt, "JSON array of short module names"):
			return `["Logistics", "Manufacturing", "Logistics"]`, nil
		case strings.Contains(prompt, `For the business module "Logistics"`):
			return `{"measure": "fleet fuel reduction"}`, nil
		case strings.Contains(prompt, `For the business module "Manufacturing"`):
			return "installed solar panels", nil
		default:
			return "One-line summary of energy measures.", nil
		}
	}}

	retriever := NewRetriever(fakeEmbedder{}, factory, nopLogger{})
	company := NewCompanyResolver(retriever, model, nopLogger{})
	engine := NewEngine(retriever, model, company, nil, 3, nopLogger{})

	field, _ := constant.FieldByKey("energy_measures")
	analysis := engine.AnalyzeModules(context.Background(), sessionId, field, 5)

	// duplicates from the model collapse, order preserved
	assert.Equal(t, []string{"Logistics", "Manufacturing"}, analysis.Modules)
	assert.Equal(t, map[string]interface{}{"measure": "fleet fuel reduction"}, analysis.Details["Logistics"])
	assert.Equal(t, "installed solar panels", analysis.Details["Manufacturing"])
	assert.Equal(t, "One-line summary of energy measures.", analysis.Summary)
	assert.Equal(t, []string{"ops.pdf:5"}, analysis.Sources)
}

func TestAnalyzeModulesEmptySession(t *testing.T) {
	factory := memory.NewFactory()
	model := &fakeLLM{generate: func(prompt string) (string, error) {
		t.Fatal("no passages, the model should never be called")
		return "", nil
	}}

	retriever := NewRetriever(fakeEmbedder{}, factory, nopLogger{})
	company := NewCompanyResolver(retriever, model, nopLogger{})
	engine := NewEngine(retriever, model, company, nil, 3, nopLogger{})

	field, _ := constant.FieldByKey("energy_measures")
	analysis := engine.AnalyzeModules(context.Background(), uuid.New(), field, 5)

	require.NotNil(t, analysis.Modules)
	assert.Empty(t, analysis.Modules)
	assert.Empty(t, analysis.Details)
	assert.Empty(t, analysis.Summary)
}
