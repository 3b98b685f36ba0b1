package rag

import (
	"context"
	"strings"
	"testing"

	"esg-questionnaire-be/internal/constant"
	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/repository/memory"
	"esg-questionnaire-be/pkg/embedding"
	"esg-questionnaire-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeEmbedder struct{}

func (fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1, 0, 0}},
	}, nil
}

type fakeLLM struct {
	generate func(prompt string) (string, error)
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.generate(history[len(history)-1].Content)
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.generate(prompt)
}

func storePassage(t *testing.T, factory *memory.Factory, sessionId uuid.UUID, content, file string, page int) {
	t.Helper()
	uow := factory.NewUnitOfWork(context.Background())
	err := uow.PassageRepository().Create(context.Background(), &entity.Passage{
		Id:         uuid.New(),
		SessionId:  sessionId,
		Content:    content,
		SourceFile: file,
		Page:       &page,
		Kind:       entity.PassageKindText,
		Embedding:  []float32{1, 0, 0},
	})
	require.NoError(t, err)
}

func TestEngineExtractFloatField(t *testing.T) {
	factory := memory.NewFactory()
	sessionId := uuid.New()
	storePassage(t, factory, sessionId, "Scope 1 emissions: 1,234.5 tons CO2", "report.pdf", 2)

	model := &fakeLLM{generate: func(prompt string) (string, error) {
		if strings.Contains(prompt, "excerpt from a corporate document") {
			return "Acme Corp", nil
		}
		return "1,234.5 tons", nil
	}}

	retriever := NewRetriever(fakeEmbedder{}, factory, nopLogger{})
	company := NewCompanyResolver(retriever, model, nopLogger{})
	engine := NewEngine(retriever, model, company, nil, 3, nopLogger{})

	field, ok := constant.FieldByKey("scope1")
	require.True(t, ok)

	red := engine.ExtractField(context.Background(), sessionId, field)
	assert.Equal(t, 1234.5, red.Value)
	assert.Equal(t, []string{"report.pdf:3"}, red.Sources)
	assert.Empty(t, red.Conflicts)
}

func TestEngineExtractEmptySession(t *testing.T) {
	factory := memory.NewFactory()
	model := &fakeLLM{generate: func(prompt string) (string, error) {
		t.Fatal("no passages, the model should never be called")
		return "", nil
	}}

	retriever := NewRetriever(fakeEmbedder{}, factory, nopLogger{})
	company := NewCompanyResolver(retriever, model, nopLogger{})
	engine := NewEngine(retriever, model, company, nil, 3, nopLogger{})

	floatField, _ := constant.FieldByKey("scope1")
	textField, _ := constant.FieldByKey("quantitative_target")
	listField, _ := constant.FieldByKey("ghg_practice")

	assert.Nil(t, engine.ExtractField(context.Background(), uuid.New(), floatField).Value)
	assert.Equal(t, "", engine.ExtractField(context.Background(), uuid.New(), textField).Value)
	assert.Equal(t, []string{}, engine.ExtractField(context.Background(), uuid.New(), listField).Value)
}

func TestEngineConflictAcrossPassages(t *testing.T) {
	factory := memory.NewFactory()
	sessionId := uuid.New()
	storePassage(t, factory, sessionId, "Scope 1 emissions were 100 tons", "a.pdf", 0)
	storePassage(t, factory, sessionId, "Scope 1 emissions were 250 tons", "b.pdf", 0)

	model := &fakeLLM{generate: func(prompt string) (string, error) {
		if strings.Contains(prompt, "excerpt from a corporate document") {
			return "Acme Corp", nil
		}
		if strings.Contains(prompt, "100 tons") {
			return "100", nil
		}
		return "250", nil
	}}

	retriever := NewRetriever(fakeEmbedder{}, factory, nopLogger{})
	company := NewCompanyResolver(retriever, model, nopLogger{})
	engine := NewEngine(retriever, model, company, nil, 3, nopLogger{})

	field, _ := constant.FieldByKey("scope1")
	red := engine.ExtractField(context.Background(), sessionId, field)

	assert.Equal(t, 100.0, red.Value)
	assert.Equal(t, []string{"a.pdf:1"}, red.Sources)
	assert.Len(t, red.Conflicts, 2)
}

func TestCompanyResolverFallsBackToPlaceholder(t *testing.T) {
	factory := memory.NewFactory()
	sessionId := uuid.New()
	storePassage(t, factory, sessionId, "Some text without a clear company", "doc.txt", 0)

	model := &fakeLLM{generate: func(prompt string) (string, error) {
		return "unknown", nil
	}}

	retriever := NewRetriever(fakeEmbedder{}, factory, nopLogger{})
	company := NewCompanyResolver(retriever, model, nopLogger{})

	assert.Equal(t, constant.CompanyPlaceholder, company.Resolve(context.Background(), sessionId))

	// empty session also falls back without calling the model
	assert.Equal(t, constant.CompanyPlaceholder, company.Resolve(context.Background(), uuid.New()))
}
