package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/repository/memory"
	"esg-questionnaire-be/pkg/embedding"
	"esg-questionnaire-be/pkg/llm"
	"esg-questionnaire-be/pkg/rag"
	"esg-questionnaire-be/pkg/vision"

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

func newMergeService(t *testing.T) (IQuestionnaireService, *memory.Factory) {
	t.Helper()
	factory := memory.NewFactory()
	return NewQuestionnaireService(factory, nil, 0, nopLogger{}), factory
}

func TestMergeValuesShallow(t *testing.T) {
	svc, _ := newMergeService(t)
	sessionId := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.MergeValues(ctx, sessionId, map[string]interface{}{"a": 1.0, "b": 2.0}))
	require.NoError(t, svc.MergeValues(ctx, sessionId, map[string]interface{}{"b": 3.0}))

	answers, err := svc.GetAnswers(ctx, sessionId)
	require.NoError(t, err)
	assert.Equal(t, 1.0, answers.Values["a"])
	assert.Equal(t, 3.0, answers.Values["b"])
}

func TestMergeValuesNullOverwrites(t *testing.T) {
	svc, _ := newMergeService(t)
	sessionId := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.MergeValues(ctx, sessionId, map[string]interface{}{"scope1": 500.0}))
	require.NoError(t, svc.MergeValues(ctx, sessionId, map[string]interface{}{"scope1": nil}))

	answers, err := svc.GetAnswers(ctx, sessionId)
	require.NoError(t, err)
	value, exists := answers.Values["scope1"]
	assert.True(t, exists, "null overwrites the value, it does not delete the key")
	assert.Nil(t, value)
}

func TestSaveAnswersFiltersSideMaps(t *testing.T) {
	svc, _ := newMergeService(t)
	sessionId := uuid.New()
	ctx := context.Background()

	err := svc.SaveAnswers(ctx, sessionId,
		map[string]interface{}{"scope1": 100.0},
		map[string][]string{
			"scope1": {"report.pdf:3"},
			"ghost":  {"nowhere.pdf:1"},
		},
		map[string][]interface{}{
			"ghost": {"orphan"},
		},
	)
	require.NoError(t, err)

	answers, err := svc.GetAnswers(ctx, sessionId)
	require.NoError(t, err)
	assert.Equal(t, []string{"report.pdf:3"}, answers.Sources["scope1"])
	_, exists := answers.Sources["ghost"]
	assert.False(t, exists)
	_, exists = answers.Conflicts["ghost"]
	assert.False(t, exists)
}

func TestOverwriteValuesPrunesOrphanedSideMaps(t *testing.T) {
	svc, _ := newMergeService(t)
	sessionId := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.SaveAnswers(ctx, sessionId,
		map[string]interface{}{"scope1": 100.0, "scope2": 200.0},
		map[string][]string{
			"scope1": {"a.pdf:1"},
			"scope2": {"b.pdf:2"},
		},
		map[string][]interface{}{},
	))

	answers, err := svc.OverwriteValues(ctx, sessionId, map[string]interface{}{"scope1": 150.0})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"scope1": 150.0}, answers.Values)
	// the surviving key keeps its sources, the removed one loses them
	assert.Equal(t, []string{"a.pdf:1"}, answers.Sources["scope1"])
	_, exists := answers.Sources["scope2"]
	assert.False(t, exists)
}

func TestExtractSingleField(t *testing.T) {
	factory := memory.NewFactory()
	sessionId := uuid.New()
	ctx := context.Background()

	page := 2
	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.PassageRepository().Create(ctx, &entity.Passage{
		Id:         uuid.New(),
		SessionId:  sessionId,
		Content:    "Scope 1 emissions: 1,234.5 tons CO2",
		SourceFile: "report.pdf",
		Page:       &page,
		Kind:       entity.PassageKindText,
		Embedding:  []float32{1, 0, 0},
	}))

	model := &fakeLLM{generate: func(prompt string) (string, error) {
		if strings.Contains(prompt, "excerpt from a corporate document") {
			return "Acme Corp", nil
		}
		return "1,234.5", nil
	}}
	retriever := rag.NewRetriever(fakeEmbedder{}, factory, nopLogger{})
	company := rag.NewCompanyResolver(retriever, model, nopLogger{})
	engine := rag.NewEngine(retriever, model, company, nil, 3, nopLogger{})

	svc := NewQuestionnaireService(factory, engine, 0, nopLogger{})

	res, err := svc.Extract(ctx, sessionId, "scope1")
	require.NoError(t, err)
	assert.Equal(t, []string{"scope1"}, res.Extracted)
	assert.Equal(t, 1234.5, res.Values["scope1"])
	assert.Equal(t, []string{"report.pdf:3"}, res.Sources["scope1"])

	// the stored record matches what the response reported
	answers, err := svc.GetAnswers(ctx, sessionId)
	require.NoError(t, err)
	assert.Equal(t, 1234.5, answers.Values["scope1"])
}

func TestExtractUnknownField(t *testing.T) {
	svc, _ := newMergeService(t)
	_, err := svc.Extract(context.Background(), uuid.New(), "no_such_field")
	assert.Error(t, err)
}

func TestVisionExtractRejectsNonKPIField(t *testing.T) {
	svc, _ := newMergeService(t)
	_, err := svc.VisionExtract(context.Background(), uuid.New(), "policy_options")
	assert.Error(t, err)
}

type stubRenderer struct{}

func (stubRenderer) RenderPage(ctx context.Context, path string, page int) ([]byte, error) {
	return []byte("png"), nil
}

type stubVisionProvider struct {
	text string
}

func (p *stubVisionProvider) ExtractText(ctx context.Context, imagePNG []byte, prompt string) (string, error) {
	return p.text, nil
}

func TestVisionExtractReadsPageValue(t *testing.T) {
	factory := memory.NewFactory()
	sessionId := uuid.New()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	page := 2
	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.PassageRepository().Create(ctx, &entity.Passage{
		Id:         uuid.New(),
		SessionId:  sessionId,
		Content:    "emissions table",
		SourceFile: "report.pdf",
		SourcePath: &path,
		Page:       &page,
		Kind:       entity.PassageKindTable,
		Embedding:  []float32{1, 0, 0},
	}))

	model := &fakeLLM{generate: func(prompt string) (string, error) {
		if strings.Contains(prompt, "excerpt from a corporate document") {
			return "Acme Corp", nil
		}
		return "unknown", nil
	}}
	retriever := rag.NewRetriever(fakeEmbedder{}, factory, nopLogger{})
	company := rag.NewCompanyResolver(retriever, model, nopLogger{})
	visionExtractor := vision.NewExtractor(stubRenderer{}, &stubVisionProvider{text: "1,234.5"}, 0, nopLogger{})
	engine := rag.NewEngine(retriever, model, company, visionExtractor, 3, nopLogger{})

	svc := NewQuestionnaireService(factory, engine, 0, nopLogger{})

	res, err := svc.VisionExtract(ctx, sessionId, "scope1")
	require.NoError(t, err)
	assert.Equal(t, 1234.5, res.Value)
	assert.Equal(t, "report.pdf:page_3_fullpage", res.Ref)

	// running it again reads the same value from the same page
	again, err := svc.VisionExtract(ctx, sessionId, "scope1")
	require.NoError(t, err)
	assert.Equal(t, res, again)

	answers, err := svc.GetAnswers(ctx, sessionId)
	require.NoError(t, err)
	assert.Equal(t, 1234.5, answers.Values["scope1"])
	assert.Equal(t, []string{"report.pdf:page_3_fullpage"}, answers.Sources["scope1"])
}
