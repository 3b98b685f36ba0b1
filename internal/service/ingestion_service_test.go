package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"esg-questionnaire-be/internal/repository/memory"
	"esg-questionnaire-be/pkg/rag"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	published [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.published = append(p.published, payload)
	return nil
}

func newIngestionFixture(t *testing.T, model *fakeLLM) (IIngestionService, *memory.Factory, *fakePublisher) {
	t.Helper()
	factory := memory.NewFactory()
	retriever := rag.NewRetriever(fakeEmbedder{}, factory, nopLogger{})
	sessionService := NewSessionService(factory, nopLogger{})
	questionnaireService := NewQuestionnaireService(factory, nil, 0, nopLogger{})
	publisher := &fakePublisher{}
	svc := NewIngestionService(
		factory,
		fakeEmbedder{},
		model,
		retriever,
		sessionService,
		questionnaireService,
		publisher,
		500,
		50,
		nopLogger{},
	)
	return svc, factory, publisher
}

func writeTempDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIngestStoresPassages(t *testing.T) {
	model := &fakeLLM{generate: func(prompt string) (string, error) { return "ok", nil }}
	svc, factory, _ := newIngestionFixture(t, model)

	sessionId := uuid.New()
	path := writeTempDoc(t, "report.txt", "Scope 1 emissions were 1,234.5 tons CO2 in 2025.")

	reports := svc.Ingest(context.Background(), sessionId, []string{path})
	require.Len(t, reports, 1)
	assert.Equal(t, "report.txt", reports[0].FileName)
	assert.Equal(t, 1, reports[0].Units)
	assert.Equal(t, 1, reports[0].Stored)
	assert.Empty(t, reports[0].Error)

	uow := factory.NewUnitOfWork(context.Background())
	count, err := uow.PassageRepository().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestIngestReportsBadFileWithoutAbortingBatch(t *testing.T) {
	model := &fakeLLM{generate: func(prompt string) (string, error) { return "ok", nil }}
	svc, _, _ := newIngestionFixture(t, model)

	good := writeTempDoc(t, "good.txt", "usable content")
	missing := filepath.Join(t.TempDir(), "missing.txt")

	reports := svc.Ingest(context.Background(), uuid.New(), []string{missing, good})
	require.Len(t, reports, 2)
	assert.NotEmpty(t, reports[0].Error)
	assert.Equal(t, 1, reports[1].Stored)
}

func TestUploadCreatesSessionAndPublishesRefresh(t *testing.T) {
	model := &fakeLLM{generate: func(prompt string) (string, error) { return "A two sentence summary.", nil }}
	svc, factory, publisher := newIngestionFixture(t, model)

	sessionId := uuid.New()
	path := writeTempDoc(t, "report.txt", "Scope 1 emissions were 1,234.5 tons CO2 in 2025.")

	res, err := svc.Upload(context.Background(), sessionId, []string{path})
	require.NoError(t, err)

	assert.Equal(t, sessionId, res.SessionId)
	require.Len(t, res.Files, 1)
	assert.Equal(t, 1, res.Files[0].Stored)
	assert.Equal(t, "A two sentence summary.", res.Summary)
	assert.NotEmpty(t, res.RagContexts)
	assert.Len(t, publisher.published, 1)

	// the session was created on demand
	uow := factory.NewUnitOfWork(context.Background())
	sessions, err := uow.SessionRepository().FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, sessionId, sessions[0].Id)

	// side values landed in the answer record
	answers, err := NewQuestionnaireService(factory, nil, 0, nopLogger{}).GetAnswers(context.Background(), sessionId)
	require.NoError(t, err)
	assert.Equal(t, "A two sentence summary.", answers.Values["_summary"])
	assert.NotNil(t, answers.Values["_rag_contexts"])
}
