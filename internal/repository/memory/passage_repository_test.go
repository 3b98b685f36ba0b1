package memory

import (
	"context"
	"testing"

	"esg-questionnaire-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeTestPassage(t *testing.T, factory *Factory, sessionId uuid.UUID, content string, embedding []float32) {
	t.Helper()
	uow := factory.NewUnitOfWork(context.Background())
	err := uow.PassageRepository().Create(context.Background(), &entity.Passage{
		Id:        uuid.New(),
		SessionId: sessionId,
		Content:   content,
		Kind:      entity.PassageKindText,
		Embedding: embedding,
	})
	require.NoError(t, err)
}

func TestSearchSimilarRanksByCosineDistance(t *testing.T) {
	factory := NewFactory()
	sessionId := uuid.New()

	storeTestPassage(t, factory, sessionId, "far", []float32{0, 1, 0})
	storeTestPassage(t, factory, sessionId, "near", []float32{1, 0, 0})
	storeTestPassage(t, factory, sessionId, "middle", []float32{1, 1, 0})

	uow := factory.NewUnitOfWork(context.Background())
	got, err := uow.PassageRepository().SearchSimilar(context.Background(), []float32{1, 0, 0}, 2, sessionId)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "near", got[0].Content)
	assert.Equal(t, "middle", got[1].Content)
}

func TestSearchSimilarIsSessionScoped(t *testing.T) {
	factory := NewFactory()
	mine := uuid.New()
	theirs := uuid.New()

	storeTestPassage(t, factory, mine, "mine", []float32{1, 0, 0})
	storeTestPassage(t, factory, theirs, "theirs", []float32{1, 0, 0})

	uow := factory.NewUnitOfWork(context.Background())
	got, err := uow.PassageRepository().SearchSimilar(context.Background(), []float32{1, 0, 0}, 10, mine)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mine", got[0].Content)
}

func TestDeleteBySessionId(t *testing.T) {
	factory := NewFactory()
	sessionId := uuid.New()
	other := uuid.New()

	storeTestPassage(t, factory, sessionId, "a", []float32{1, 0, 0})
	storeTestPassage(t, factory, other, "b", []float32{1, 0, 0})

	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.PassageRepository().DeleteBySessionId(context.Background(), sessionId))

	count, err := uow.PassageRepository().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
