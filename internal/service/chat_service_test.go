package service

import (
	"context"
	"strings"
	"testing"

	"esg-questionnaire-be/internal/dto"
	"esg-questionnaire-be/internal/repository/memory"
	"esg-questionnaire-be/pkg/rag"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatFixture(t *testing.T, model *fakeLLM) (IChatService, IQuestionnaireService, *memory.Factory) {
	t.Helper()
	factory := memory.NewFactory()
	retriever := rag.NewRetriever(fakeEmbedder{}, factory, nopLogger{})
	company := rag.NewCompanyResolver(retriever, model, nopLogger{})
	questionnaireService := NewQuestionnaireService(factory, nil, 0, nopLogger{})
	chatService := NewChatService(factory, model, retriever, company, questionnaireService, 2, nopLogger{})
	return chatService, questionnaireService, factory
}

func TestChatSendMergesStatedValues(t *testing.T) {
	model := &fakeLLM{generate: func(prompt string) (string, error) {
		if strings.Contains(prompt, "filling in an ESG questionnaire") {
			return `{"scope one": 500}`, nil
		}
		return "Noted, I recorded 500 tons for Scope 1.", nil
	}}
	chatService, questionnaireService, _ := newChatFixture(t, model)

	sessionId := uuid.New()
	ctx := context.Background()
	require.NoError(t, questionnaireService.MergeValues(ctx, sessionId, map[string]interface{}{"scope2": 10.0}))

	res, err := chatService.Send(ctx, &dto.SendChatRequest{
		SessionId: sessionId,
		Message:   "Our scope one emissions are 500 tons",
	})
	require.NoError(t, err)

	assert.Equal(t, "Noted, I recorded 500 tons for Scope 1.", res.Reply)
	assert.Equal(t, map[string]interface{}{"scope1": 500.0}, res.UpdatedValues)

	// the merge kept untouched fields
	answers, err := questionnaireService.GetAnswers(ctx, sessionId)
	require.NoError(t, err)
	assert.Equal(t, 500.0, answers.Values["scope1"])
	assert.Equal(t, 10.0, answers.Values["scope2"])
}

func TestChatSendUnparseableUpdateIsNoOp(t *testing.T) {
	model := &fakeLLM{generate: func(prompt string) (string, error) {
		if strings.Contains(prompt, "filling in an ESG questionnaire") {
			return "no values mentioned", nil
		}
		return "Happy to help.", nil
	}}
	chatService, questionnaireService, _ := newChatFixture(t, model)

	sessionId := uuid.New()
	ctx := context.Background()
	require.NoError(t, questionnaireService.MergeValues(ctx, sessionId, map[string]interface{}{"scope2": 10.0}))

	res, err := chatService.Send(ctx, &dto.SendChatRequest{
		SessionId: sessionId,
		Message:   "What is scope 2 again?",
	})
	require.NoError(t, err)
	assert.Nil(t, res.UpdatedValues)

	answers, err := questionnaireService.GetAnswers(ctx, sessionId)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"scope2": 10.0}, answers.Values)
}

func TestChatHistoryIsChronological(t *testing.T) {
	model := &fakeLLM{generate: func(prompt string) (string, error) {
		if strings.Contains(prompt, "filling in an ESG questionnaire") {
			return "{}", nil
		}
		return "reply", nil
	}}
	chatService, _, _ := newChatFixture(t, model)

	sessionId := uuid.New()
	ctx := context.Background()
	for _, msg := range []string{"first", "second", "third"} {
		_, err := chatService.Send(ctx, &dto.SendChatRequest{SessionId: sessionId, Message: msg})
		require.NoError(t, err)
	}

	turns, err := chatService.History(ctx, sessionId)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "first", turns[0].UserInput)
	assert.Equal(t, "third", turns[2].UserInput)
}
