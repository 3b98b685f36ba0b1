package service

import (
	"context"
	"testing"

	"esg-questionnaire-be/internal/dto"
	"esg-questionnaire-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCreateAndList(t *testing.T) {
	factory := memory.NewFactory()
	svc := NewSessionService(factory, nopLogger{})
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateSessionRequest{Name: "FY2025 report"})
	require.NoError(t, err)
	assert.Equal(t, "FY2025 report", created.Name)
	assert.NotEqual(t, uuid.Nil, created.Id)

	sessions, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, created.Id, sessions[0].Id)
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	factory := memory.NewFactory()
	svc := NewSessionService(factory, nopLogger{})
	ctx := context.Background()

	id := uuid.New()
	first, err := svc.GetOrCreate(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, first.Id)
	assert.Contains(t, first.Name, id.String()[:8])

	second, err := svc.GetOrCreate(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)

	sessions, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}
