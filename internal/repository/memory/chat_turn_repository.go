package memory

import (
	"context"
	"time"

	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/repository/specification"

	"github.com/google/uuid"
)

type chatTurnRepository struct {
	store *Store
}

func (r *chatTurnRepository) Create(ctx context.Context, turn *entity.ChatTurn) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if turn.Id == uuid.Nil {
		turn.Id = uuid.New()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}
	cp := *turn
	r.store.chatTurns = append(r.store.chatTurns, &cp)
	return nil
}

func (r *chatTurnRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	q := parseSpecs(specs...)
	var out []*entity.ChatTurn
	for _, t := range r.store.chatTurns {
		if q.id != nil && t.Id != *q.id {
			continue
		}
		if q.sessionId != nil && t.SessionId != *q.sessionId {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	if q.orderDesc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if q.limit > 0 && len(out) > q.limit {
		out = out[:q.limit]
	}
	return out, nil
}

func (r *chatTurnRepository) FindRecentBySession(ctx context.Context, sessionId uuid.UUID, n int) ([]*entity.ChatTurn, error) {
	recent, err := r.FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: n},
	)
	if err != nil {
		return nil, err
	}

	// back to chronological order
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	return recent, nil
}

func (r *chatTurnRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}
