package memory

import (
	"context"
	"math"
	"sort"
	"time"

	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/repository/specification"

	"github.com/google/uuid"
)

type passageRepository struct {
	store *Store
}

func (r *passageRepository) Create(ctx context.Context, passage *entity.Passage) error {
	return r.CreateBulk(ctx, []*entity.Passage{passage})
}

func (r *passageRepository) CreateBulk(ctx context.Context, passages []*entity.Passage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, p := range passages {
		if p.Id == uuid.Nil {
			p.Id = uuid.New()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now()
		}
		cp := *p
		r.store.passages = append(r.store.passages, &cp)
	}
	return nil
}

func (r *passageRepository) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.passages[:0]
	for _, p := range r.store.passages {
		if p.SessionId != sessionId {
			kept = append(kept, p)
		}
	}
	r.store.passages = kept
	return nil
}

func (r *passageRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Passage, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *passageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Passage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	q := parseSpecs(specs...)
	var out []*entity.Passage
	for _, p := range r.store.passages {
		if q.id != nil && p.Id != *q.id {
			continue
		}
		if q.sessionId != nil && p.SessionId != *q.sessionId {
			continue
		}
		cp := *p
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

func (r *passageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func (r *passageRepository) SearchSimilar(ctx context.Context, embedding []float32, limit int, sessionId uuid.UUID) ([]*entity.Passage, error) {
	if limit <= 0 {
		limit = 3
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	type scored struct {
		passage *entity.Passage
		dist    float64
		order   int
	}
	var candidates []scored
	for i, p := range r.store.passages {
		if p.SessionId != sessionId {
			continue
		}
		cp := *p
		candidates = append(candidates, scored{
			passage: &cp,
			dist:    cosineDistance(embedding, p.Embedding),
			order:   i,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].order < candidates[j].order
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]*entity.Passage, len(candidates))
	for i, c := range candidates {
		out[i] = c.passage
	}
	return out, nil
}

func cosineDistance(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 1
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
