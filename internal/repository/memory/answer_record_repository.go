package memory

import (
	"context"
	"time"

	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/repository/specification"

	"github.com/google/uuid"
)

type answerRecordRepository struct {
	store *Store
}

func (r *answerRecordRepository) Create(ctx context.Context, record *entity.AnswerRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if record.Id == uuid.Nil {
		record.Id = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	cp := copyAnswerRecord(record)
	r.store.answerRecords = append(r.store.answerRecords, cp)
	return nil
}

func (r *answerRecordRepository) Update(ctx context.Context, record *entity.AnswerRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, rec := range r.store.answerRecords {
		if rec.Id == record.Id {
			r.store.answerRecords[i] = copyAnswerRecord(record)
			return nil
		}
	}
	r.store.answerRecords = append(r.store.answerRecords, copyAnswerRecord(record))
	return nil
}

func (r *answerRecordRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnswerRecord, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *answerRecordRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnswerRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	q := parseSpecs(specs...)
	var out []*entity.AnswerRecord
	for _, rec := range r.store.answerRecords {
		if q.id != nil && rec.Id != *q.id {
			continue
		}
		if q.sessionId != nil && rec.SessionId != *q.sessionId {
			continue
		}
		out = append(out, copyAnswerRecord(rec))
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

func (r *answerRecordRepository) FindLatestBySession(ctx context.Context, sessionId uuid.UUID) (*entity.AnswerRecord, error) {
	return r.FindOne(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

func copyAnswerRecord(rec *entity.AnswerRecord) *entity.AnswerRecord {
	cp := *rec
	cp.Values = map[string]interface{}{}
	for k, v := range rec.Values {
		cp.Values[k] = v
	}
	cp.Sources = map[string][]string{}
	for k, v := range rec.Sources {
		cp.Sources[k] = append([]string(nil), v...)
	}
	cp.Conflicts = map[string][]interface{}{}
	for k, v := range rec.Conflicts {
		cp.Conflicts[k] = append([]interface{}(nil), v...)
	}
	return &cp
}
