package memory

import (
	"sync"

	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/repository/specification"

	"github.com/google/uuid"
)

// Store is a shared in-memory dataset backing the memory repositories.
// It exists so tests can run the full service stack without Postgres.
type Store struct {
	mu            sync.RWMutex
	sessions      []*entity.Session
	passages      []*entity.Passage
	answerRecords []*entity.AnswerRecord
	chatTurns     []*entity.ChatTurn
}

func NewStore() *Store {
	return &Store{}
}

// query is the subset of specifications the memory repositories interpret.
type query struct {
	id        *uuid.UUID
	sessionId *uuid.UUID
	orderDesc bool
	limit     int
}

func parseSpecs(specs ...specification.Specification) query {
	q := query{}
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			id := s.ID
			q.id = &id
		case specification.BySessionID:
			id := s.SessionID
			q.sessionId = &id
		case specification.OrderBy:
			q.orderDesc = s.Desc
		case specification.Limit:
			q.limit = s.N
		case specification.Pagination:
			q.limit = s.Limit
		}
	}
	return q
}
