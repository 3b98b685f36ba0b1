package memory

import (
	"context"

	"esg-questionnaire-be/internal/repository/contract"
	"esg-questionnaire-be/internal/repository/unitofwork"
)

// Factory is an in-memory unitofwork.RepositoryFactory for tests.
type Factory struct {
	store *Store
}

func NewFactory() *Factory {
	return &Factory{store: NewStore()}
}

func (f *Factory) Store() *Store {
	return f.store
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

type unitOfWork struct {
	store *Store
}

// Transactions are no-ops for the in-memory store.

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) SessionRepository() contract.SessionRepository {
	return &sessionRepository{store: u.store}
}

func (u *unitOfWork) PassageRepository() contract.PassageRepository {
	return &passageRepository{store: u.store}
}

func (u *unitOfWork) AnswerRecordRepository() contract.AnswerRecordRepository {
	return &answerRecordRepository{store: u.store}
}

func (u *unitOfWork) ChatTurnRepository() contract.ChatTurnRepository {
	return &chatTurnRepository{store: u.store}
}
