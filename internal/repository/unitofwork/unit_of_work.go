package unitofwork

import (
	"context"

	"esg-questionnaire-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.SessionRepository
	PassageRepository() contract.PassageRepository
	AnswerRecordRepository() contract.AnswerRecordRepository
	ChatTurnRepository() contract.ChatTurnRepository
}
