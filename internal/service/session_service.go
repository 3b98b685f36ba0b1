package service

import (
	"context"

	"esg-questionnaire-be/internal/dto"
	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/pkg/logger"
	"esg-questionnaire-be/internal/repository/specification"
	"esg-questionnaire-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	List(ctx context.Context) ([]*dto.SessionResponse, error)
	// GetOrCreate returns the session, creating it on demand so uploads
	// can target a fresh session id.
	GetOrCreate(ctx context.Context, id uuid.UUID) (*entity.Session, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	session := &entity.Session{
		Id:   uuid.New(),
		Name: req.Name,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("service.session", "session created", map[string]interface{}{
		"session_id": session.Id.String(),
	})

	return toSessionResponse(session), nil
}

func (s *sessionService) List(ctx context.Context) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		out[i] = toSessionResponse(session)
	}
	return out, nil
}

func (s *sessionService) GetOrCreate(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.SessionRepository()

	session, err := repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	session = &entity.Session{
		Id:   id,
		Name: "Session " + id.String()[:8],
	}
	if err := repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func toSessionResponse(session *entity.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:        session.Id,
		Name:      session.Name,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}
