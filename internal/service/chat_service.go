package service

import (
	"context"
	"encoding/json"

	"esg-questionnaire-be/internal/dto"
	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/pkg/logger"
	"esg-questionnaire-be/internal/repository/specification"
	"esg-questionnaire-be/internal/repository/unitofwork"
	"esg-questionnaire-be/pkg/llm"
	"esg-questionnaire-be/pkg/rag"

	"github.com/google/uuid"
)

// chatHistoryDepth is how many previous turns are replayed to the model.
const chatHistoryDepth = 5

type IChatService interface {
	Send(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	History(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatTurnResponse, error)
}

type chatService struct {
	uowFactory           unitofwork.RepositoryFactory
	llmProvider          llm.LLMProvider
	retriever            *rag.Retriever
	company              *rag.CompanyResolver
	questionnaireService IQuestionnaireService
	chatTopK             int
	logger               logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	retriever *rag.Retriever,
	company *rag.CompanyResolver,
	questionnaireService IQuestionnaireService,
	chatTopK int,
	logger logger.ILogger,
) IChatService {
	if chatTopK <= 0 {
		chatTopK = 2
	}
	return &chatService{
		uowFactory:           uowFactory,
		llmProvider:          llmProvider,
		retriever:            retriever,
		company:              company,
		questionnaireService: questionnaireService,
		chatTopK:             chatTopK,
		logger:               logger,
	}
}

func (s *chatService) Send(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	turns, err := uow.ChatTurnRepository().FindRecentBySession(ctx, req.SessionId, chatHistoryDepth)
	if err != nil {
		return nil, err
	}

	answers, err := s.questionnaireService.GetAnswers(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	answersJSON, err := json.Marshal(answers.Values)
	if err != nil {
		return nil, err
	}

	passages := s.retriever.TopK(ctx, req.SessionId, req.Message, s.chatTopK)
	var contextParts []string
	var sources []string
	for _, p := range passages {
		contextParts = append(contextParts, p.Content)
		sources = append(sources, rag.Provenance(p))
	}

	companyName := s.company.Resolve(ctx, req.SessionId)
	prompt := rag.ChatPrompt(companyName, string(answersJSON), joinParts(contextParts), req.Message)

	history := make([]llm.Message, 0, 2*len(turns)+1)
	for _, turn := range turns {
		history = append(history,
			llm.Message{Role: "user", Content: turn.UserInput},
			llm.Message{Role: "assistant", Content: turn.AiResponse},
		)
	}
	history = append(history, llm.Message{Role: "user", Content: prompt})

	reply, err := s.llmProvider.Chat(ctx, history)
	if err != nil {
		return nil, err
	}

	turn := &entity.ChatTurn{
		Id:         uuid.New(),
		SessionId:  req.SessionId,
		UserInput:  req.Message,
		AiResponse: reply,
	}
	if err := uow.ChatTurnRepository().Create(ctx, turn); err != nil {
		return nil, err
	}

	updated := s.applyChatUpdate(ctx, req.SessionId, req.Message)

	return &dto.SendChatResponse{
		SessionId:     req.SessionId,
		Reply:         reply,
		Sources:       sources,
		UpdatedValues: updated,
	}, nil
}

// applyChatUpdate extracts KPI values the user stated in their message and
// merges them into the answers. The whole path is best effort: extraction
// or parse failures leave the answers untouched.
func (s *chatService) applyChatUpdate(ctx context.Context, sessionId uuid.UUID, message string) map[string]interface{} {
	answer, err := s.llmProvider.Generate(ctx, rag.UpdateExtractionPrompt(message), llm.WithTemperature(0.1))
	if err != nil {
		s.logger.Warn("service.chat", "chat update extraction failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil
	}

	values, ok := rag.ParseChatUpdate(answer)
	if !ok || len(values) == 0 {
		return nil
	}

	if err := s.questionnaireService.MergeValues(ctx, sessionId, values); err != nil {
		s.logger.Error("service.chat", "failed to merge chat-derived values", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil
	}
	return values
}

func (s *chatService) History(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatTurnResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	turns, err := uow.ChatTurnRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ChatTurnResponse, len(turns))
	for i, turn := range turns {
		out[i] = &dto.ChatTurnResponse{
			Id:         turn.Id,
			UserInput:  turn.UserInput,
			AiResponse: turn.AiResponse,
			CreatedAt:  turn.CreatedAt,
		}
	}
	return out, nil
}

func joinParts(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "\n\n"
		}
		out += p
	}
	return out
}
