package service

import (
	"context"
	"encoding/json"
	"strings"

	"esg-questionnaire-be/internal/constant"
	"esg-questionnaire-be/internal/dto"
	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/pkg/logger"
	"esg-questionnaire-be/internal/repository/unitofwork"
	"esg-questionnaire-be/pkg/embedding"
	"esg-questionnaire-be/pkg/ingest"
	"esg-questionnaire-be/pkg/llm"
	"esg-questionnaire-be/pkg/rag"
	"esg-questionnaire-be/pkg/utils"

	"github.com/google/uuid"
)

type IIngestionService interface {
	// Ingest chunks, embeds and stores the given files for a session.
	// Extraction failures never abort the batch; each file gets a report.
	Ingest(ctx context.Context, sessionId uuid.UUID, filePaths []string) []dto.FileIngestReport
	// Upload is the full upload flow: ingest, collect per-KPI retrieval
	// context and a summary into the answer record, then raise the
	// background answer-refresh event.
	Upload(ctx context.Context, sessionId uuid.UUID, filePaths []string) (*dto.UploadResponse, error)
}

type ingestionService struct {
	uowFactory           unitofwork.RepositoryFactory
	embeddingProvider    embedding.EmbeddingProvider
	llmProvider          llm.LLMProvider
	retriever            *rag.Retriever
	sessionService       ISessionService
	questionnaireService IQuestionnaireService
	publisherService     IPublisherService
	chunkSize            int
	chunkOverlap         int
	logger               logger.ILogger
}

func NewIngestionService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	retriever *rag.Retriever,
	sessionService ISessionService,
	questionnaireService IQuestionnaireService,
	publisherService IPublisherService,
	chunkSize int,
	chunkOverlap int,
	logger logger.ILogger,
) IIngestionService {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	if chunkOverlap < 0 {
		chunkOverlap = 50
	}
	return &ingestionService{
		uowFactory:           uowFactory,
		embeddingProvider:    embeddingProvider,
		llmProvider:          llmProvider,
		retriever:            retriever,
		sessionService:       sessionService,
		questionnaireService: questionnaireService,
		publisherService:     publisherService,
		chunkSize:            chunkSize,
		chunkOverlap:         chunkOverlap,
		logger:               logger,
	}
}

func (s *ingestionService) Ingest(ctx context.Context, sessionId uuid.UUID, filePaths []string) []dto.FileIngestReport {
	reports := make([]dto.FileIngestReport, 0, len(filePaths))
	for _, path := range filePaths {
		reports = append(reports, s.ingestFile(ctx, sessionId, path))
	}
	return reports
}

func (s *ingestionService) ingestFile(ctx context.Context, sessionId uuid.UUID, path string) dto.FileIngestReport {
	report := dto.FileIngestReport{FileName: baseName(path)}

	result, err := ingest.Load(path)
	if err != nil {
		report.Error = err.Error()
		s.logger.Warn("service.ingestion", "file extraction failed, skipping file", map[string]interface{}{
			"file":  path,
			"error": err.Error(),
		})
		return report
	}
	report.Units = len(result.Units)
	report.Warnings = result.Warnings

	var passages []*entity.Passage
	for _, unit := range result.Units {
		chunks := utils.SplitText(unit.Content, s.chunkSize, s.chunkOverlap)
		report.Chunks += len(chunks)
		for i, chunk := range chunks {
			embeddingRes, err := s.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
			if err != nil {
				s.logger.Warn("service.ingestion", "embedding failed, skipping chunk", map[string]interface{}{
					"file":  unit.SourceFile,
					"error": err.Error(),
				})
				continue
			}
			passages = append(passages, &entity.Passage{
				Id:         uuid.New(),
				SessionId:  sessionId,
				Content:    chunk,
				SourceFile: unit.SourceFile,
				Page:       unit.Page,
				SourcePath: unit.SourcePath,
				Kind:       unit.Kind,
				ChunkIndex: i,
				Embedding:  embeddingRes.Embedding.Values,
			})
		}
	}

	if len(passages) > 0 {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.PassageRepository().CreateBulk(ctx, passages); err != nil {
			report.Error = err.Error()
			s.logger.Error("service.ingestion", "failed to store passages", map[string]interface{}{
				"file":  path,
				"error": err.Error(),
			})
			return report
		}
		report.Stored = len(passages)
	}

	return report
}

func (s *ingestionService) Upload(ctx context.Context, sessionId uuid.UUID, filePaths []string) (*dto.UploadResponse, error) {
	session, err := s.sessionService.GetOrCreate(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	reports := s.Ingest(ctx, session.Id, filePaths)

	ragContexts := s.collectRagContexts(ctx, session.Id)
	summary := s.summarize(ctx, session.Id)

	sideValues := map[string]interface{}{}
	if len(ragContexts) > 0 {
		sideValues["_rag_contexts"] = ragContexts
	}
	if summary != "" {
		sideValues["_summary"] = summary
	}
	if len(sideValues) > 0 {
		if err := s.questionnaireService.MergeValues(ctx, session.Id, sideValues); err != nil {
			return nil, err
		}
	}

	payload, err := json.Marshal(dto.PublishExtractAnswersMessage{SessionId: session.Id})
	if err == nil {
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			s.logger.Error("service.ingestion", "failed to publish answer-refresh event", map[string]interface{}{
				"session_id": session.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	answers, err := s.questionnaireService.GetAnswers(ctx, session.Id)
	if err != nil {
		return nil, err
	}

	return &dto.UploadResponse{
		SessionId:   session.Id,
		Files:       reports,
		Answers:     answers.Values,
		RagContexts: ragContexts,
		Summary:     summary,
	}, nil
}

// collectRagContexts grabs the single best passage per numeric KPI
// question so the frontend can show what the extractor will look at.
func (s *ingestionService) collectRagContexts(ctx context.Context, sessionId uuid.UUID) map[string]string {
	contexts := map[string]string{}
	for _, key := range constant.KPIFieldKeys {
		field, ok := constant.FieldByKey(key)
		if !ok {
			continue
		}
		question := field.RenderQuestion(constant.CompanyPlaceholder)
		passages := s.retriever.TopK(ctx, sessionId, question, 1)
		if len(passages) > 0 {
			contexts[key] = passages[0].Content
		}
	}
	return contexts
}

func (s *ingestionService) summarize(ctx context.Context, sessionId uuid.UUID) string {
	passages := s.retriever.TopK(ctx, sessionId, "What does this document describe and which company is it about?", 3)
	if len(passages) == 0 {
		return ""
	}

	var parts []string
	for _, p := range passages {
		parts = append(parts, p.Content)
	}
	prompt := "Summarize the following document excerpts in two sentences:\n\n" + strings.Join(parts, "\n\n")

	summary, err := s.llmProvider.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("service.ingestion", "document summary failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return ""
	}
	return strings.TrimSpace(summary)
}

func baseName(path string) string {
	if idx := strings.LastIndexAny(path, `/\`); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
