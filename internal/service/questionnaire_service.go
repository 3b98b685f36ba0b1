package service

import (
	"context"
	"fmt"

	"esg-questionnaire-be/internal/constant"
	"esg-questionnaire-be/internal/dto"
	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/pkg/logger"
	"esg-questionnaire-be/internal/repository/unitofwork"
	"esg-questionnaire-be/pkg/rag"

	"github.com/google/uuid"
)

type IQuestionnaireService interface {
	GetAnswers(ctx context.Context, sessionId uuid.UUID) (*dto.AnswersResponse, error)
	// SaveAnswers shallow-merges values into the current record and
	// replaces the sources/conflicts maps wholesale with the supplied,
	// already-accumulated ones.
	SaveAnswers(ctx context.Context, sessionId uuid.UUID, values map[string]interface{}, sources map[string][]string, conflicts map[string][]interface{}) error
	// MergeValues applies a value-only merge patch, leaving the side maps
	// untouched.
	MergeValues(ctx context.Context, sessionId uuid.UUID, values map[string]interface{}) error
	// OverwriteValues replaces the whole value map (direct form edit).
	OverwriteValues(ctx context.Context, sessionId uuid.UUID, values map[string]interface{}) (*dto.AnswersResponse, error)
	// Extract refreshes one field (key set) or every field (key empty).
	Extract(ctx context.Context, sessionId uuid.UUID, key string) (*dto.ExtractResponse, error)
	VisionExtract(ctx context.Context, sessionId uuid.UUID, key string) (*dto.VisionExtractResponse, error)
	ModuleSummary(ctx context.Context, sessionId uuid.UUID, key string) (*dto.ModuleSummaryResponse, error)
}

type questionnaireService struct {
	uowFactory unitofwork.RepositoryFactory
	engine     *rag.Engine
	moduleTopK int
	logger     logger.ILogger
}

func NewQuestionnaireService(
	uowFactory unitofwork.RepositoryFactory,
	engine *rag.Engine,
	moduleTopK int,
	logger logger.ILogger,
) IQuestionnaireService {
	if moduleTopK <= 0 {
		moduleTopK = 5
	}
	return &questionnaireService{
		uowFactory: uowFactory,
		engine:     engine,
		moduleTopK: moduleTopK,
		logger:     logger,
	}
}

func (s *questionnaireService) GetAnswers(ctx context.Context, sessionId uuid.UUID) (*dto.AnswersResponse, error) {
	record, err := s.currentRecord(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	return &dto.AnswersResponse{
		SessionId: sessionId,
		Values:    record.Values,
		Sources:   record.Sources,
		Conflicts: record.Conflicts,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

// currentRecord loads the latest snapshot, or an empty one when the
// session has no answers yet.
func (s *questionnaireService) currentRecord(ctx context.Context, sessionId uuid.UUID) (*entity.AnswerRecord, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.AnswerRecordRepository().FindLatestBySession(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if record == nil {
		record = &entity.AnswerRecord{
			SessionId: sessionId,
			Values:    map[string]interface{}{},
			Sources:   map[string][]string{},
			Conflicts: map[string][]interface{}{},
		}
	}
	return record, nil
}

// writeRecord persists the record with a single write. There is no row
// locking here: two concurrent read-modify-write cycles can lose the
// earlier one's update.
func (s *questionnaireService) writeRecord(ctx context.Context, record *entity.AnswerRecord) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.AnswerRecordRepository()
	if record.Id == uuid.Nil {
		record.Id = uuid.New()
		return repo.Create(ctx, record)
	}
	return repo.Update(ctx, record)
}

func (s *questionnaireService) SaveAnswers(ctx context.Context, sessionId uuid.UUID, values map[string]interface{}, sources map[string][]string, conflicts map[string][]interface{}) error {
	record, err := s.currentRecord(ctx, sessionId)
	if err != nil {
		return err
	}

	for k, v := range values {
		record.Values[k] = v
	}

	// side maps are replaced wholesale, restricted to keys that exist in
	// the merged value map
	record.Sources = map[string][]string{}
	for k, v := range sources {
		if _, ok := record.Values[k]; ok {
			record.Sources[k] = v
		}
	}
	record.Conflicts = map[string][]interface{}{}
	for k, v := range conflicts {
		if _, ok := record.Values[k]; ok {
			record.Conflicts[k] = v
		}
	}

	return s.writeRecord(ctx, record)
}

func (s *questionnaireService) MergeValues(ctx context.Context, sessionId uuid.UUID, values map[string]interface{}) error {
	record, err := s.currentRecord(ctx, sessionId)
	if err != nil {
		return err
	}
	for k, v := range values {
		record.Values[k] = v
	}
	return s.writeRecord(ctx, record)
}

func (s *questionnaireService) OverwriteValues(ctx context.Context, sessionId uuid.UUID, values map[string]interface{}) (*dto.AnswersResponse, error) {
	record, err := s.currentRecord(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	record.Values = map[string]interface{}{}
	for k, v := range values {
		record.Values[k] = v
	}

	// existing side maps survive a form edit, minus keys that no longer
	// have a value
	for k := range record.Sources {
		if _, ok := record.Values[k]; !ok {
			delete(record.Sources, k)
		}
	}
	for k := range record.Conflicts {
		if _, ok := record.Values[k]; !ok {
			delete(record.Conflicts, k)
		}
	}

	if err := s.writeRecord(ctx, record); err != nil {
		return nil, err
	}
	return &dto.AnswersResponse{
		SessionId: sessionId,
		Values:    record.Values,
		Sources:   record.Sources,
		Conflicts: record.Conflicts,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func (s *questionnaireService) Extract(ctx context.Context, sessionId uuid.UUID, key string) (*dto.ExtractResponse, error) {
	fields := constant.Fields
	if key != "" {
		field, ok := constant.FieldByKey(key)
		if !ok {
			return nil, fmt.Errorf("unknown questionnaire field: %s", key)
		}
		fields = []constant.FieldSpec{field}
	}

	record, err := s.currentRecord(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	values := map[string]interface{}{}
	extracted := make([]string, 0, len(fields))
	for _, field := range fields {
		reduction := s.engine.ExtractField(ctx, sessionId, field)
		values[field.Key] = reduction.Value
		applySideMaps(record, field.Key, reduction)
		extracted = append(extracted, field.Key)
	}

	if err := s.SaveAnswers(ctx, sessionId, values, record.Sources, record.Conflicts); err != nil {
		return nil, err
	}

	answers, err := s.GetAnswers(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	return &dto.ExtractResponse{
		SessionId: sessionId,
		Extracted: extracted,
		Values:    answers.Values,
		Sources:   answers.Sources,
		Conflicts: answers.Conflicts,
	}, nil
}

func (s *questionnaireService) VisionExtract(ctx context.Context, sessionId uuid.UUID, key string) (*dto.VisionExtractResponse, error) {
	field, ok := constant.FieldByKey(key)
	if !ok {
		return nil, fmt.Errorf("unknown questionnaire field: %s", key)
	}
	if !constant.IsKPIField(key) {
		return nil, fmt.Errorf("field %s is not a numeric KPI", key)
	}

	reduction := s.engine.ExtractFieldVision(ctx, sessionId, field)

	record, err := s.currentRecord(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	applySideMaps(record, key, reduction)
	if err := s.SaveAnswers(ctx, sessionId, map[string]interface{}{key: reduction.Value}, record.Sources, record.Conflicts); err != nil {
		return nil, err
	}

	resp := &dto.VisionExtractResponse{
		Key:   key,
		Value: reduction.Value,
	}
	if len(reduction.Sources) > 0 {
		resp.Ref = reduction.Sources[0]
	}
	return resp, nil
}

func (s *questionnaireService) ModuleSummary(ctx context.Context, sessionId uuid.UUID, key string) (*dto.ModuleSummaryResponse, error) {
	keys := constant.ModuleSummaryKeys
	if key != "" {
		if _, ok := constant.FieldByKey(key); !ok {
			return nil, fmt.Errorf("unknown questionnaire field: %s", key)
		}
		keys = []string{key}
	}

	record, err := s.currentRecord(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	values := map[string]interface{}{}
	results := map[string]dto.ModuleResult{}
	for _, k := range keys {
		field, _ := constant.FieldByKey(k)
		analysis := s.engine.AnalyzeModules(ctx, sessionId, field, s.moduleTopK)

		results[k] = dto.ModuleResult{
			Modules: analysis.Modules,
			Details: analysis.Details,
			Summary: analysis.Summary,
			Sources: analysis.Sources,
		}

		modulesKey := k + "_modules"
		detailsKey := k + "_module_details"
		summaryKey := k + "_module_summary"
		values[modulesKey] = analysis.Modules
		values[detailsKey] = analysis.Details
		values[summaryKey] = analysis.Summary
		for _, derived := range []string{modulesKey, detailsKey, summaryKey} {
			delete(record.Conflicts, derived)
			if len(analysis.Sources) > 0 {
				record.Sources[derived] = analysis.Sources
			} else {
				delete(record.Sources, derived)
			}
		}
	}

	saved := true
	if err := s.SaveAnswers(ctx, sessionId, values, record.Sources, record.Conflicts); err != nil {
		saved = false
		s.logger.Error("service.questionnaire", "failed to persist module summary", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}

	return &dto.ModuleSummaryResponse{
		SessionId: sessionId,
		Results:   results,
		Saved:     saved,
	}, nil
}

// applySideMaps overlays one field's reduction onto the accumulated side
// maps of the record being rebuilt.
func applySideMaps(record *entity.AnswerRecord, key string, reduction rag.Reduction) {
	if len(reduction.Sources) > 0 {
		record.Sources[key] = reduction.Sources
	} else {
		delete(record.Sources, key)
	}
	if len(reduction.Conflicts) > 0 {
		entries := make([]interface{}, len(reduction.Conflicts))
		for i, c := range reduction.Conflicts {
			entries[i] = c
		}
		record.Conflicts[key] = entries
	} else {
		delete(record.Conflicts, key)
	}
}
