package mapper

import (
	"encoding/json"
	"time"

	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/model"

	"gorm.io/datatypes"
)

type AnswerRecordMapper struct{}

func NewAnswerRecordMapper() *AnswerRecordMapper {
	return &AnswerRecordMapper{}
}

func (m *AnswerRecordMapper) ToEntity(r *model.AnswerRecord) (*entity.AnswerRecord, error) {
	if r == nil {
		return nil, nil
	}

	values := map[string]interface{}{}
	if len(r.Values) > 0 {
		if err := json.Unmarshal(r.Values, &values); err != nil {
			return nil, err
		}
	}

	sources := map[string][]string{}
	if len(r.Sources) > 0 {
		if err := json.Unmarshal(r.Sources, &sources); err != nil {
			return nil, err
		}
	}

	conflicts := map[string][]interface{}{}
	if len(r.Conflicts) > 0 {
		if err := json.Unmarshal(r.Conflicts, &conflicts); err != nil {
			return nil, err
		}
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.AnswerRecord{
		Id:        r.Id,
		SessionId: r.SessionId,
		Values:    values,
		Sources:   sources,
		Conflicts: conflicts,
		CreatedAt: r.CreatedAt,
		UpdatedAt: updatedAt,
	}, nil
}

func (m *AnswerRecordMapper) ToModel(r *entity.AnswerRecord) (*model.AnswerRecord, error) {
	if r == nil {
		return nil, nil
	}

	values, err := json.Marshal(orEmptyValues(r.Values))
	if err != nil {
		return nil, err
	}
	sources, err := json.Marshal(orEmptySources(r.Sources))
	if err != nil {
		return nil, err
	}
	conflicts, err := json.Marshal(orEmptyConflicts(r.Conflicts))
	if err != nil {
		return nil, err
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.AnswerRecord{
		Id:        r.Id,
		SessionId: r.SessionId,
		Values:    datatypes.JSON(values),
		Sources:   datatypes.JSON(sources),
		Conflicts: datatypes.JSON(conflicts),
		CreatedAt: r.CreatedAt,
		UpdatedAt: updatedAt,
	}, nil
}

func orEmptyValues(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}

func orEmptySources(m map[string][]string) map[string][]string {
	if m == nil {
		return map[string][]string{}
	}
	return m
}

func orEmptyConflicts(m map[string][]interface{}) map[string][]interface{} {
	if m == nil {
		return map[string][]interface{}{}
	}
	return m
}
