package implementation

import (
	"context"
	"errors"

	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/mapper"
	"esg-questionnaire-be/internal/model"
	"esg-questionnaire-be/internal/repository/contract"
	"esg-questionnaire-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnswerRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AnswerRecordMapper
}

func NewAnswerRecordRepository(db *gorm.DB) contract.AnswerRecordRepository {
	return &AnswerRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewAnswerRecordMapper(),
	}
}

func (r *AnswerRecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AnswerRecordRepositoryImpl) Create(ctx context.Context, record *entity.AnswerRecord) error {
	m, err := r.mapper.ToModel(record)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*record = *e
	return nil
}

func (r *AnswerRecordRepositoryImpl) Update(ctx context.Context, record *entity.AnswerRecord) error {
	m, err := r.mapper.ToModel(record)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*record = *e
	return nil
}

func (r *AnswerRecordRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnswerRecord, error) {
	var m model.AnswerRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *AnswerRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnswerRecord, error) {
	var models []*model.AnswerRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.AnswerRecord, len(models))
	for i, m := range models {
		e, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}

func (r *AnswerRecordRepositoryImpl) FindLatestBySession(ctx context.Context, sessionId uuid.UUID) (*entity.AnswerRecord, error) {
	return r.FindOne(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}
