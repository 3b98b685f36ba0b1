package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AnswerRecord struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Values    datatypes.JSON `gorm:"type:jsonb;not null"`
	Sources   datatypes.JSON `gorm:"type:jsonb"`
	Conflicts datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (AnswerRecord) TableName() string {
	return "answer_records"
}
