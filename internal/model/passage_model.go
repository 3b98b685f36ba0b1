package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Passage struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Content    string          `gorm:"type:text;not null"`
	SourceFile string          `gorm:"type:varchar(512);not null"`
	Page       *int            `gorm:""`
	SourcePath *string         `gorm:"type:text"`
	Kind       string          `gorm:"type:varchar(16);not null;default:text"`
	ChunkIndex int             `gorm:"default:0"`
	Embedding  pgvector.Vector `gorm:"type:vector(1536)"` // DashScope text-embedding-v1 uses 1536 dimensions
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

func (Passage) TableName() string {
	return "passages"
}
