package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

const EmbeddingDimensions = 768 // nomic-embed-text

// ChunkModel is one context-prefixed segment of lesson text together with its
// embedding. CourseTitle and LessonNumber are back-references used as exact
// match search filters; ChunkIndex is the zero-based position within the
// course's ingested corpus, preserved for attribution.
type ChunkModel struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content      string          `json:"content" gorm:"type:text;not null"`
	CourseTitle  string          `json:"courseTitle" gorm:"not null;index"`
	LessonNumber *int            `json:"lessonNumber,omitempty" gorm:"index"`
	ChunkIndex   int             `json:"chunkIndex" gorm:"not null"`
	Embedding    pgvector.Vector `json:"-" gorm:"type:vector(768)"`
	CreatedAt    time.Time       `json:"createdAt" gorm:"autoCreateTime"`
}

func (ChunkModel) TableName() string { return "chunks" }
