package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// EmbeddingDimensions matches the default output of gemini-embedding-001.
const EmbeddingDimensions = 3072

type SubmissionEmbedding struct {
	SubmissionID uuid.UUID       `gorm:"type:uuid;primaryKey" json:"submissionId"`
	Embedding    pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (e *SubmissionEmbedding) TableName() string {
	return "submission_embeddings"
}
