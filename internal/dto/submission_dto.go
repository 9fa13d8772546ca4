package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubmissionSummaryDTO struct {
	ID               uuid.UUID `json:"id"`
	FileName         string    `json:"fileName"`
	FileType         string    `json:"fileType"`
	FileSize         int64     `json:"fileSize"`
	AnalysisType     string    `json:"analysisType"`
	ResumeTextLength int       `json:"resumeTextLength"`
	Score            *float64  `json:"score,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type SubmissionDTO struct {
	SubmissionSummaryDTO
	ResumeText         string          `json:"resumeText"`
	JobDescriptionText *string         `json:"jobDescriptionText,omitempty"`
	AnalyzerResults    *AnalyzerResult `json:"analyzerResults,omitempty"`
	MatcherResults     *MatcherResult  `json:"matcherResults,omitempty"`
	IPAddress          string          `json:"ipAddress"`
	UserAgent          string          `json:"userAgent"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

type SubmissionStatsDTO struct {
	Total      int64            `json:"total"`
	ByType     map[string]int64 `json:"byType"`
	StorageOn  bool             `json:"storageEnabled"`
	Embeddings bool             `json:"embeddingsEnabled"`
}

type SimilarSubmissionDTO struct {
	ID           uuid.UUID `json:"id"`
	FileName     string    `json:"fileName"`
	AnalysisType string    `json:"analysisType"`
	Distance     float64   `json:"distance"`
	CreatedAt    time.Time `json:"createdAt"`
}
