package model

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalysisType string

const (
	AnalysisTypeAnalyzer AnalysisType = "analyzer"
	AnalysisTypeMatcher  AnalysisType = "matcher"
)

func (t AnalysisType) Valid() bool {
	return t == AnalysisTypeAnalyzer || t == AnalysisTypeMatcher
}

type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
)

func (t FileType) Valid() bool {
	return t == FileTypePDF || t == FileTypeDOCX
}

// Submission is one analyzed resume. Exactly one of AnalyzerResults and
// MatcherResults is set, matching AnalysisType.
type Submission struct {
	ID                 uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FileName           string       `gorm:"type:varchar(255);not null" json:"fileName"`
	FileType           FileType     `gorm:"type:varchar(10);not null" json:"fileType"`
	FileSize           int64        `gorm:"not null;default:0" json:"fileSize"`
	AnalysisType       AnalysisType `gorm:"type:varchar(20);not null;index:idx_submissions_type_created,priority:1" json:"analysisType"`
	ResumeText         string       `gorm:"type:text;not null" json:"resumeText"`
	ResumeTextLength   int          `gorm:"not null" json:"resumeTextLength"`
	JobDescriptionText *string      `gorm:"type:text" json:"jobDescriptionText"`
	AnalyzerResults    *string      `gorm:"type:jsonb" json:"analyzerResults"`
	MatcherResults     *string      `gorm:"type:jsonb" json:"matcherResults"`
	IPAddress          string       `gorm:"type:varchar(64)" json:"ipAddress"`
	UserAgent          string       `gorm:"type:text" json:"userAgent"`
	CreatedAt          time.Time    `gorm:"index:idx_submissions_type_created,priority:2,sort:desc" json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

func (s *Submission) TableName() string {
	return "submissions"
}

// Results returns the stored JSON for the submission's analysis type.
func (s *Submission) Results() *string {
	if s.AnalysisType == AnalysisTypeMatcher {
		return s.MatcherResults
	}
	return s.AnalyzerResults
}

func (s *Submission) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.ResumeTextLength = utf8.RuneCountInString(s.ResumeText)
	return s.Validate()
}

func (s *Submission) Validate() error {
	if !s.FileType.Valid() {
		return fmt.Errorf("invalid file type %q", s.FileType)
	}
	if s.FileSize < 0 {
		return errors.New("file size must not be negative")
	}
	switch s.AnalysisType {
	case AnalysisTypeAnalyzer:
		if s.AnalyzerResults == nil || s.MatcherResults != nil {
			return errors.New("analyzer submission must carry only analyzer results")
		}
	case AnalysisTypeMatcher:
		if s.MatcherResults == nil || s.AnalyzerResults != nil {
			return errors.New("matcher submission must carry only matcher results")
		}
	default:
		return fmt.Errorf("invalid analysis type %q", s.AnalysisType)
	}
	return nil
}
