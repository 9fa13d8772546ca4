package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/fadilmartias/resume-analyzer/internal/response"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	defaultPageSize     = 20
	maxPageSize         = 100
	defaultSimilarLimit = 5
)

var (
	ErrStorageUnavailable  = errors.New("submission storage is not available")
	ErrEmbeddingsDisabled  = errors.New("similarity search requires ENABLE_EMBEDDINGS")
	ErrInvalidAnalysisType = &ValidationError{Field: "analysisType", Message: "analysisType must be analyzer or matcher"}
	ErrInvalidSubmissionID = &ValidationError{Field: "id", Message: "invalid submission id"}
)

type ListSubmissionsQuery struct {
	AnalysisType string
	Page         int
	PageSize     int
}

// SubmissionUsecase serves the stored submissions.
type SubmissionUsecase struct {
	repo       repository.SubmissionRepository
	embeddings bool
	logger     *zap.Logger
}

func NewSubmissionUsecase(repo repository.SubmissionRepository, embeddings bool, log *zap.Logger) *SubmissionUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmissionUsecase{repo: repo, embeddings: embeddings, logger: log}
}

func (uc *SubmissionUsecase) List(ctx context.Context, q ListSubmissionsQuery) ([]dto.SubmissionSummaryDTO, *response.Pagination, error) {
	if uc.repo == nil {
		return nil, nil, ErrStorageUnavailable
	}

	analysisType := model.AnalysisType(q.AnalysisType)
	if analysisType != "" && !analysisType.Valid() {
		return nil, nil, ErrInvalidAnalysisType
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	rows, total, err := uc.repo.List(ctx, repository.SubmissionFilter{
		AnalysisType: analysisType,
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		return nil, nil, err
	}

	items := make([]dto.SubmissionSummaryDTO, 0, len(rows))
	for i := range rows {
		items = append(items, toSummaryDTO(&rows[i]))
	}
	return items, response.NewPagination(page, pageSize, len(items), total), nil
}

func (uc *SubmissionUsecase) Get(ctx context.Context, id string) (*dto.SubmissionDTO, error) {
	if uc.repo == nil {
		return nil, ErrStorageUnavailable
	}
	submissionID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidSubmissionID
	}

	s, err := uc.repo.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	return uc.toDTO(s), nil
}

func (uc *SubmissionUsecase) Stats(ctx context.Context) (*dto.SubmissionStatsDTO, error) {
	if uc.repo == nil {
		return nil, ErrStorageUnavailable
	}

	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := uc.repo.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.SubmissionStatsDTO{
		Total: total,
		ByType: map[string]int64{
			string(model.AnalysisTypeAnalyzer): 0,
			string(model.AnalysisTypeMatcher):  0,
		},
		StorageOn:  true,
		Embeddings: uc.embeddings,
	}
	for t, n := range byType {
		stats.ByType[string(t)] = n
	}
	return stats, nil
}

func (uc *SubmissionUsecase) Delete(ctx context.Context, id string) error {
	if uc.repo == nil {
		return ErrStorageUnavailable
	}
	submissionID, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidSubmissionID
	}
	if err := uc.repo.Delete(ctx, submissionID); err != nil {
		return err
	}
	uc.logger.Info("submission deleted", zap.String("submission_id", submissionID.String()))
	return nil
}

func (uc *SubmissionUsecase) Similar(ctx context.Context, id string, limit int) ([]dto.SimilarSubmissionDTO, error) {
	if uc.repo == nil {
		return nil, ErrStorageUnavailable
	}
	if !uc.embeddings {
		return nil, ErrEmbeddingsDisabled
	}
	submissionID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidSubmissionID
	}
	if limit < 1 || limit > maxPageSize {
		limit = defaultSimilarLimit
	}

	rows, err := uc.repo.SearchSimilar(ctx, submissionID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SimilarSubmissionDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.SimilarSubmissionDTO{
			ID:           row.ID,
			FileName:     row.FileName,
			AnalysisType: string(row.AnalysisType),
			Distance:     row.Distance,
			CreatedAt:    row.CreatedAt,
		})
	}
	return items, nil
}

func toSummaryDTO(s *model.Submission) dto.SubmissionSummaryDTO {
	summary := dto.SubmissionSummaryDTO{
		ID:               s.ID,
		FileName:         s.FileName,
		FileType:         string(s.FileType),
		FileSize:         s.FileSize,
		AnalysisType:     string(s.AnalysisType),
		ResumeTextLength: s.ResumeTextLength,
		CreatedAt:        s.CreatedAt,
	}

	scoreField := "overallScore"
	if s.AnalysisType == model.AnalysisTypeMatcher {
		scoreField = "matchPercentage"
	}
	if raw := s.Results(); raw != nil {
		if v := gjson.Get(*raw, scoreField); v.Type == gjson.Number {
			score := v.Float()
			summary.Score = &score
		}
	}
	return summary
}

func (uc *SubmissionUsecase) toDTO(s *model.Submission) *dto.SubmissionDTO {
	out := &dto.SubmissionDTO{
		SubmissionSummaryDTO: toSummaryDTO(s),
		ResumeText:           s.ResumeText,
		JobDescriptionText:   s.JobDescriptionText,
		IPAddress:            s.IPAddress,
		UserAgent:            s.UserAgent,
		UpdatedAt:            s.UpdatedAt,
	}

	if s.AnalyzerResults != nil {
		var result dto.AnalyzerResult
		if err := json.Unmarshal([]byte(*s.AnalyzerResults), &result); err != nil {
			uc.logger.Warn("stored analyzer results do not match the expected shape", zap.Error(err), zap.String("submission_id", s.ID.String()))
		} else {
			out.AnalyzerResults = &result
		}
	}
	if s.MatcherResults != nil {
		var result dto.MatcherResult
		if err := json.Unmarshal([]byte(*s.MatcherResults), &result); err != nil {
			uc.logger.Warn("stored matcher results do not match the expected shape", zap.Error(err), zap.String("submission_id", s.ID.String()))
		} else {
			out.MatcherResults = &result
		}
	}
	return out
}
